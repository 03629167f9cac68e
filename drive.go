//
//  Copyright 2024 The AVFS authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package fatfs

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
)

// prefixKind is the kind of drive prefix found at the start of a path.
type prefixKind uint8

const (
	noPrefix  prefixKind = iota // The path has no ':'.
	numericID                   // The path starts with "<digit>:".
	stringID                    // The path starts with "<drive id string>:".
	badPrefix                   // The path has a ':' but no valid drive before it.
)

// drivePrefix is the result of parsing the drive prefix of a path.
type drivePrefix struct {
	kind prefixKind // kind is the kind of prefix.
	vol  int        // vol is the drive number, -1 when unknown.
	rest string     // rest is the path without its prefix.
}

// parsePrefix parses the drive prefix of path.
//
// A prefix made of a single digit is always a drive number: "7:" with only
// 2 volumes is a bad prefix, even if "7" is one of the drive id strings.
func (vfs *FS) parsePrefix(path string) drivePrefix {
	floor := byte('!')
	if vfs.HasFeature(FeatLFN) {
		floor = ' '
	}

	i := 0
	for i < len(path) && path[i] >= floor && path[i] != ':' {
		i++
	}

	if i == len(path) || path[i] != ':' {
		return drivePrefix{kind: noPrefix, vol: -1, rest: path}
	}

	id, rest := path[:i], path[i+1:]

	if len(id) == 1 && isDigit(id[0]) {
		vol := int(id[0] - '0')
		if vol < len(vfs.drives) {
			return drivePrefix{kind: numericID, vol: vol, rest: rest}
		}

		return drivePrefix{kind: badPrefix, vol: -1, rest: path}
	}

	if vfs.HasFeature(FeatStrVolumeID) {
		for vol, s := range vfs.volumeStrs {
			if matchVolumeStr(id, s) {
				return drivePrefix{kind: stringID, vol: vol, rest: rest}
			}
		}
	}

	return drivePrefix{kind: badPrefix, vol: -1, rest: path}
}

// matchVolumeStr compares a path prefix with a drive id string,
// lower case letters of the prefix being folded to upper case.
func matchVolumeStr(prefix, id string) bool {
	if len(prefix) != len(id) {
		return false
	}

	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if isLower(c) {
			c -= 'a' - 'A'
		}

		if c != id[i] {
			return false
		}
	}

	return true
}

// driveNumber returns the logical drive number of path and the path without its prefix.
// It returns -1 if the drive is invalid.
func (vfs *FS) driveNumber(path string) (vol int, rest string) {
	p := vfs.parsePrefix(path)
	if p.kind != noPrefix {
		return p.vol, p.rest
	}

	if vfs.relPath >= 1 && len(vfs.drives) >= 2 {
		unlock := vfs.lock()
		defer unlock()

		return vfs.curVol, p.rest
	}

	return 0, p.rest
}

// lock locks the drive table if the file system is reentrant and returns the unlock function.
func (vfs *FS) lock() func() {
	if !vfs.HasFeature(FeatReentrant) {
		return func() {}
	}

	vfs.mu.Lock()

	return vfs.mu.Unlock
}

// volume returns the mount descriptor of drive vol or nil if it is not mounted.
func (vfs *FS) volume(vol int) *Volume {
	unlock := vfs.lock()
	defer unlock()

	return vfs.drives[vol]
}

// Volume returns the mount descriptor of drive n or nil if the drive is not mounted.
func (vfs *FS) Volume(n int) *Volume {
	if n < 0 || n >= len(vfs.drives) {
		return nil
	}

	return vfs.volume(n)
}

// Volumes returns the number of logical drives.
func (vfs *FS) Volumes() int {
	return len(vfs.drives)
}

// CurrentDrive returns the current drive number.
func (vfs *FS) CurrentDrive() int {
	unlock := vfs.lock()
	defer unlock()

	return vfs.curVol
}

// resolve returns the mounted volume and the host path of a FAT path.
func (vfs *FS) resolve(op, path string) (*Volume, string, error) {
	vol, rest := vfs.driveNumber(path)
	if vol < 0 {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: InvalidDrive}
	}

	v := vfs.volume(vol)
	if v == nil {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: NoFilesystem}
	}

	hostPath := v.hostPath(rest)
	if len(hostPath) > vfs.maxPath {
		return nil, "", &fs.PathError{Op: op, Path: path, Err: InvalidName}
	}

	return v, hostPath, nil
}

// HostPath returns the path on the host file system of a FAT path.
func (vfs *FS) HostPath(path string) (string, error) {
	_, hostPath, err := vfs.resolve("resolve", path)

	return hostPath, err
}

// fromHostPath returns the FAT path of a host path if it is located in a mounted volume.
// When volumes are nested, the deepest mount point wins.
func (vfs *FS) fromHostPath(hostPath string) (string, bool) {
	unlock := vfs.lock()
	defer unlock()

	var best *Volume

	bestRest := ""

	for _, v := range vfs.drives {
		if v == nil {
			continue
		}

		rest, ok := strings.CutPrefix(hostPath, v.mountPoint)
		if !ok || (rest != "" && rest[0] != '/') {
			continue
		}

		if best == nil || len(v.mountPoint) > len(best.mountPoint) {
			best, bestRest = v, rest
		}
	}

	if best == nil {
		return "", false
	}

	if bestRest == "" {
		bestRest = "/"
	}

	return vfs.driveName(best.num) + ":" + bestRest, true
}

// driveName returns the name of drive vol used in paths.
func (vfs *FS) driveName(vol int) string {
	if vfs.HasFeature(FeatStrVolumeID) {
		return vfs.volumeStrs[vol]
	}

	return strconv.Itoa(vol)
}

// Number returns the drive number of the volume.
func (v *Volume) Number() int {
	return v.num
}

// MountPoint returns the host directory of the volume.
func (v *Volume) MountPoint() string {
	if v.mountPoint == "" {
		return "/"
	}

	return v.mountPoint
}

// String returns the drive id and the mount point of the volume, as "SD1:/mnt/sd".
func (v *Volume) String() string {
	name := v.name
	if name == "" {
		name = strconv.Itoa(v.num)
	}

	return name + ":" + v.MountPoint()
}

// hostPath returns the host path of a path relative to the volume.
func (v *Volume) hostPath(rest string) string {
	if strings.HasPrefix(rest, "/") {
		return v.mountPoint + rest
	}

	return v.mountPoint + "/" + rest
}

// mountPoint returns the absolute host directory of dir without trailing separator.
// The root directory is returned as an empty string.
func mountPoint(wd, dir string) string {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(wd, dir)
	}

	return strings.TrimRight(filepath.Clean(dir), "/")
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
