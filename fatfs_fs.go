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
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/sys/unix"
)

// Mount mounts the logical drive selected by the prefix of path on the host directory
// named by the rest of path, creating the directory if it does not exist.
// An empty path or an empty directory mounts the current host directory.
// Mounting a drive again replaces its previous mount point.
func (vfs *FS) Mount(path string) (*Volume, error) {
	const op = "mount"

	if path == "" {
		path = "."
	}

	vol, dir := vfs.driveNumber(path)
	if vol < 0 {
		return nil, &fs.PathError{Op: op, Path: path, Err: InvalidDrive}
	}

	if dir == "" {
		dir = "."
	}

	err := vfs.host.Mkdir(dir, 0o777)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, vfs.pathError(op, path, err)
	}

	wd := ""
	if !filepath.IsAbs(dir) {
		wd, err = vfs.host.Getwd()
		if err != nil {
			return nil, vfs.pathError(op, path, err)
		}
	}

	v := &Volume{num: vol, name: vfs.driveName(vol), mountPoint: mountPoint(wd, dir)}

	unlock := vfs.lock()
	vfs.drives[vol] = v
	unlock()

	vfs.log.Debug("volume mounted", "drive", vol, "mount_point", v.MountPoint())

	return v, nil
}

// Open opens or creates the file named path with the access mode and open method of mode.
//
// The open methods are checked in this order, the first one present in mode wins:
// ModeCreateAlways, ModeOpenAlways, ModeCreateNew (with or without ModeRead), ModeRead, ModeWrite.
// A file opened with ModeOpenAlways is positioned at its start.
func (vfs *FS) Open(path string, mode Mode) (*File, error) {
	const op = "open"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return nil, err
	}

	flag, ok := openFlag(mode)
	if !ok {
		return nil, &fs.PathError{Op: op, Path: path, Err: InvalidObject}
	}

	f, err := vfs.host.OpenFile(hostPath, flag, 0o666)
	if err != nil {
		return nil, vfs.pathError(op, path, err)
	}

	if mode&ModeOpenAlways != 0 {
		_, err = f.Seek(0, io.SeekStart)
		if err != nil {
			_ = f.Close()

			return nil, vfs.pathError(op, path, err)
		}
	}

	return &File{vfs: vfs, f: f, name: path}, nil
}

// openFlag returns the host open flag corresponding to mode.
func openFlag(mode Mode) (flag int, ok bool) {
	rw := func(rdwr bool) int {
		if rdwr {
			return os.O_RDWR
		}

		return os.O_WRONLY
	}

	switch {
	case mode&ModeCreateAlways != 0:
		return os.O_CREATE | os.O_TRUNC | rw(mode&ModeRead != 0), true
	case mode&ModeOpenAlways != 0:
		return os.O_CREATE | os.O_APPEND | rw(mode&ModeRead != 0), true
	case mode&(ModeCreateNew|ModeRead) == ModeCreateNew|ModeRead:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_EXCL, true
	case mode&ModeCreateNew != 0:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_EXCL, true
	case mode&ModeRead != 0:
		if mode&ModeWrite != 0 {
			return os.O_RDWR, true
		}

		return os.O_RDONLY, true
	case mode&ModeWrite != 0:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, true
	default:
		return 0, false
	}
}

// Opendir opens the directory named path.
func (vfs *FS) Opendir(path string) (*Dir, error) {
	const op = "opendir"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return nil, err
	}

	f, err := vfs.host.OpenFile(hostPath, os.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, vfs.pathError(op, path, err)
	}

	return &Dir{vfs: vfs, f: f, name: path}, nil
}

// FindFirst opens the directory named path and reads its first entry matching pattern into fno.
// The pattern is matched without regard to case, '?' matches one character and '*' any sequence.
// If no entry matches, the name of fno is empty.
func (vfs *FS) FindFirst(path, pattern string, fno *FileInfo) (*Dir, error) {
	const op = "findfirst"

	if !vfs.HasFeature(FeatFind) {
		return nil, &fs.PathError{Op: op, Path: path, Err: NotEnabled}
	}

	if fno == nil {
		return nil, &fs.PathError{Op: op, Path: path, Err: InvalidParameter}
	}

	dir, err := vfs.Opendir(path)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: path, Err: ResultOf(err)}
	}

	dir.pattern = pattern

	err = dir.FindNext(fno)
	if err != nil {
		_ = dir.Close()

		return nil, err
	}

	return dir, nil
}

// Mkdir creates the directory named path.
func (vfs *FS) Mkdir(path string) error {
	const op = "mkdir"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return err
	}

	err = vfs.host.Mkdir(hostPath, 0o777)
	if err != nil {
		return vfs.pathError(op, path, err)
	}

	return nil
}

// Unlink removes the file or empty directory named path.
func (vfs *FS) Unlink(path string) error {
	const op = "unlink"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return err
	}

	err = vfs.host.Remove(hostPath)
	if err != nil {
		return vfs.pathError(op, path, err)
	}

	return nil
}

// Rename renames (moves) oldPath to newPath.
// If there is a host error, it will be of type *os.LinkError.
func (vfs *FS) Rename(oldPath, newPath string) error {
	const op = "rename"

	_, oldHostPath, err := vfs.resolve(op, oldPath)
	if err != nil {
		return err
	}

	_, newHostPath, err := vfs.resolve(op, newPath)
	if err != nil {
		return err
	}

	err = vfs.host.Rename(oldHostPath, newHostPath)
	if err != nil {
		r := ResultOf(err)
		vfs.log.Debug("host error", "op", op, "path", oldPath, "result", r.String(), "err", err)

		return &os.LinkError{Op: op, Old: oldPath, New: newPath, Err: r}
	}

	return nil
}

// Stat returns the information of the file or directory named path.
func (vfs *FS) Stat(path string) (FileInfo, error) {
	const op = "stat"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return FileInfo{}, err
	}

	info, err := vfs.host.Stat(hostPath)
	if err != nil {
		return FileInfo{}, vfs.pathError(op, path, err)
	}

	fno := FileInfo{}
	vfs.fillInfo(&fno, filepath.Base(hostPath), info.Mode(), info)

	return fno, nil
}

// Chmod changes the attributes selected by mask of the file named path.
// File attributes have no host counterpart, Chmod only checks that the drive is mounted.
func (vfs *FS) Chmod(path string, attr, mask Attr) error {
	_, _, err := vfs.resolve("chmod", path)

	return err
}

// Utime changes the modification time of the file named path
// to the packed date and time of fno.
func (vfs *FS) Utime(path string, fno *FileInfo) error {
	const op = "utime"

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return err
	}

	if fno == nil {
		return &fs.PathError{Op: op, Path: path, Err: InvalidParameter}
	}

	mtime := fno.ModTime()

	err = vfs.host.Chtimes(hostPath, mtime, mtime)
	if err != nil {
		return vfs.pathError(op, path, err)
	}

	return nil
}

// Chdir changes the current host directory to the directory named path.
func (vfs *FS) Chdir(path string) error {
	const op = "chdir"

	if vfs.relPath < 1 {
		return &fs.PathError{Op: op, Path: path, Err: NotEnabled}
	}

	_, hostPath, err := vfs.resolve(op, path)
	if err != nil {
		return err
	}

	err = vfs.host.Chdir(hostPath)
	if err != nil {
		return vfs.pathError(op, path, err)
	}

	return nil
}

// Chdrive sets the current drive to the drive of path.
// The current drive is used by the paths without drive prefix.
func (vfs *FS) Chdrive(path string) error {
	const op = "chdrive"

	if vfs.relPath < 1 || len(vfs.drives) < 2 {
		return &fs.PathError{Op: op, Path: path, Err: NotEnabled}
	}

	vol, _ := vfs.driveNumber(path)
	if vol < 0 {
		return &fs.PathError{Op: op, Path: path, Err: InvalidDrive}
	}

	unlock := vfs.lock()
	vfs.curVol = vol
	unlock()

	vfs.log.Debug("current drive changed", "drive", vol)

	return nil
}

// Getcwd returns the current host directory.
// If it is located in a mounted volume, it is returned as a FAT path ("1:/dir").
func (vfs *FS) Getcwd() (string, error) {
	const op = "getcwd"

	if vfs.relPath < 2 {
		return "", &fs.PathError{Op: op, Path: "", Err: NotEnabled}
	}

	wd, err := vfs.host.Getwd()
	if err != nil {
		return "", vfs.pathError(op, "", err)
	}

	if fatPath, ok := vfs.fromHostPath(wd); ok {
		return fatPath, nil
	}

	return wd, nil
}

// GetFree returns the number of free 512 bytes sectors of the volume of path and its descriptor.
func (vfs *FS) GetFree(path string) (uint32, *Volume, error) {
	const op = "getfree"

	vol, _ := vfs.driveNumber(path)
	if vol < 0 {
		return 0, nil, &fs.PathError{Op: op, Path: path, Err: InvalidDrive}
	}

	v := vfs.volume(vol)
	if v == nil {
		return 0, nil, &fs.PathError{Op: op, Path: path, Err: NoFilesystem}
	}

	st, err := vfs.host.Statfs(v.MountPoint())
	if err != nil {
		return 0, v, vfs.pathError(op, path, err)
	}

	free := st.Bavail * uint64(st.Bsize/512)
	if free > math.MaxUint32 {
		free = math.MaxUint32
	}

	return uint32(free), v, nil
}

// Mkfs prepares the volume of path. No file system structure is written,
// the volume only receives a new random serial number.
func (vfs *FS) Mkfs(path string) error {
	const op = "mkfs"

	if !vfs.HasFeature(FeatMkfs) {
		return &fs.PathError{Op: op, Path: path, Err: NotEnabled}
	}

	v, _, err := vfs.resolve(op, path)
	if err != nil {
		return err
	}

	serial := fastrand.Uint32()

	err = vfs.lines.WriteLine(v.MountPoint(), SerialFile, strconv.FormatUint(uint64(serial), 10))
	if err != nil {
		return vfs.pathError(op, path, err)
	}

	vfs.log.Info("volume formatted", "drive", v.num, "serial", serial)

	return nil
}

// Fdisk divides the physical drive pdrv into partitions of the sizes szt.
// Drives are host directories, there is nothing to partition.
func (vfs *FS) Fdisk(pdrv int, szt []uint32) error {
	const op = "fdisk"

	drive := strconv.Itoa(pdrv) + ":"

	if !vfs.HasFeature(FeatMultiPartition) {
		return &fs.PathError{Op: op, Path: drive, Err: NotEnabled}
	}

	if pdrv < 0 || pdrv >= len(vfs.drives) || len(szt) == 0 {
		return &fs.PathError{Op: op, Path: drive, Err: InvalidParameter}
	}

	return nil
}

// pathError returns a *fs.PathError carrying the result code of a host error.
func (vfs *FS) pathError(op, path string, err error) error {
	r := ResultOf(err)
	if r == OK {
		r = IntErr
	}

	vfs.log.Debug("host error", "op", op, "path", path, "result", r.String(), "err", err)

	return &fs.PathError{Op: op, Path: path, Err: r}
}

// fillInfo sets fno from a host file name, mode and information.
// info may be nil when only the type of the file is known.
func (vfs *FS) fillInfo(fno *FileInfo, name string, mode fs.FileMode, info fs.FileInfo) {
	*fno = FileInfo{
		Name:    truncName(name, vfs.maxLFN),
		AltName: truncName(name, ShortNameLen),
		Attrib:  attrOf(mode),
	}

	if info != nil {
		mtime := info.ModTime().In(time.Local)
		fno.Size = info.Size()
		fno.Date = PackDate(mtime)
		fno.Time = PackTime(mtime)
	}
}

// attrOf returns the FAT attributes of a host file mode.
func attrOf(mode fs.FileMode) Attr {
	switch {
	case mode.IsDir():
		return AttrDirectory
	case mode&(fs.ModeDevice|fs.ModeCharDevice|fs.ModeSocket) != 0:
		return AttrSystem
	default:
		return 0
	}
}

// truncName returns the first n bytes of name.
func truncName(name string, n int) string {
	if len(name) > n {
		return name[:n]
	}

	return name
}

// matchPattern reports whether name matches the wildcard pattern without regard to case.
// '?' matches any single byte and '*' any sequence of bytes. Every other byte is literal.
func matchPattern(pattern, name string) bool {
	p, n := 0, 0
	star, mark := -1, 0

	for n < len(name) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, n
			p++
		case p < len(pattern) && (pattern[p] == '?' || upper(pattern[p]) == upper(name[n])):
			p++
			n++
		case star >= 0:
			mark++
			p, n = star+1, mark
		default:
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}

// upper folds the ASCII lower case letters to upper case.
func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}

	return c
}
