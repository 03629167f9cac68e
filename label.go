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
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/avfs/fatfs/host"
)

const (
	// LabelFile is the file of the mount point holding the volume label.
	LabelFile = "label.txt"

	// SerialFile is the file of the mount point holding the volume serial number.
	SerialFile = "vsn.txt"
)

// LineStore stores single line values in files of a volume mount point.
type LineStore interface {
	// ReadLine returns the first line of the file name of directory dir without its line terminator.
	// A missing file reads as an empty string.
	ReadLine(dir, name string) (string, error)

	// WriteLine replaces the content of the file name of directory dir with line.
	WriteLine(dir, name, line string) error
}

// SidecarStore is a LineStore storing each value in a file of the host file system.
type SidecarStore struct {
	host host.FS
}

// NewSidecarStore returns a LineStore storing its values in files of hfs.
func NewSidecarStore(hfs host.FS) *SidecarStore {
	return &SidecarStore{host: hfs}
}

// ReadLine implements LineStore.
func (ss *SidecarStore) ReadLine(dir, name string) (string, error) {
	f, err := ss.host.OpenFile(filepath.Join(dir, name), os.O_RDONLY, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine implements LineStore.
func (ss *SidecarStore) WriteLine(dir, name, line string) error {
	f, err := ss.host.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}

	_, err = io.WriteString(f, line)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// GetLabel returns the label and the serial number of the volume of path.
// A volume without label has an empty label and a volume without serial number has serial 0.
func (vfs *FS) GetLabel(path string) (label string, serial uint32, err error) {
	const op = "getlabel"

	v, err := vfs.mounted(op, path)
	if err != nil {
		return "", 0, err
	}

	label, err = vfs.lines.ReadLine(v.MountPoint(), LabelFile)
	if err != nil {
		return "", 0, vfs.pathError(op, path, err)
	}

	vsn, err := vfs.lines.ReadLine(v.MountPoint(), SerialFile)
	if err != nil {
		return "", 0, vfs.pathError(op, path, err)
	}

	return truncName(label, LabelLen), parseSerial(vsn), nil
}

// SetLabel sets the label of a volume.
// The drive prefix of label selects the volume, the rest of label is the new label.
func (vfs *FS) SetLabel(label string) error {
	const op = "setlabel"

	v, err := vfs.mounted(op, label)
	if err != nil {
		return err
	}

	_, name := vfs.driveNumber(label)

	err = vfs.lines.WriteLine(v.MountPoint(), LabelFile, name)
	if err != nil {
		return vfs.pathError(op, label, err)
	}

	return nil
}

// mounted returns the mounted volume of the drive prefix of path.
func (vfs *FS) mounted(op, path string) (*Volume, error) {
	vol, _ := vfs.driveNumber(path)
	if vol < 0 {
		return nil, &fs.PathError{Op: op, Path: path, Err: InvalidDrive}
	}

	v := vfs.volume(vol)
	if v == nil {
		return nil, &fs.PathError{Op: op, Path: path, Err: NoFilesystem}
	}

	return v, nil
}

// parseSerial returns the value of the leading decimal digits of s, 0 if there are none.
func parseSerial(s string) uint32 {
	s = strings.TrimLeft(s, " \t")

	var n uint32

	for i := 0; i < len(s) && isDigit(s[i]); i++ {
		n = n*10 + uint32(s[i]-'0')
	}

	return n
}
