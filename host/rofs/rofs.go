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

// Package rofs provides a read only host file system on top of any other host file system.
//
// Every modification fails with EROFS, like on a read only mount. Creating a
// directory that already exists fails with EEXIST, so that a read only volume
// can still be mounted on an existing directory.
package rofs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/avfs/fatfs/host"
)

// New creates a new read only file system (RoFS) from a base file system.
func New(baseFS host.FS) *RoFS {
	return &RoFS{baseFS: baseFS}
}

// Type returns the type of the fileSystem.
func (*RoFS) Type() string {
	return "RoFS"
}

// Chdir changes the current working directory to the named directory.
// If there is an error, it will be of type *PathError.
func (vfs *RoFS) Chdir(dir string) error {
	return vfs.baseFS.Chdir(dir)
}

// Chtimes fails, the file system is read only.
func (*RoFS) Chtimes(name string, _, _ time.Time) error {
	const op = "chtimes"

	return &fs.PathError{Op: op, Path: name, Err: unix.EROFS}
}

// Getwd returns a rooted path name corresponding to the current directory.
func (vfs *RoFS) Getwd() (dir string, err error) {
	return vfs.baseFS.Getwd()
}

// Mkdir fails with EEXIST if name exists and with EROFS otherwise.
func (vfs *RoFS) Mkdir(name string, _ fs.FileMode) error {
	const op = "mkdir"

	_, err := vfs.baseFS.Stat(name)
	if err == nil {
		return &fs.PathError{Op: op, Path: name, Err: unix.EEXIST}
	}

	return &fs.PathError{Op: op, Path: name, Err: unix.EROFS}
}

// OpenFile is the generalized open call.
// Only the flag os.O_RDONLY is allowed.
// If there is an error, it will be of type *PathError.
func (vfs *RoFS) OpenFile(name string, flag int, perm fs.FileMode) (host.File, error) {
	const op = "open"

	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_APPEND|os.O_TRUNC|os.O_EXCL) != 0 {
		return nil, &fs.PathError{Op: op, Path: name, Err: unix.EROFS}
	}

	f, err := vfs.baseFS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	return &RoFile{baseFile: f}, nil
}

// Remove fails, the file system is read only.
func (*RoFS) Remove(name string) error {
	const op = "remove"

	return &fs.PathError{Op: op, Path: name, Err: unix.EROFS}
}

// Rename fails, the file system is read only.
// The error is of type *LinkError.
func (*RoFS) Rename(oldpath, newpath string) error {
	const op = "rename"

	return &os.LinkError{Op: op, Old: oldpath, New: newpath, Err: unix.EROFS}
}

// Stat returns a FileInfo describing the named file.
// If there is an error, it will be of type *PathError.
func (vfs *RoFS) Stat(name string) (fs.FileInfo, error) {
	return vfs.baseFS.Stat(name)
}

// Statfs returns the statistics of the base file system with no space available.
func (vfs *RoFS) Statfs(path string) (host.StatFS, error) {
	st, err := vfs.baseFS.Statfs(path)
	if err != nil && !errors.Is(err, errors.ErrUnsupported) {
		return host.StatFS{}, err
	}

	st.Bavail = 0

	return st, nil
}
