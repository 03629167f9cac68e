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

// Package osfs implements the host file system with the functions of the os package.
package osfs

import (
	"io/fs"
	"os"
	"time"

	"github.com/avfs/fatfs/host"
)

// OsFS implements host.FS on the file system of the operating system.
type OsFS struct{}

// New returns a new OsFS file system.
func New() *OsFS {
	return &OsFS{}
}

// Type returns the type of the fileSystem.
func (*OsFS) Type() string {
	return "OsFS"
}

// Chdir changes the current working directory to the named directory.
// If there is an error, it will be of type *PathError.
func (*OsFS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Chtimes changes the access and modification times of the named
// file, similar to the Unix utime() or utimes() functions.
// If there is an error, it will be of type *PathError.
func (*OsFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

// Getwd returns a rooted name link corresponding to the
// current directory.
func (*OsFS) Getwd() (dir string, err error) {
	return os.Getwd()
}

// Mkdir creates a new directory with the specified name and permission
// bits (before umask).
// If there is an error, it will be of type *PathError.
func (*OsFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

// OpenFile is the generalized open call; It opens the named file with specified flag
// (O_RDONLY etc.). If the file does not exist, and the O_CREATE flag
// is passed, it is created with mode perm (before umask).
// If there is an error, it will be of type *PathError.
func (*OsFS) OpenFile(name string, flag int, perm fs.FileMode) (host.File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Remove removes the named file or (empty) directory.
// If there is an error, it will be of type *PathError.
func (*OsFS) Remove(name string) error {
	return os.Remove(name)
}

// Rename renames (moves) oldpath to newpath.
// If newpath already exists and is not a directory, Rename replaces it.
// If there is an error, it will be of type *LinkError.
func (*OsFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Stat returns a FileInfo describing the named file.
// If there is an error, it will be of type *PathError.
func (*OsFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
