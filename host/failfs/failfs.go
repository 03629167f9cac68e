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

// Package failfs implements a host file system that fails on demand.
//
// It is used by tests to check how host errors are reported through the FAT API.
package failfs

import (
	"io/fs"
	"time"

	"github.com/avfs/fatfs/host"
)

// New returns a new FailFS file system from a baseFS file system.
// The failure function is initially set to OkFunc and should be set by FailFS.SetFailFunc.
func New(baseFS host.FS) *FailFS {
	vfs := &FailFS{
		baseFS:   baseFS,
		failFunc: OkFunc,
	}

	return vfs
}

// SetFailFunc sets the failure function. A nil function restores OkFunc.
func (vfs *FailFS) SetFailFunc(failFunc FailFunc) {
	if failFunc == nil {
		failFunc = OkFunc
	}

	vfs.failFunc = failFunc
}

// fail calls the FailFunc function set by SetFailFunc.
func (vfs *FailFS) fail(fn Fn, fp *FailParam) error {
	return vfs.failFunc(vfs, fn, fp)
}

// Type returns the type of the fileSystem.
func (*FailFS) Type() string {
	return "FailFS"
}

// Chdir changes the current working directory to the named directory.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Chdir(dir string) error {
	fp := FailParam{Op: "chdir", Path: dir}

	err := vfs.fail(FnChdir, &fp)
	if err != nil {
		return err
	}

	return vfs.baseFS.Chdir(dir)
}

// Chtimes changes the access and modification times of the named file.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Chtimes(name string, atime, mtime time.Time) error {
	fp := FailParam{Op: "chtimes", Path: name, ATime: atime, MTime: mtime}

	err := vfs.fail(FnChtimes, &fp)
	if err != nil {
		return err
	}

	return vfs.baseFS.Chtimes(name, atime, mtime)
}

// Getwd returns a rooted name link corresponding to the current directory.
func (vfs *FailFS) Getwd() (dir string, err error) {
	fp := FailParam{Op: "getwd"}

	err = vfs.fail(FnGetwd, &fp)
	if err != nil {
		return "", err
	}

	return vfs.baseFS.Getwd()
}

// Mkdir creates a new directory with the specified name and permission
// bits (before umask).
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Mkdir(name string, perm fs.FileMode) error {
	fp := FailParam{Op: "mkdir", Path: name, Perm: perm}

	err := vfs.fail(FnMkdir, &fp)
	if err != nil {
		return err
	}

	return vfs.baseFS.Mkdir(name, perm)
}

// OpenFile is the generalized open call.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) OpenFile(name string, flag int, perm fs.FileMode) (host.File, error) {
	fp := FailParam{Op: "open", Path: name, Flag: flag, Perm: perm}

	err := vfs.fail(FnOpenFile, &fp)
	if err != nil {
		return nil, err
	}

	f, err := vfs.baseFS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	ff := &FailFile{
		baseFile: f,
		vfs:      vfs,
	}

	return ff, nil
}

// Remove removes the named file or (empty) directory.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Remove(name string) error {
	fp := FailParam{Op: "remove", Path: name}

	err := vfs.fail(FnRemove, &fp)
	if err != nil {
		return err
	}

	return vfs.baseFS.Remove(name)
}

// Rename renames (moves) oldpath to newpath.
// If there is an error, it will be of type *LinkError.
func (vfs *FailFS) Rename(oldpath, newpath string) error {
	fp := FailParam{Op: "rename", Path: oldpath, NewPath: newpath}

	err := vfs.fail(FnRename, &fp)
	if err != nil {
		return err
	}

	return vfs.baseFS.Rename(oldpath, newpath)
}

// Stat returns a FileInfo describing the named file.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Stat(name string) (fs.FileInfo, error) {
	fp := FailParam{Op: "stat", Path: name}

	err := vfs.fail(FnStat, &fp)
	if err != nil {
		return nil, err
	}

	return vfs.baseFS.Stat(name)
}

// Statfs returns the free space statistics of the file system containing path.
// If there is an error, it will be of type *PathError.
func (vfs *FailFS) Statfs(path string) (host.StatFS, error) {
	fp := FailParam{Op: "statfs", Path: path}

	err := vfs.fail(FnStatfs, &fp)
	if err != nil {
		return host.StatFS{}, err
	}

	return vfs.baseFS.Statfs(path)
}
