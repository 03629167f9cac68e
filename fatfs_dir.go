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
	"io"
	"io/fs"
)

// Name returns the FAT path of the directory as presented to Opendir.
func (dir *Dir) Name() string {
	return dir.name
}

// Read reads the next entry of the directory into fno.
// At the end of the directory, the name of fno is empty and the error is nil.
// A nil fno rewinds the directory to its first entry.
func (dir *Dir) Read(fno *FileInfo) error {
	const op = "readdir"

	if dir == nil || dir.f == nil {
		return &fs.PathError{Op: op, Path: dir.nameOrEmpty(), Err: InvalidObject}
	}

	if fno == nil {
		_, err := dir.f.Seek(0, io.SeekStart)
		if err != nil {
			return dir.vfs.pathError(op, dir.name, err)
		}

		return nil
	}

	entries, err := dir.f.ReadDir(1)
	if err == io.EOF || (err == nil && len(entries) == 0) {
		*fno = FileInfo{}

		return nil
	}

	if err != nil {
		return dir.vfs.pathError(op, dir.name, err)
	}

	entry := entries[0]

	info, err := entry.Info()
	if err != nil {
		info = nil
	}

	dir.vfs.fillInfo(fno, entry.Name(), entry.Type(), info)

	return nil
}

// FindNext reads the next entry of a directory opened by FindFirst matching its pattern.
// If no more entry matches, the name of fno is empty.
func (dir *Dir) FindNext(fno *FileInfo) error {
	const op = "findnext"

	if dir == nil || dir.f == nil {
		return &fs.PathError{Op: op, Path: dir.nameOrEmpty(), Err: InvalidObject}
	}

	if !dir.vfs.HasFeature(FeatFind) {
		return &fs.PathError{Op: op, Path: dir.name, Err: NotEnabled}
	}

	if fno == nil {
		return &fs.PathError{Op: op, Path: dir.name, Err: InvalidParameter}
	}

	for {
		err := dir.Read(fno)
		if err != nil || fno.Name == "" {
			return err
		}

		if matchPattern(dir.pattern, fno.Name) {
			return nil
		}
	}
}

// Close closes the directory.
// Closing a closed directory fails with InvalidObject.
func (dir *Dir) Close() error {
	const op = "closedir"

	if dir == nil || dir.f == nil {
		return &fs.PathError{Op: op, Path: dir.nameOrEmpty(), Err: InvalidObject}
	}

	err := dir.f.Close()
	dir.f = nil

	if err != nil {
		return dir.vfs.pathError(op, dir.name, err)
	}

	return nil
}

func (dir *Dir) nameOrEmpty() string {
	if dir == nil {
		return ""
	}

	return dir.name
}
