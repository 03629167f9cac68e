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

package rofs

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// Close closes the RoFile, rendering it unusable for I/O.
func (f *RoFile) Close() error {
	return f.baseFile.Close()
}

// Name returns the name of the file as presented to Open.
func (f *RoFile) Name() string {
	return f.baseFile.Name()
}

// Read reads up to len(b) bytes from the RoFile.
// It returns the number of bytes read and any error encountered.
// At end of file, Read returns 0, io.EOF.
func (f *RoFile) Read(b []byte) (n int, err error) {
	return f.baseFile.Read(b)
}

// ReadDir reads the contents of the directory associated with the file f
// and returns at most n DirEntry values in directory order.
// At the end of a directory, the error is io.EOF.
func (f *RoFile) ReadDir(n int) ([]fs.DirEntry, error) {
	return f.baseFile.ReadDir(n)
}

// Seek sets the offset for the next Read on file to offset, interpreted
// according to whence: 0 means relative to the origin of the file, 1 means
// relative to the current offset, and 2 means relative to the end.
func (f *RoFile) Seek(offset int64, whence int) (ret int64, err error) {
	return f.baseFile.Seek(offset, whence)
}

// Stat returns the FileInfo structure describing file.
// If there is an error, it will be of type *PathError.
func (f *RoFile) Stat() (fs.FileInfo, error) {
	return f.baseFile.Stat()
}

// Sync does nothing, a read only file has no pending write.
func (f *RoFile) Sync() error {
	return nil
}

// Truncate fails, the file system is read only.
func (f *RoFile) Truncate(size int64) error {
	const op = "truncate"

	return &fs.PathError{Op: op, Path: f.Name(), Err: unix.EROFS}
}

// Write fails, the file system is read only.
func (f *RoFile) Write(b []byte) (n int, err error) {
	const op = "write"

	return 0, &fs.PathError{Op: op, Path: f.Name(), Err: unix.EROFS}
}
