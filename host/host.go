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

// Package host defines the interfaces of the POSIX file system that backs every FAT volume.
//
// The fatfs package never calls the os package directly: each forwarded operation goes
// through a host.FS, so the real operating system (see osfs) can be replaced by a wrapper
// that injects failures (see failfs).
package host

import (
	"io"
	"io/fs"
	"time"
)

// FS is the host file system interface.
// Errors returned by an FS should wrap the operating system error number
// (syscall.Errno) so that it can be translated into a FAT result code.
type FS interface {
	// Chdir changes the current working directory to the named directory.
	// If there is an error, it will be of type *PathError.
	Chdir(dir string) error

	// Chtimes changes the access and modification times of the named file.
	// If there is an error, it will be of type *PathError.
	Chtimes(name string, atime, mtime time.Time) error

	// Getwd returns a rooted path name corresponding to the current directory.
	Getwd() (dir string, err error)

	// Mkdir creates a new directory with the specified name and permission
	// bits (before umask).
	// If there is an error, it will be of type *PathError.
	Mkdir(name string, perm fs.FileMode) error

	// OpenFile is the generalized open call. It opens the named file with specified
	// flag (O_RDONLY etc.). If the file does not exist, and the O_CREATE flag
	// is passed, it is created with mode perm (before umask).
	// If there is an error, it will be of type *PathError.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// Remove removes the named file or (empty) directory.
	// If there is an error, it will be of type *PathError.
	Remove(name string) error

	// Rename renames (moves) oldpath to newpath.
	// If there is an error, it will be of type *LinkError.
	Rename(oldpath, newpath string) error

	// Stat returns a FileInfo describing the named file.
	// If there is an error, it will be of type *PathError.
	Stat(name string) (fs.FileInfo, error)

	// Statfs returns the free space statistics of the file system containing path.
	// If there is an error, it will be of type *PathError.
	Statfs(path string) (StatFS, error)

	// Type returns the type of the host file system.
	Type() string
}

// File represents an open file descriptor of the host.
// *os.File implements this interface.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Name returns the name of the file as presented to OpenFile.
	Name() string

	// ReadDir reads the contents of the directory associated with the file
	// and returns at most n DirEntry values in directory order.
	// At the end of a directory, the error is io.EOF.
	ReadDir(n int) ([]fs.DirEntry, error)

	// Stat returns the FileInfo structure describing the file.
	Stat() (fs.FileInfo, error)

	// Sync commits the current contents of the file to stable storage.
	Sync() error

	// Truncate changes the size of the file. It does not change the I/O offset.
	Truncate(size int64) error
}

// StatFS holds the free space statistics of a host file system.
type StatFS struct {
	Bavail uint64 // Bavail is the number of free blocks available to an unprivileged user.
	Bsize  int64  // Bsize is the block size in bytes.
}

// AvailBytes returns the number of bytes available to an unprivileged user.
func (st StatFS) AvailBytes() uint64 {
	if st.Bsize <= 0 {
		return 0
	}

	return st.Bavail * uint64(st.Bsize)
}
