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

//go:build linux || darwin || freebsd

package osfs

import (
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/avfs/fatfs/host"
)

// Statfs returns the free space statistics of the file system containing path.
// If there is an error, it will be of type *PathError.
func (*OsFS) Statfs(path string) (host.StatFS, error) {
	var st unix.Statfs_t

	err := unix.Statfs(path, &st)
	if err != nil {
		return host.StatFS{}, &fs.PathError{Op: "statfs", Path: path, Err: err}
	}

	return host.StatFS{Bavail: uint64(st.Bavail), Bsize: int64(st.Bsize)}, nil //nolint:unconvert // field types differ between systems.
}
