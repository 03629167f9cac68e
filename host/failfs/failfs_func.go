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

package failfs

import (
	"io/fs"
	"os"
	"slices"

	"golang.org/x/sys/unix"

	"github.com/avfs/fatfs/host"
)

// OkFunc is a FailFunc that never fails.
func OkFunc(_ host.FS, _ Fn, _ *FailParam) error {
	return nil
}

// ReadOnlyFunc is a FailFunc that fails on writes.
func ReadOnlyFunc(_ host.FS, fn Fn, fp *FailParam) error {
	switch fn {
	case FnOpenFile:
		if fp.Flag != os.O_RDONLY {
			return &fs.PathError{Op: fp.Op, Path: fp.Path, Err: unix.EROFS}
		}

		return nil
	case FnChtimes, FnFileSync, FnFileTruncate, FnFileWrite, FnMkdir, FnRemove:
		return &fs.PathError{Op: fp.Op, Path: fp.Path, Err: unix.EROFS}
	case FnRename:
		return &os.LinkError{Op: fp.Op, Old: fp.Path, New: fp.NewPath, Err: unix.EROFS}
	default:
		return nil
	}
}

// ErrnoFunc returns a FailFunc failing the functions fns with the error number errno.
// If fns is empty, every function fails.
func ErrnoFunc(errno unix.Errno, fns ...Fn) FailFunc {
	return func(_ host.FS, fn Fn, fp *FailParam) error {
		if len(fns) != 0 && !slices.Contains(fns, fn) {
			return nil
		}

		if fn == FnRename {
			return &os.LinkError{Op: fp.Op, Old: fp.Path, New: fp.NewPath, Err: errno}
		}

		return &fs.PathError{Op: fp.Op, Path: fp.Path, Err: errno}
	}
}
