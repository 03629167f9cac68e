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
	"strconv"

	"golang.org/x/sys/unix"
)

// Result is the FAT result code returned by every operation.
// A Result other than OK is an error; it is usually wrapped in a *fs.PathError
// (or an *os.LinkError for Rename) naming the operation and the FAT path.
type Result uint8

const (
	OK               Result = iota // Succeeded.
	DiskErr                        // A hard error occurred in the low level disk I/O layer.
	IntErr                         // Assertion failed.
	NotReady                       // The physical drive cannot work.
	NoFile                         // Could not find the file.
	NoPath                         // Could not find the path.
	InvalidName                    // The path name format is invalid.
	Denied                         // Access denied due to prohibited access or directory full.
	Exist                          // Access denied due to prohibited access.
	InvalidObject                  // The file/directory object is invalid.
	WriteProtected                 // The physical drive is write protected.
	InvalidDrive                   // The logical drive number is invalid.
	NotEnabled                     // The volume has no work area.
	NoFilesystem                   // There is no valid FAT volume.
	MkfsAborted                    // The Mkfs function aborted due to any problem.
	Timeout                        // Could not get a grant to access the volume within defined period.
	Locked                         // The operation is rejected according to the file sharing policy.
	NotEnoughCore                  // LFN working buffer could not be allocated.
	TooManyOpenFiles               // Number of open files is too large.
	InvalidParameter               // Given parameter is invalid.
)

// resultText translates a result code to text.
var resultText = [...]string{
	OK:               "succeeded",
	DiskErr:          "disk error",
	IntErr:           "internal error",
	NotReady:         "drive not ready",
	NoFile:           "no such file",
	NoPath:           "no such path",
	InvalidName:      "invalid path name",
	Denied:           "access denied",
	Exist:            "file exists",
	InvalidObject:    "invalid object",
	WriteProtected:   "write protected",
	InvalidDrive:     "invalid drive",
	NotEnabled:       "not enabled",
	NoFilesystem:     "no file system",
	MkfsAborted:      "mkfs aborted",
	Timeout:          "timeout",
	Locked:           "locked",
	NotEnoughCore:    "not enough core",
	TooManyOpenFiles: "too many open files",
	InvalidParameter: "invalid parameter",
}

func (r Result) Error() string {
	if int(r) < len(resultText) {
		return resultText[r]
	}

	return "result " + strconv.Itoa(int(r))
}

// String returns the text of the result code.
func (r Result) String() string {
	return r.Error()
}

// ResultOf returns the result code carried by err.
// A nil error and io.EOF are OK, an error wrapping a Result returns it,
// any other error is translated as a host error.
func ResultOf(err error) Result {
	if err == nil || errors.Is(err, io.EOF) {
		return OK
	}

	var r Result
	if errors.As(err, &r) {
		return r
	}

	return translate(err)
}

// translate maps a host error to a FAT result code.
func translate(err error) Result {
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EBADF, unix.EROFS, unix.EINVAL:
			return InvalidObject
		case unix.EIO, unix.ENOSPC:
			return DiskErr
		case unix.ENOENT:
			return NoFile
		case unix.EACCES:
			return Denied
		default:
			return IntErr
		}
	}

	switch {
	case errors.Is(err, fs.ErrClosed), errors.Is(err, fs.ErrInvalid):
		return InvalidObject
	case errors.Is(err, fs.ErrNotExist):
		return NoFile
	case errors.Is(err, fs.ErrPermission):
		return Denied
	default:
		return IntErr
	}
}
