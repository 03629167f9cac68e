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
	"fmt"
	"io"
	"io/fs"
)

// Name returns the FAT path of the file as presented to Open.
func (f *File) Name() string {
	if f == nil {
		return ""
	}

	return f.name
}

// invalid returns the error of an operation on a closed file.
func (f *File) invalid(op string) error {
	name := ""
	if f != nil {
		name = f.name
	}

	return &fs.PathError{Op: op, Path: name, Err: InvalidObject}
}

// Read reads up to len(b) bytes from the File.
// It returns the number of bytes read and any error encountered.
// At end of file, Read returns 0, io.EOF.
func (f *File) Read(b []byte) (n int, err error) {
	const op = "read"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	n, err = f.f.Read(b)
	if err == io.EOF {
		f.eof = true

		return n, io.EOF
	}

	if err != nil {
		f.err = true

		return n, f.vfs.pathError(op, f.name, err)
	}

	return n, nil
}

// Write writes len(b) bytes to the File.
// It returns the number of bytes written and an error, if any.
// Write returns a non-nil error when n != len(b).
func (f *File) Write(b []byte) (n int, err error) {
	const op = "write"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	n, err = f.f.Write(b)
	if err != nil {
		f.err = true

		return n, f.vfs.pathError(op, f.name, err)
	}

	return n, nil
}

// Lseek moves the read/write pointer of the file to offset ofs from its start.
func (f *File) Lseek(ofs int64) error {
	_, err := f.Seek(ofs, io.SeekStart)

	return err
}

// Seek sets the offset for the next Read or Write on file to offset, interpreted
// according to whence: 0 means relative to the origin of the file, 1 means
// relative to the current offset, and 2 means relative to the end.
// It returns the new offset and an error, if any.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	const op = "seek"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	ret, err := f.f.Seek(offset, whence)
	if err != nil {
		return 0, f.vfs.pathError(op, f.name, err)
	}

	f.eof = false

	return ret, nil
}

// Truncate truncates the file at the current read/write pointer.
func (f *File) Truncate() error {
	const op = "truncate"

	if f == nil || f.f == nil {
		return f.invalid(op)
	}

	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return f.vfs.pathError(op, f.name, err)
	}

	err = f.f.Truncate(pos)
	if err != nil {
		return f.vfs.pathError(op, f.name, err)
	}

	return nil
}

// Sync flushes the cached data of the file to the host storage.
func (f *File) Sync() error {
	const op = "sync"

	if f == nil || f.f == nil {
		return f.invalid(op)
	}

	err := f.f.Sync()
	if err != nil {
		return f.vfs.pathError(op, f.name, err)
	}

	return nil
}

// Close closes the File, rendering it unusable for I/O.
// Closing a closed file does nothing.
func (f *File) Close() error {
	const op = "close"

	if f == nil || f.f == nil {
		return nil
	}

	err := f.f.Close()
	f.f = nil

	if err != nil {
		return f.vfs.pathError(op, f.name, err)
	}

	return nil
}

// Tell returns the current read/write pointer of the file.
func (f *File) Tell() (int64, error) {
	const op = "tell"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	pos, err := f.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, f.vfs.pathError(op, f.name, err)
	}

	return pos, nil
}

// Size returns the size of the file in bytes.
func (f *File) Size() (int64, error) {
	const op = "size"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	info, err := f.f.Stat()
	if err != nil {
		return 0, f.vfs.pathError(op, f.name, err)
	}

	return info.Size(), nil
}

// EOF returns true if a read reached the end of the file since the last seek.
func (f *File) EOF() bool {
	return f != nil && f.eof
}

// HasError returns true if a read or a write on the file failed.
func (f *File) HasError() bool {
	return f != nil && f.err
}

// Putc writes the character c to the file.
func (f *File) Putc(c byte) (int, error) {
	return f.Write([]byte{c})
}

// Puts writes the string s to the file.
func (f *File) Puts(s string) (int, error) {
	return io.WriteString(f, s)
}

// Printf writes a formatted string to the file.
func (f *File) Printf(format string, a ...any) (int, error) {
	if f == nil || f.f == nil {
		return 0, f.invalid("printf")
	}

	return fmt.Fprintf(f, format, a...)
}

// Gets reads a line of at most n-1 bytes from the file.
// Reading stops after a newline, which is kept in the returned string.
// At end of file, Gets returns the bytes read so far, or "", io.EOF if there are none.
func (f *File) Gets(n int) (string, error) {
	if f == nil || f.f == nil {
		return "", f.invalid("gets")
	}

	var (
		line []byte
		c    [1]byte
	)

	for len(line) < n-1 {
		k, err := f.Read(c[:])
		if k == 1 {
			line = append(line, c[0])
		}

		if err == io.EOF {
			if len(line) != 0 {
				return string(line), nil
			}

			return "", io.EOF
		}

		if err != nil {
			return string(line), err
		}

		if c[0] == '\n' {
			break
		}
	}

	return string(line), nil
}

// Forward streams up to btf bytes of the file to w.
// Data forwarding is not supported: nothing is read and 0 is returned.
func (f *File) Forward(w io.Writer, btf int) (int, error) {
	const op = "forward"

	if f == nil || f.f == nil {
		return 0, f.invalid(op)
	}

	if !f.vfs.HasFeature(FeatForward) {
		return 0, &fs.PathError{Op: op, Path: f.name, Err: NotEnabled}
	}

	return 0, nil
}

// Expand allocates a contiguous block of size bytes to the file.
// Host files need no allocation: the call only checks the file is open.
func (f *File) Expand(size int64, opt byte) error {
	const op = "expand"

	if f == nil || f.f == nil {
		return f.invalid(op)
	}

	if !f.vfs.HasFeature(FeatExpand) {
		return &fs.PathError{Op: op, Path: f.name, Err: NotEnabled}
	}

	if size < 0 {
		return &fs.PathError{Op: op, Path: f.name, Err: InvalidParameter}
	}

	return nil
}
