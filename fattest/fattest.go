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

// Package fattest provides helpers to test fatfs file systems.
package fattest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/avfs/fatfs"
	"github.com/valyala/fastrand"
)

// assertPathError stores the current fs.PathError test data.
type assertPathError struct {
	tb   testing.TB
	err  error
	op   string
	path string
}

// AssertPathError checks if err is a fs.PathError.
func AssertPathError(tb testing.TB, err error) *assertPathError {
	tb.Helper()

	if err == nil {
		tb.Error("want error to be not nil, got nil")

		return &assertPathError{tb: tb}
	}

	e, ok := err.(*fs.PathError)
	if !ok {
		tb.Errorf("want error type to be *fs.PathError, got %v : %v", reflect.TypeOf(err), err)

		return &assertPathError{tb: tb}
	}

	return &assertPathError{tb: tb, op: e.Op, path: e.Path, err: e.Err}
}

// Op checks the Op of the current fs.PathError.
func (cp *assertPathError) Op(op string) *assertPathError {
	tb := cp.tb
	tb.Helper()

	if cp.err == nil {
		return cp
	}

	if cp.op != op {
		tb.Errorf("want Op to be %s, got %s", op, cp.op)
	}

	return cp
}

// Path checks the path of the current fs.PathError.
func (cp *assertPathError) Path(path string) *assertPathError {
	tb := cp.tb
	tb.Helper()

	if cp.err == nil {
		return cp
	}

	if cp.path != path {
		tb.Errorf("want Path to be %s, got %s", path, cp.path)
	}

	return cp
}

// Result checks the result code of the current fs.PathError.
func (cp *assertPathError) Result(want fatfs.Result) *assertPathError {
	tb := cp.tb
	tb.Helper()

	if cp.err == nil {
		return cp
	}

	if got := fatfs.ResultOf(cp.err); got != want {
		tb.Errorf("%s : want result to be %v, got %v", cp.path, want, got)
	}

	return cp
}

// AssertLinkError checks if err is an *os.LinkError carrying the result code want.
func AssertLinkError(tb testing.TB, err error, op string, want fatfs.Result) {
	tb.Helper()

	var e *os.LinkError
	if !errors.As(err, &e) {
		tb.Errorf("want error type to be *os.LinkError, got %v : %v", reflect.TypeOf(err), err)

		return
	}

	if e.Op != op {
		tb.Errorf("want Op to be %s, got %s", op, e.Op)
	}

	if got := fatfs.ResultOf(e.Err); got != want {
		tb.Errorf("%s : want result to be %v, got %v", e.Old, want, got)
	}
}

// AssertResult checks that err carries the result code want.
func AssertResult(tb testing.TB, err error, want fatfs.Result) {
	tb.Helper()

	if got := fatfs.ResultOf(err); got != want {
		tb.Errorf("want result to be %v, got %v (%v)", want, got, err)
	}
}

// NewFS returns a new file system created with opts or stops the test.
func NewFS(tb testing.TB, opts ...fatfs.Option) *fatfs.FS {
	tb.Helper()

	vfs, err := fatfs.New(opts...)
	if err != nil {
		tb.Fatalf("New : want error to be nil, got %v", err)
	}

	return vfs
}

// MountAll mounts every drive of vfs on a directory "vol<n>" of a temporary directory
// and returns the mount points indexed by drive number.
func MountAll(tb testing.TB, vfs *fatfs.FS) []string {
	tb.Helper()

	root := tb.TempDir()
	mountPoints := make([]string, vfs.Volumes())

	for i := range mountPoints {
		dir := filepath.Join(root, "vol"+strconv.Itoa(i))

		v, err := vfs.Mount(strconv.Itoa(i) + ":" + dir)
		if err != nil {
			tb.Fatalf("Mount %d : want error to be nil, got %v", i, err)
		}

		mountPoints[i] = v.MountPoint()
	}

	return mountPoints
}

// RandomBytes returns n random bytes.
func RandomBytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(fastrand.Uint32n(256))
	}

	return buf
}

// CreateFile creates the host file name with content or stops the test.
func CreateFile(tb testing.TB, name string, content []byte) {
	tb.Helper()

	err := os.WriteFile(name, content, 0o644)
	if err != nil {
		tb.Fatalf("WriteFile %s : want error to be nil, got %v", name, err)
	}
}
