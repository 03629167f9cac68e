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

package failfs_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/avfs/fatfs/host"
	"github.com/avfs/fatfs/host/failfs"
	"github.com/avfs/fatfs/host/osfs"
)

var (
	// Tests that failfs.FailFS struct implements host.FS interface.
	_ host.FS = &failfs.FailFS{}

	// Tests that failfs.FailFile struct implements host.File interface.
	_ host.File = &failfs.FailFile{}
)

func TestFailFSNoFail(t *testing.T) {
	vfs := failfs.New(osfs.New())
	dir := t.TempDir()
	name := filepath.Join(dir, "file")

	f, err := vfs.OpenFile(name, os.O_CREATE|os.O_RDWR, 0o666)
	if err != nil {
		t.Fatalf("OpenFile : want error to be nil, got %v", err)
	}

	if _, ok := f.(*failfs.FailFile); !ok {
		t.Errorf("OpenFile : want file type to be *failfs.FailFile, got %T", f)
	}

	_, err = f.Write([]byte("data"))
	if err != nil {
		t.Errorf("Write : want error to be nil, got %v", err)
	}

	err = f.Close()
	if err != nil {
		t.Errorf("Close : want error to be nil, got %v", err)
	}
}

func TestFailFSReadOnly(t *testing.T) {
	vfs := failfs.New(osfs.New())
	vfs.SetFailFunc(failfs.ReadOnlyFunc)

	dir := t.TempDir()

	err := vfs.Mkdir(filepath.Join(dir, "sub"), 0o777)
	if !errors.Is(err, unix.EROFS) {
		t.Errorf("Mkdir : want error to be %v, got %v", unix.EROFS, err)
	}

	err = vfs.Rename(dir, dir+"2")

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || linkErr.Err != unix.EROFS {
		t.Errorf("Rename : want error to be a *os.LinkError with %v, got %v", unix.EROFS, err)
	}

	f, err := vfs.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("OpenFile : want error to be nil, got %v", err)
	}

	err = f.Close()
	if err != nil {
		t.Errorf("Close : want error to be nil, got %v", err)
	}
}

func TestFailFSErrno(t *testing.T) {
	vfs := failfs.New(osfs.New())
	vfs.SetFailFunc(failfs.ErrnoFunc(unix.EACCES, failfs.FnStat))

	dir := t.TempDir()

	_, err := vfs.Stat(dir)

	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Err != unix.EACCES || pathErr.Op != "stat" {
		t.Errorf("Stat : want *fs.PathError stat with %v, got %v", unix.EACCES, err)
	}

	_, err = vfs.Getwd()
	if err != nil {
		t.Errorf("Getwd : want error to be nil, got %v", err)
	}

	vfs.SetFailFunc(nil)

	_, err = vfs.Stat(dir)
	if err != nil {
		t.Errorf("Stat : want error to be nil, got %v", err)
	}
}

func TestFailFileNilPtr(t *testing.T) {
	f := (*failfs.FailFile)(nil)

	if _, err := f.Read(nil); err != fs.ErrInvalid {
		t.Errorf("Read : want error to be %v, got %v", fs.ErrInvalid, err)
	}

	if err := f.Close(); err != fs.ErrInvalid {
		t.Errorf("Close : want error to be %v, got %v", fs.ErrInvalid, err)
	}
}
