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

package fatfs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avfs/fatfs"
	"github.com/avfs/fatfs/fattest"
)

func TestLabel(t *testing.T) {
	vfs := fattest.NewFS(t)
	mountPoints := fattest.MountAll(t, vfs)

	label, serial, err := vfs.GetLabel("0:")
	if err != nil || label != "" || serial != 0 {
		t.Errorf("GetLabel : want no label, got %q, %d, %v", label, serial, err)
	}

	if err = vfs.SetLabel("0:MYDISK"); err != nil {
		t.Fatalf("SetLabel : want error to be nil, got %v", err)
	}

	assertContent(t, filepath.Join(mountPoints[0], fatfs.LabelFile), "MYDISK")

	label, _, err = vfs.GetLabel("0:")
	if err != nil || label != "MYDISK" {
		t.Errorf("GetLabel : want MYDISK, got %q, %v", label, err)
	}

	if err = vfs.SetLabel("1:A VERY LONG LABEL"); err != nil {
		t.Fatalf("SetLabel : want error to be nil, got %v", err)
	}

	label, _, _ = vfs.GetLabel("1:/ignored")
	if label != "A VERY LONG" {
		t.Errorf("GetLabel : want label truncated to %d bytes, got %q", fatfs.LabelLen, label)
	}

	fattest.CreateFile(t, filepath.Join(mountPoints[1], fatfs.LabelFile), []byte("NEW\nsecond line"))
	fattest.CreateFile(t, filepath.Join(mountPoints[1], fatfs.SerialFile), []byte("12345678xyz\n"))

	label, serial, err = vfs.GetLabel("1:")
	if err != nil || label != "NEW" || serial != 12345678 {
		t.Errorf("GetLabel : want NEW and 12345678, got %q, %d, %v", label, serial, err)
	}

	fattest.CreateFile(t, filepath.Join(mountPoints[1], fatfs.SerialFile), []byte("none"))

	_, serial, _ = vfs.GetLabel("1:")
	if serial != 0 {
		t.Errorf("GetLabel : want serial 0, got %d", serial)
	}

	err = vfs.SetLabel("9:BAD")
	fattest.AssertPathError(t, err).Op("setlabel").Path("9:BAD").Result(fatfs.InvalidDrive)
}

func TestLabelCurrentDrive(t *testing.T) {
	vfs := fattest.NewFS(t)
	mountPoints := fattest.MountAll(t, vfs)

	if err := vfs.Chdrive("1:"); err != nil {
		t.Fatalf("Chdrive : want error to be nil, got %v", err)
	}

	if err := vfs.SetLabel("DATA"); err != nil {
		t.Fatalf("SetLabel : want error to be nil, got %v", err)
	}

	assertContent(t, filepath.Join(mountPoints[1], fatfs.LabelFile), "DATA")

	if _, err := os.Stat(filepath.Join(mountPoints[0], fatfs.LabelFile)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat : want no label on drive 0, got %v", err)
	}
}

// memStore is a LineStore keeping its lines in memory.
type memStore map[string]string

func (ms memStore) ReadLine(dir, name string) (string, error) {
	return ms[filepath.Join(dir, name)], nil
}

func (ms memStore) WriteLine(dir, name, line string) error {
	ms[filepath.Join(dir, name)] = line

	return nil
}

func TestLineStore(t *testing.T) {
	ms := memStore{}
	vfs := fattest.NewFS(t, fatfs.WithLineStore(ms), fatfs.WithFeatures(fatfs.FeatMkfs))
	mountPoints := fattest.MountAll(t, vfs)

	if err := vfs.SetLabel("0:MEM"); err != nil {
		t.Fatalf("SetLabel : want error to be nil, got %v", err)
	}

	if got := ms[filepath.Join(mountPoints[0], fatfs.LabelFile)]; got != "MEM" {
		t.Errorf("SetLabel : want MEM in the store, got %q", got)
	}

	if _, err := os.Stat(filepath.Join(mountPoints[0], fatfs.LabelFile)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat : want no label file, got %v", err)
	}

	if err := vfs.Mkfs("0:"); err != nil {
		t.Fatalf("Mkfs : want error to be nil, got %v", err)
	}

	if _, ok := ms[filepath.Join(mountPoints[0], fatfs.SerialFile)]; !ok {
		t.Errorf("Mkfs : want a serial number in the store")
	}
}

func TestSidecarStore(t *testing.T) {
	dir := t.TempDir()
	ss := fatfs.NewSidecarStore(fattest.NewFS(t).Host())

	line, err := ss.ReadLine(dir, "missing")
	if err != nil || line != "" {
		t.Errorf("ReadLine : want empty line, got %q, %v", line, err)
	}

	if err = ss.WriteLine(dir, "value", "first"); err != nil {
		t.Fatalf("WriteLine : want error to be nil, got %v", err)
	}

	if err = ss.WriteLine(dir, "value", "2nd"); err != nil {
		t.Fatalf("WriteLine : want error to be nil, got %v", err)
	}

	assertContent(t, filepath.Join(dir, "value"), "2nd")

	fattest.CreateFile(t, filepath.Join(dir, "crlf"), []byte("dos\r\nline"))

	line, _ = ss.ReadLine(dir, "crlf")
	if line != "dos" {
		t.Errorf("ReadLine : want dos, got %q", line)
	}

	err = ss.WriteLine(filepath.Join(dir, "missing"), "value", "x")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WriteLine : want a not exist error, got %v", err)
	}
}
