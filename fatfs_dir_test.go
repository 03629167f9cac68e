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
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/avfs/fatfs"
	"github.com/avfs/fatfs/fattest"
)

func TestDirRead(t *testing.T) {
	vfs := fattest.NewFS(t)
	mountPoints := fattest.MountAll(t, vfs)

	fattest.CreateFile(t, filepath.Join(mountPoints[0], "a.txt"), []byte("12345"))

	if err := os.Mkdir(filepath.Join(mountPoints[0], "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir : want error to be nil, got %v", err)
	}

	dir, err := vfs.Opendir("0:/")
	if err != nil {
		t.Fatalf("Opendir : want error to be nil, got %v", err)
	}

	if dir.Name() != "0:/" {
		t.Errorf("Name : want 0:/, got %s", dir.Name())
	}

	readAll := func() map[string]fatfs.FileInfo {
		entries := make(map[string]fatfs.FileInfo)

		for {
			var fno fatfs.FileInfo

			err := dir.Read(&fno)
			if err != nil {
				t.Fatalf("Read : want error to be nil, got %v", err)
			}

			if fno.Name == "" {
				return entries
			}

			entries[fno.Name] = fno
		}
	}

	entries := readAll()
	if len(entries) != 2 {
		t.Fatalf("Read : want 2 entries, got %d", len(entries))
	}

	if fno := entries["a.txt"]; fno.Size != 5 || fno.IsDir() || fno.Date == 0 {
		t.Errorf("Read : want a.txt to be a 5 bytes file, got %+v", fno)
	}

	if fno := entries["sub"]; !fno.IsDir() || fno.Attrib != fatfs.AttrDirectory {
		t.Errorf("Read : want sub to be a directory, got %+v", fno)
	}

	var fno fatfs.FileInfo

	if err = dir.Read(&fno); err != nil || fno.Name != "" {
		t.Errorf("Read : want end of directory, got %q, %v", fno.Name, err)
	}

	if err = dir.Read(nil); err != nil {
		t.Errorf("Read : want rewind to succeed, got %v", err)
	}

	if entries = readAll(); len(entries) != 2 {
		t.Errorf("Read : want 2 entries after rewind, got %d", len(entries))
	}

	if err = dir.Close(); err != nil {
		t.Errorf("Close : want error to be nil, got %v", err)
	}

	err = dir.Close()
	fattest.AssertPathError(t, err).Op("closedir").Path("0:/").Result(fatfs.InvalidObject)

	err = dir.Read(&fno)
	fattest.AssertPathError(t, err).Op("readdir").Result(fatfs.InvalidObject)
}

func TestOpendirErrors(t *testing.T) {
	vfs := fattest.NewFS(t)
	mountPoints := fattest.MountAll(t, vfs)

	fattest.CreateFile(t, filepath.Join(mountPoints[1], "file"), nil)

	_, err := vfs.Opendir("1:/missing")
	fattest.AssertPathError(t, err).Op("opendir").Path("1:/missing").Result(fatfs.NoFile)

	_, err = vfs.Opendir("1:/file")
	fattest.AssertPathError(t, err).Op("opendir").Result(fatfs.IntErr)
}

func TestFind(t *testing.T) {
	vfs := fattest.NewFS(t, fatfs.WithFeatures(fatfs.FeatFind))
	mountPoints := fattest.MountAll(t, vfs)

	for _, name := range []string{"a.txt", "b.TXT", "c.log", "readme", "a[1].txt"} {
		fattest.CreateFile(t, filepath.Join(mountPoints[0], name), nil)
	}

	var fno fatfs.FileInfo

	dir, err := vfs.FindFirst("0:/", "*.txt", &fno)
	if err != nil {
		t.Fatalf("FindFirst : want error to be nil, got %v", err)
	}

	defer dir.Close()

	var names []string

	for fno.Name != "" {
		names = append(names, fno.Name)

		if err = dir.FindNext(&fno); err != nil {
			t.Fatalf("FindNext : want error to be nil, got %v", err)
		}
	}

	slices.Sort(names)

	if want := []string{"a.txt", "a[1].txt", "b.TXT"}; !slices.Equal(names, want) {
		t.Errorf("FindNext : want %v, got %v", want, names)
	}

	none, err := vfs.FindFirst("0:/", "?.exe", &fno)
	if err != nil || fno.Name != "" {
		t.Errorf("FindFirst : want no match, got %q, %v", fno.Name, err)
	}

	_ = none.Close()

	for _, pattern := range []string{"a[1].txt", "A[1].TXT", "*[*", "?[?]*"} {
		brackets, err := vfs.FindFirst("0:/", pattern, &fno)
		if err != nil {
			t.Fatalf("FindFirst %s : want error to be nil, got %v", pattern, err)
		}

		if fno.Name != "a[1].txt" {
			t.Errorf("FindFirst %s : want a[1].txt, got %q", pattern, fno.Name)
		}

		_ = brackets.Close()
	}

	literal, err := vfs.FindFirst("0:/", "[a]*", &fno)
	if err != nil || fno.Name != "" {
		t.Errorf("FindFirst [a]* : want no match, got %q, %v", fno.Name, err)
	}

	_ = literal.Close()

	_, err = vfs.FindFirst("0:/", "*", nil)
	fattest.AssertPathError(t, err).Op("findfirst").Result(fatfs.InvalidParameter)

	_, err = vfs.FindFirst("0:/missing", "*", &fno)
	fattest.AssertPathError(t, err).Op("findfirst").Path("0:/missing").Result(fatfs.NoFile)

	vfs = fattest.NewFS(t)

	_, err = vfs.FindFirst("0:/", "*", &fno)
	fattest.AssertPathError(t, err).Op("findfirst").Result(fatfs.NotEnabled)
}
