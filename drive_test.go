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
	"testing"
)

func TestParsePrefix(t *testing.T) {
	vfs, err := New()
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	sfn, err := New(WithLFN(0))
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	strs, err := New(WithVolumes(3), WithVolumeStrs())
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	tests := []struct {
		vfs  *FS
		path string
		kind prefixKind
		vol  int
		rest string
	}{
		{vfs: vfs, path: "0:/a/b", kind: numericID, vol: 0, rest: "/a/b"},
		{vfs: vfs, path: "1:a", kind: numericID, vol: 1, rest: "a"},
		{vfs: vfs, path: "1:", kind: numericID, vol: 1, rest: ""},
		{vfs: vfs, path: "2:/a", kind: badPrefix, vol: -1, rest: "2:/a"},
		{vfs: vfs, path: "/a/b", kind: noPrefix, vol: -1, rest: "/a/b"},
		{vfs: vfs, path: "", kind: noPrefix, vol: -1, rest: ""},
		{vfs: vfs, path: "SD1:/a", kind: badPrefix, vol: -1, rest: "SD1:/a"},
		{vfs: vfs, path: "my disk:/a", kind: badPrefix, vol: -1, rest: "my disk:/a"},
		{vfs: sfn, path: "my disk:/a", kind: noPrefix, vol: -1, rest: "my disk:/a"},
		{vfs: sfn, path: "1:/a", kind: numericID, vol: 1, rest: "/a"},
		{vfs: strs, path: "ram:/a", kind: stringID, vol: 0, rest: "/a"},
		{vfs: strs, path: "Nand:", kind: stringID, vol: 1, rest: ""},
		{vfs: strs, path: "CF:x", kind: stringID, vol: 2, rest: "x"},
		{vfs: strs, path: "2:x", kind: numericID, vol: 2, rest: "x"},
		{vfs: strs, path: "7:x", kind: badPrefix, vol: -1, rest: "7:x"},
		{vfs: strs, path: "SD1:x", kind: badPrefix, vol: -1, rest: "SD1:x"},
		{vfs: strs, path: "RAMX:x", kind: badPrefix, vol: -1, rest: "RAMX:x"},
	}

	for _, test := range tests {
		p := test.vfs.parsePrefix(test.path)
		if p.kind != test.kind || p.vol != test.vol || p.rest != test.rest {
			t.Errorf("parsePrefix %q : want (%d, %d, %q), got (%d, %d, %q)",
				test.path, test.kind, test.vol, test.rest, p.kind, p.vol, p.rest)
		}
	}
}

func TestDriveNumber(t *testing.T) {
	t.Run("CurrentDrive", func(t *testing.T) {
		vfs, err := New()
		if err != nil {
			t.Fatalf("New : want error to be nil, got %v", err)
		}

		vfs.curVol = 1

		vol, rest := vfs.driveNumber("a/b")
		if vol != 1 || rest != "a/b" {
			t.Errorf("driveNumber : want (1, a/b), got (%d, %s)", vol, rest)
		}

		vol, _ = vfs.driveNumber("0:a/b")
		if vol != 0 {
			t.Errorf("driveNumber : want drive to be 0, got %d", vol)
		}
	})

	t.Run("NoRelativePath", func(t *testing.T) {
		vfs, err := New(WithRelativePath(0))
		if err != nil {
			t.Fatalf("New : want error to be nil, got %v", err)
		}

		vfs.curVol = 1

		vol, _ := vfs.driveNumber("a/b")
		if vol != 0 {
			t.Errorf("driveNumber : want drive to be 0, got %d", vol)
		}
	})

	t.Run("SingleVolume", func(t *testing.T) {
		vfs, err := New(WithVolumes(1))
		if err != nil {
			t.Fatalf("New : want error to be nil, got %v", err)
		}

		vol, _ := vfs.driveNumber("a/b")
		if vol != 0 {
			t.Errorf("driveNumber : want drive to be 0, got %d", vol)
		}

		vol, _ = vfs.driveNumber("1:a/b")
		if vol != -1 {
			t.Errorf("driveNumber : want drive to be -1, got %d", vol)
		}
	})
}

func TestMountPoint(t *testing.T) {
	tests := []struct {
		wd, dir, want string
	}{
		{wd: "/home/user", dir: "fat", want: "/home/user/fat"},
		{wd: "/home/user", dir: "fat/", want: "/home/user/fat"},
		{wd: "/home/user", dir: ".", want: "/home/user"},
		{wd: "/home/user", dir: "../other", want: "/home/other"},
		{wd: "", dir: "/mnt/sd//card/", want: "/mnt/sd/card"},
		{wd: "", dir: "/", want: ""},
		{wd: "/", dir: ".", want: ""},
	}

	for _, test := range tests {
		got := mountPoint(test.wd, test.dir)
		if got != test.want {
			t.Errorf("mountPoint %q %q : want %q, got %q", test.wd, test.dir, test.want, got)
		}
	}
}

func TestVolumeHostPath(t *testing.T) {
	tests := []struct {
		mountPoint, rest, want string
	}{
		{mountPoint: "/mnt/fat", rest: "/a/b", want: "/mnt/fat/a/b"},
		{mountPoint: "/mnt/fat", rest: "a/b", want: "/mnt/fat/a/b"},
		{mountPoint: "/mnt/fat", rest: "", want: "/mnt/fat/"},
		{mountPoint: "", rest: "/a", want: "/a"},
		{mountPoint: "", rest: "a", want: "/a"},
	}

	for _, test := range tests {
		v := &Volume{mountPoint: test.mountPoint}

		got := v.hostPath(test.rest)
		if got != test.want {
			t.Errorf("hostPath %q %q : want %q, got %q", test.mountPoint, test.rest, test.want, got)
		}
	}
}

func TestFromHostPath(t *testing.T) {
	vfs, err := New(WithVolumes(3))
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	vfs.drives[0] = &Volume{num: 0, mountPoint: "/mnt/fat"}
	vfs.drives[2] = &Volume{num: 2, mountPoint: "/mnt/fat/inner"}

	tests := []struct {
		hostPath string
		want     string
		ok       bool
	}{
		{hostPath: "/mnt/fat", want: "0:/", ok: true},
		{hostPath: "/mnt/fat/a/b", want: "0:/a/b", ok: true},
		{hostPath: "/mnt/fat/inner/c", want: "2:/c", ok: true},
		{hostPath: "/mnt/fat/innerc", want: "0:/innerc", ok: true},
		{hostPath: "/mnt/fatty", want: "", ok: false},
		{hostPath: "/home", want: "", ok: false},
	}

	for _, test := range tests {
		got, ok := vfs.fromHostPath(test.hostPath)
		if got != test.want || ok != test.ok {
			t.Errorf("fromHostPath %q : want (%q, %t), got (%q, %t)", test.hostPath, test.want, test.ok, got, ok)
		}
	}
}

func TestDriveName(t *testing.T) {
	vfs, err := New(WithVolumeStrs("RAM", "SD"))
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	if got := vfs.driveName(1); got != "SD" {
		t.Errorf("driveName : want SD, got %s", got)
	}

	vfs.drives[1] = &Volume{num: 1, mountPoint: "/mnt/sd"}

	got, _ := vfs.fromHostPath("/mnt/sd/x")
	if got != "SD:/x" {
		t.Errorf("fromHostPath : want SD:/x, got %s", got)
	}
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		ok   bool
	}{
		{name: "Default", ok: true},
		{name: "TooManyVolumes", opts: []Option{WithVolumes(MaxVolumes + 1)}},
		{name: "NoVolume", opts: []Option{WithVolumes(0)}},
		{name: "LowercaseVolumeStr", opts: []Option{WithVolumeStrs("ram", "sd")}},
		{name: "VolumeStrsCount", opts: []Option{WithVolumeStrs("RAM")}},
		{name: "DefaultVolumeStrs", opts: []Option{WithVolumes(8), WithVolumeStrs()}, ok: true},
		{name: "MissingVolumeStrs", opts: []Option{WithVolumes(9), WithVolumeStrs()}},
		{name: "ShortLFN", opts: []Option{WithLFN(8)}},
		{name: "LongLFN", opts: []Option{WithLFN(256)}},
		{name: "RelativePath", opts: []Option{WithRelativePath(3)}},
		{name: "MaxPath", opts: []Option{WithMaxPath(0)}},
	}

	for _, test := range tests {
		_, err := New(test.opts...)
		if (err == nil) != test.ok {
			t.Errorf("New %s : want success to be %t, got error %v", test.name, test.ok, err)
		}
	}

	vfs, err := New(WithLFN(0))
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	if vfs.HasFeature(FeatLFN) || vfs.maxLFN != ShortNameLen {
		t.Errorf("WithLFN(0) : want short file names, got features %b and max length %d", vfs.features, vfs.maxLFN)
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{pattern: "*", name: "", want: true},
		{pattern: "*", name: "readme", want: true},
		{pattern: "?", name: "", want: false},
		{pattern: "?", name: "a", want: true},
		{pattern: "*.txt", name: "NOTES.TXT", want: true},
		{pattern: "*.txt", name: "notes.txt.bak", want: false},
		{pattern: "a*b*c", name: "aXbYbZc", want: true},
		{pattern: "a*b*c", name: "aXbYbZ", want: false},
		{pattern: "**x", name: "abx", want: true},
		{pattern: "a[1].txt", name: "A[1].TXT", want: true},
		{pattern: "[ab]", name: "a", want: false},
		{pattern: "a\\b", name: "a\\b", want: true},
		{pattern: "a\\*", name: "a\\xyz", want: true},
		{pattern: "abc", name: "ab", want: false},
		{pattern: "ab", name: "abc", want: false},
	}

	for _, test := range tests {
		if got := matchPattern(test.pattern, test.name); got != test.want {
			t.Errorf("matchPattern %q %q : want %t, got %t", test.pattern, test.name, test.want, got)
		}
	}
}
