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
	"time"
)

func TestPackDateTime(t *testing.T) {
	tests := []struct {
		tm       time.Time
		date, tt uint16
	}{
		{tm: time.Date(2024, 3, 15, 13, 45, 31, 0, time.Local), date: 44<<9 | 3<<5 | 15, tt: 13<<11 | 45<<5 | 15},
		{tm: time.Date(1980, 1, 1, 0, 0, 0, 0, time.Local), date: 1<<5 | 1, tt: 0},
		{tm: time.Date(1975, 6, 2, 23, 59, 59, 0, time.Local), date: 6<<5 | 2, tt: 23<<11 | 59<<5 | 29},
		{tm: time.Date(2107, 12, 31, 0, 0, 2, 0, time.Local), date: 127<<9 | 12<<5 | 31, tt: 1},
	}

	for _, test := range tests {
		date, tt := PackDate(test.tm), PackTime(test.tm)
		if date != test.date || tt != test.tt {
			t.Errorf("Pack %v : want (%#04x, %#04x), got (%#04x, %#04x)", test.tm, test.date, test.tt, date, tt)
		}

		packed := PackDateTime(test.tm)
		if want := uint32(test.date)<<16 | uint32(test.tt); packed != want {
			t.Errorf("PackDateTime %v : want %#08x, got %#08x", test.tm, want, packed)
		}
	}
}

func TestUnpackDateTime(t *testing.T) {
	tm := time.Date(2023, 11, 5, 8, 30, 17, 0, time.Local)

	got := UnpackDateTime(PackDate(tm), PackTime(tm))

	want := time.Date(2023, 11, 5, 8, 30, 16, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("UnpackDateTime : want %v, got %v", want, got)
	}

	last := time.Date(2099, 12, 31, 23, 59, 59, 0, time.Local)
	if got := UnpackDateTime(PackDate(last), PackTime(last)); got.Second() != 58 || got.Minute() != 59 || got.Hour() != 23 {
		t.Errorf("UnpackDateTime : want 23:59:58, got %v", got)
	}

	fi := FileInfo{Date: PackDate(tm), Time: PackTime(tm)}
	if !fi.ModTime().Equal(want) {
		t.Errorf("ModTime : want %v, got %v", want, fi.ModTime())
	}
}

func TestFatTime(t *testing.T) {
	now := time.Date(2020, 2, 29, 12, 0, 10, 0, time.Local)

	vfs, err := New(WithClock(ClockFunc(func() time.Time { return now })))
	if err != nil {
		t.Fatalf("New : want error to be nil, got %v", err)
	}

	want := uint32(40<<9|2<<5|29)<<16 | uint32(12<<11|5)
	if got := vfs.FatTime(); got != want {
		t.Errorf("FatTime : want %#08x, got %#08x", want, got)
	}
}
