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

import "time"

// fatEpoch is the first year representable in a packed FAT date.
const fatEpoch = 1980

// PackDate returns the packed FAT date of t in its own location.
// Years before 1980 are clamped to 1980.
//
//	bits 15-9: year since 1980, bits 8-5: month, bits 4-0: day.
func PackDate(t time.Time) uint16 {
	year := t.Year() - fatEpoch
	if year < 0 {
		year = 0
	}

	return uint16(year&0x7F)<<9 | uint16(int(t.Month())&0x0F)<<5 | uint16(t.Day()&0x1F)
}

// PackTime returns the packed FAT time of t in its own location.
// Seconds are stored with a 2 second resolution.
//
//	bits 15-11: hour, bits 10-5: minute, bits 4-0: second / 2.
func PackTime(t time.Time) uint16 {
	return uint16(t.Hour()&0x1F)<<11 | uint16(t.Minute()&0x3F)<<5 | uint16((t.Second()/2)&0x1F)
}

// PackDateTime returns the packed date in the high 16 bits and the packed time in the low 16 bits.
func PackDateTime(t time.Time) uint32 {
	return uint32(PackDate(t))<<16 | uint32(PackTime(t))
}

// UnpackDateTime returns the local time stored in a packed FAT date and time.
func UnpackDateTime(date, tm uint16) time.Time {
	return time.Date(
		fatEpoch+int(date>>9),
		time.Month((date>>5)&0x0F),
		int(date&0x1F),
		int(tm>>11),
		int((tm>>5)&0x3F),
		int(tm&0x1F)*2,
		0,
		time.Local)
}

// FatTime returns the current time of the file system clock packed as by PackDateTime.
func (vfs *FS) FatTime() uint32 {
	return PackDateTime(vfs.clock.Now().In(time.Local))
}
