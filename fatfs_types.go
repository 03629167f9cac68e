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
	"log/slog"
	"sync"

	"github.com/avfs/fatfs/host"
)

// FS is a set of logical drives mounted on directories of a host file system.
// It holds the drive table and the current drive; independent FS values
// do not share any state.
type FS struct {
	host       host.FS      // host is the file system storing the files of every volume.
	lines      LineStore    // lines stores the volume label and serial number.
	clock      Clock        // clock is the time source of FatTime.
	log        *slog.Logger // log receives debug records.
	drives     []*Volume    // drives is the drive table indexed by drive number.
	volumeStrs []string     // volumeStrs are the drive id strings when FeatStrVolumeID is set.
	curVol     int          // curVol is the current drive.
	relPath    int          // relPath is the relative path support level (0, 1 or 2).
	maxLFN     int          // maxLFN is the maximum length of a file name.
	maxPath    int          // maxPath is the maximum length of a host path.
	features   Features     // features is the set of optional features.
	mu         sync.Mutex   // mu guards drives and curVol when FeatReentrant is set.
}

// Volume is the mount descriptor of a logical drive.
type Volume struct {
	num        int    // num is the drive number.
	name       string // name is the drive id, a string id when enabled or the number.
	mountPoint string // mountPoint is the absolute host directory, without trailing separator.
}

// File is an open file.
// A closed File has a nil host file and every operation on it fails with InvalidObject.
type File struct {
	vfs  *FS       // vfs is the file system of the file.
	f    host.File // f is the open host file, nil once closed.
	name string    // name is the FAT path given to Open.
	eof  bool      // eof is set when a read reached the end of file.
	err  bool      // err is set when a read or write failed.
}

// Dir is an open directory.
// A closed Dir has a nil host file and every operation on it fails with InvalidObject.
type Dir struct {
	vfs     *FS       // vfs is the file system of the directory.
	f       host.File // f is the open host directory, nil once closed.
	name    string    // name is the FAT path given to Opendir.
	pattern string    // pattern is the name pattern of FindFirst and FindNext.
}
