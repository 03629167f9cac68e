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

// Package fatfs maps a FAT style file system API onto a POSIX host file system.
//
// Paths have the form [<drive>:]<path>, where <drive> is a decimal digit or,
// when enabled, a drive id string like "SD1". Each logical drive is mounted on a
// directory of the host and every operation is forwarded to the host file system
// (see package host) with its error translated into a FAT result code.
//
// There is no FAT on-disk structure: the files of a volume are ordinary files
// below its mount point.
package fatfs

import (
	"time"
)

const (
	DefaultVolumes      = 2    // DefaultVolumes is the default number of logical drives.
	DefaultMaxLFN       = 255  // DefaultMaxLFN is the default maximum length of a long file name.
	DefaultMaxPath      = 1024 // DefaultMaxPath is the default maximum length of a host path.
	DefaultRelativePath = 2    // DefaultRelativePath enables Chdir, Chdrive and Getcwd.
	MaxVolumes          = 10   // MaxVolumes is the number of drives addressable by a single digit.
	ShortNameLen        = 12   // ShortNameLen is the length of a 8.3 file name with its dot.
	LabelLen            = 11   // LabelLen is the maximum length of a volume label.
)

// DefaultVolumeStrs are the drive id strings used when string drive ids are enabled
// without an explicit list.
var DefaultVolumeStrs = []string{"RAM", "NAND", "CF", "SD1", "SD2", "USB1", "USB2", "USB3"}

// Mode defines the access mode and open method flags of Open.
type Mode uint8

const (
	ModeRead         Mode = 0x01 // ModeRead specifies read access to the file.
	ModeWrite        Mode = 0x02 // ModeWrite specifies write access to the file.
	ModeOpenExisting Mode = 0x00 // ModeOpenExisting opens a file, it fails if the file does not exist.
	ModeCreateNew    Mode = 0x04 // ModeCreateNew creates a new file, it fails if the file exists.
	ModeCreateAlways Mode = 0x08 // ModeCreateAlways creates a new file, an existing file is truncated.
	ModeOpenAlways   Mode = 0x10 // ModeOpenAlways opens the file if it exists, otherwise creates it.
	ModeOpenAppend   Mode = 0x30 // ModeOpenAppend is ModeOpenAlways with writes at the end of file.
)

// Attr defines the attribute bits of a file.
type Attr uint8

const (
	AttrReadOnly  Attr = 0x01 // AttrReadOnly is the read only attribute (not mapped to the host).
	AttrHidden    Attr = 0x02 // AttrHidden is the hidden attribute (not mapped to the host).
	AttrSystem    Attr = 0x04 // AttrSystem marks block devices, character devices and sockets.
	AttrDirectory Attr = 0x10 // AttrDirectory marks directories.
	AttrArchive   Attr = 0x20 // AttrArchive is the archive attribute (not mapped to the host).
)

// IsDir returns true if the directory attribute is set.
func (a Attr) IsDir() bool {
	return a&AttrDirectory != 0
}

// Features defines the set of optional features of a file system.
type Features uint32

const (
	// FeatLFN enables long file names. Without it, names are limited to 12 characters
	// and a space ends the scan of a drive prefix.
	FeatLFN Features = 1 << iota

	// FeatStrVolumeID enables drive id strings ("SD1:") in addition to drive numbers.
	FeatStrVolumeID

	// FeatReentrant serializes the access to the drive table.
	FeatReentrant

	// FeatFind enables FindFirst and FindNext.
	FeatFind

	// FeatForward enables File.Forward.
	FeatForward

	// FeatExpand enables File.Expand.
	FeatExpand

	// FeatMkfs enables Mkfs.
	FeatMkfs

	// FeatMultiPartition enables Fdisk.
	FeatMultiPartition
)

// FileInfo is the file information returned by Stat and by directory reads.
// At the end of a directory the Name is empty.
type FileInfo struct {
	Size    int64  // Size is the file size in bytes.
	Date    uint16 // Date is the packed modification date.
	Time    uint16 // Time is the packed modification time.
	Attrib  Attr   // Attrib is the attribute bit set.
	AltName string // AltName is the name truncated to the width of a short file name.
	Name    string // Name is the file name, truncated to the maximum name length.
}

// ModTime returns the modification time stored in the packed date and time fields.
func (fi *FileInfo) ModTime() time.Time {
	return UnpackDateTime(fi.Date, fi.Time)
}

// IsDir returns true if the file is a directory.
func (fi *FileInfo) IsDir() bool {
	return fi.Attrib.IsDir()
}
