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
	"log/slog"

	"github.com/avfs/fatfs/host"
	"github.com/avfs/fatfs/host/osfs"
)

// Option defines the option function used for initializing FS.
type Option func(*FS) error

// New returns a new file system with no mounted drive.
// Without options it has DefaultVolumes drives on the operating system file system,
// long file names and relative path level DefaultRelativePath.
func New(opts ...Option) (*FS, error) {
	vfs := &FS{
		clock:    SystemClock{},
		log:      slog.New(slog.DiscardHandler),
		drives:   make([]*Volume, DefaultVolumes),
		relPath:  DefaultRelativePath,
		maxLFN:   DefaultMaxLFN,
		maxPath:  DefaultMaxPath,
		features: FeatLFN,
	}

	for _, opt := range opts {
		err := opt(vfs)
		if err != nil {
			return nil, err
		}
	}

	if vfs.host == nil {
		vfs.host = osfs.New()
	}

	if vfs.lines == nil {
		vfs.lines = NewSidecarStore(vfs.host)
	}

	if vfs.HasFeature(FeatStrVolumeID) {
		if vfs.volumeStrs == nil && len(vfs.drives) <= len(DefaultVolumeStrs) {
			vfs.volumeStrs = DefaultVolumeStrs[:len(vfs.drives)]
		}

		if len(vfs.volumeStrs) != len(vfs.drives) {
			return nil, fmt.Errorf("fatfs: %d drive id strings for %d volumes", len(vfs.volumeStrs), len(vfs.drives))
		}
	}

	if !vfs.HasFeature(FeatLFN) {
		vfs.maxLFN = ShortNameLen
	}

	return vfs, nil
}

// Features returns the set of optional features of the file system.
func (vfs *FS) Features() Features {
	return vfs.features
}

// HasFeature returns true if the file system provides a given feature.
func (vfs *FS) HasFeature(feature Features) bool {
	return vfs.features&feature == feature
}

// Host returns the host file system.
func (vfs *FS) Host() host.FS {
	return vfs.host
}

// Type returns the type of the file system.
func (*FS) Type() string {
	return "FatFS"
}

// Options

// WithVolumes returns an option function setting the number of logical drives.
func WithVolumes(n int) Option {
	return func(vfs *FS) error {
		if n < 1 || n > MaxVolumes {
			return fmt.Errorf("fatfs: volume count %d out of range [1, %d]", n, MaxVolumes)
		}

		vfs.drives = make([]*Volume, n)

		return nil
	}
}

// WithVolumeStrs returns an option function enabling drive id strings.
// ids[n] is the name of drive n, it must only contain the characters A-Z and 0-9.
// Without ids, the first names of DefaultVolumeStrs are used.
func WithVolumeStrs(ids ...string) Option {
	return func(vfs *FS) error {
		for _, id := range ids {
			if !validVolumeStr(id) {
				return fmt.Errorf("fatfs: invalid drive id string %q", id)
			}
		}

		if len(ids) != 0 {
			vfs.volumeStrs = ids
		}

		vfs.features |= FeatStrVolumeID

		return nil
	}
}

// WithLFN returns an option function setting the maximum length of long file names.
// A length of 0 disables long file names.
func WithLFN(maxLFN int) Option {
	return func(vfs *FS) error {
		if maxLFN == 0 {
			vfs.features &^= FeatLFN

			return nil
		}

		if maxLFN < ShortNameLen || maxLFN > DefaultMaxLFN {
			return fmt.Errorf("fatfs: maximum file name length %d out of range [%d, %d]",
				maxLFN, ShortNameLen, DefaultMaxLFN)
		}

		vfs.maxLFN = maxLFN
		vfs.features |= FeatLFN

		return nil
	}
}

// WithRelativePath returns an option function setting the relative path support level.
// Level 1 enables Chdir and Chdrive, level 2 also enables Getcwd.
func WithRelativePath(level int) Option {
	return func(vfs *FS) error {
		if level < 0 || level > 2 {
			return fmt.Errorf("fatfs: relative path level %d out of range [0, 2]", level)
		}

		vfs.relPath = level

		return nil
	}
}

// WithMaxPath returns an option function setting the maximum length of a host path.
func WithMaxPath(n int) Option {
	return func(vfs *FS) error {
		if n <= 0 {
			return fmt.Errorf("fatfs: invalid maximum path length %d", n)
		}

		vfs.maxPath = n

		return nil
	}
}

// WithFeatures returns an option function adding optional features.
func WithFeatures(features Features) Option {
	return func(vfs *FS) error {
		vfs.features |= features

		return nil
	}
}

// WithHost returns an option function setting the host file system.
func WithHost(h host.FS) Option {
	return func(vfs *FS) error {
		vfs.host = h

		return nil
	}
}

// WithLogger returns an option function setting the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(vfs *FS) error {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}

		vfs.log = logger

		return nil
	}
}

// WithClock returns an option function setting the time source of FatTime.
func WithClock(clock Clock) Option {
	return func(vfs *FS) error {
		vfs.clock = clock

		return nil
	}
}

// WithLineStore returns an option function setting the store of volume labels and serial numbers.
func WithLineStore(lines LineStore) Option {
	return func(vfs *FS) error {
		vfs.lines = lines

		return nil
	}
}

// validVolumeStr returns true if id is a valid drive id string.
func validVolumeStr(id string) bool {
	if id == "" {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		if !isUpper(c) && !isDigit(c) {
			return false
		}
	}

	return true
}
