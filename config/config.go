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

// Package config loads the volume layout of a fatfs file system from a file.
//
// The file is YAML (.yaml, .yml) or JSON with comments and trailing commas
// (.json, .jsonc). Mount paths may contain ${VAR} and ${VAR:-default} patterns,
// expanded from the environment after loading.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/avfs/fatfs"
	"github.com/avfs/fatfs/host/osfs"
	"github.com/avfs/fatfs/host/rofs"
)

// Config is the configuration of a fatfs file system.
type Config struct {
	// Volumes is the number of logical drives.
	Volumes int `yaml:"volumes" json:"volumes"`

	// VolumeStrs enables drive id strings. An empty list with StrVolumeID set
	// uses the default id strings.
	VolumeStrs []string `yaml:"volume_strs" json:"volume_strs"`

	// StrVolumeID enables drive id strings ("SD1:").
	StrVolumeID bool `yaml:"str_volume_id" json:"str_volume_id"`

	// MaxLFN is the maximum length of a file name, 0 disables long file names.
	MaxLFN int `yaml:"max_lfn" json:"max_lfn"`

	// RelativePath is the relative path support level (0, 1 or 2).
	RelativePath int `yaml:"relative_path" json:"relative_path"`

	// MaxPath is the maximum length of a host path.
	MaxPath int `yaml:"max_path" json:"max_path"`

	// Features lists the optional features:
	// reentrant, find, forward, expand, mkfs, multi_partition.
	Features []string `yaml:"features" json:"features"`

	// ReadOnly mounts every drive read only.
	ReadOnly bool `yaml:"read_only" json:"read_only"`

	// Mounts lists the drives mounted by Open.
	Mounts []MountConfig `yaml:"mounts" json:"mounts"`

	// LogLevel is the minimum level of log records: debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// MountConfig is the mount point of a drive.
type MountConfig struct {
	// Drive is the drive number or drive id string.
	Drive string `yaml:"drive" json:"drive"`

	// Path is the host directory of the drive, relative to the current directory if not absolute.
	Path string `yaml:"path" json:"path"`
}

// featureNames maps the names of Config.Features to fatfs features.
var featureNames = map[string]fatfs.Features{
	"reentrant":       fatfs.FeatReentrant,
	"find":            fatfs.FeatFind,
	"forward":         fatfs.FeatForward,
	"expand":          fatfs.FeatExpand,
	"mkfs":            fatfs.FeatMkfs,
	"multi_partition": fatfs.FeatMultiPartition,
}

// Default returns the default configuration: two drives, long file names,
// full relative path support and drive 0 mounted on the current directory.
func Default() *Config {
	return &Config{
		Volumes:      fatfs.DefaultVolumes,
		MaxLFN:       fatfs.DefaultMaxLFN,
		RelativePath: fatfs.DefaultRelativePath,
		MaxPath:      fatfs.DefaultMaxPath,
		Mounts:       []MountConfig{{Drive: "0", Path: "."}},
		LogLevel:     "info",
	}
}

// Load loads the configuration file path over the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, fmt.Errorf("config %s: unknown file extension %q", path, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	for i := range cfg.Mounts {
		cfg.Mounts[i].Path = expandVars(cfg.Mounts[i].Path)
	}

	return cfg, nil
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}

		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Volumes < 1 || c.Volumes > fatfs.MaxVolumes {
		errs = append(errs, fmt.Errorf("volumes must be in [1, %d], got %d", fatfs.MaxVolumes, c.Volumes))
	}

	if c.MaxLFN != 0 && (c.MaxLFN < fatfs.ShortNameLen || c.MaxLFN > fatfs.DefaultMaxLFN) {
		errs = append(errs, fmt.Errorf("max_lfn must be 0 or in [%d, %d], got %d",
			fatfs.ShortNameLen, fatfs.DefaultMaxLFN, c.MaxLFN))
	}

	if c.RelativePath < 0 || c.RelativePath > 2 {
		errs = append(errs, fmt.Errorf("relative_path must be 0, 1 or 2, got %d", c.RelativePath))
	}

	if c.MaxPath <= 0 {
		errs = append(errs, fmt.Errorf("max_path must be positive, got %d", c.MaxPath))
	}

	if len(c.VolumeStrs) != 0 && len(c.VolumeStrs) != c.Volumes {
		errs = append(errs, fmt.Errorf("volume_strs has %d entries for %d volumes", len(c.VolumeStrs), c.Volumes))
	}

	for _, name := range c.Features {
		if _, ok := featureNames[name]; !ok {
			errs = append(errs, fmt.Errorf("unknown feature %q", name))
		}
	}

	drives := make([]string, 0, len(c.Mounts))

	for _, m := range c.Mounts {
		if m.Drive == "" {
			errs = append(errs, fmt.Errorf("mount of %q has no drive", m.Path))

			continue
		}

		if slices.Contains(drives, m.Drive) {
			errs = append(errs, fmt.Errorf("drive %s is mounted twice", m.Drive))
		}

		drives = append(drives, m.Drive)
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level returns the slog level of LogLevel. An empty LogLevel is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level

	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}

	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

// Options returns the fatfs options of the configuration.
func (c *Config) Options() []fatfs.Option {
	var features fatfs.Features
	for _, name := range c.Features {
		features |= featureNames[name]
	}

	opts := []fatfs.Option{
		fatfs.WithVolumes(c.Volumes),
		fatfs.WithLFN(c.MaxLFN),
		fatfs.WithRelativePath(c.RelativePath),
		fatfs.WithMaxPath(c.MaxPath),
		fatfs.WithFeatures(features),
	}

	if c.StrVolumeID || len(c.VolumeStrs) != 0 {
		opts = append(opts, fatfs.WithVolumeStrs(c.VolumeStrs...))
	}

	if c.ReadOnly {
		opts = append(opts, fatfs.WithHost(rofs.New(osfs.New())))
	}

	return opts
}

// Open validates the configuration, creates the file system and mounts the configured drives.
// opts are applied after the options of the configuration.
func (c *Config) Open(logger *slog.Logger, opts ...fatfs.Option) (*fatfs.FS, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts = append(c.Options(), append(opts, fatfs.WithLogger(logger))...)

	vfs, err := fatfs.New(opts...)
	if err != nil {
		return nil, err
	}

	for _, m := range c.Mounts {
		v, err := vfs.Mount(m.Drive + ":" + m.Path)
		if err != nil {
			return nil, fmt.Errorf("mounting drive %s: %w", m.Drive, err)
		}

		logger.Info("drive mounted", "drive", v.Number(), "path", v.MountPoint())
	}

	return vfs, nil
}
