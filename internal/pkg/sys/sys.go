// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/gvallee/kv/pkg/kv"
)

// Config captures the filesystem layout and options for a run of the tool.
// All defaults are set at the entry point; nothing in here is global state.
type Config struct {
	// WorkDir is the directory under which environments, arch files and the
	// package repository are created
	WorkDir string

	// SpackDir is the directory of the Spack checkout
	SpackDir string

	// EnvsDir is the directory hosting the per-variant Spack environments
	EnvsDir string

	// ArchDir is the directory where the extracted arch files end up
	ArchDir string

	// RepoDir is the directory of the bundled Spack package repository
	RepoDir string

	// ConfigFile is the path to the tool's optional configuration file
	ConfigFile string

	// Debug mode is active/inactive
	Debug bool
}

const (
	// SpackDirName is the default name of the Spack checkout directory
	SpackDirName = "spack"

	// EnvsDirName is the name of the directory hosting the Spack environments
	EnvsDirName = "envs"

	// ArchDirName is the name of the directory hosting the extracted arch files
	ArchDirName = "arch"

	// RepoDirName is the name of the directory hosting the package repository
	RepoDirName = "repo"

	// ConfigFileName is the name of the tool's configuration file
	ConfigFileName = "cp2k-spack.conf"
)

// Keys that can appear in the tool's configuration file
const (
	// SpackDirKey is the key used to point to an existing Spack checkout
	SpackDirKey = "spack_dir"

	// EnvsDirKey is the key used to override the environments directory
	EnvsDirKey = "envs_dir"

	// ArchDirKey is the key used to override the arch files directory
	ArchDirKey = "arch_dir"
)

// DefaultConfig returns a configuration rooted in the given work directory.
// An empty workDir means the current working directory.
func DefaultConfig(workDir string) (*Config, error) {
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get the current work directory: %s", err)
		}
	}

	cfg := &Config{
		WorkDir:    workDir,
		SpackDir:   filepath.Join(workDir, SpackDirName),
		EnvsDir:    filepath.Join(workDir, EnvsDirName),
		ArchDir:    filepath.Join(workDir, ArchDirName),
		RepoDir:    filepath.Join(workDir, RepoDirName),
		ConfigFile: filepath.Join(workDir, ConfigFileName),
	}

	return cfg, nil
}

// SpackBin returns the path to the spack executable of the configured checkout
func (c *Config) SpackBin() string {
	return filepath.Join(c.SpackDir, "bin", "spack")
}

// LoadConfigFile applies the tool's configuration file, if one exists, on top
// of the current configuration
func (c *Config) LoadConfigFile() error {
	if !util.FileExists(c.ConfigFile) {
		return nil
	}

	kvs, err := kv.LoadKeyValueConfig(c.ConfigFile)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %s", c.ConfigFile, err)
	}

	if v := kv.GetValue(kvs, SpackDirKey); v != "" {
		c.SpackDir = v
	}
	if v := kv.GetValue(kvs, EnvsDirKey); v != "" {
		c.EnvsDir = v
	}
	if v := kv.GetValue(kvs, ArchDirKey); v != "" {
		c.ArchDir = v
	}

	return nil
}

// UpdateConfigFile sets the value of a key in the tool's configuration file,
// creating the file if necessary
func (c *Config) UpdateConfigFile(key string, value string) error {
	var kvs []kv.KV

	if util.FileExists(c.ConfigFile) {
		var err error
		kvs, err = kv.LoadKeyValueConfig(c.ConfigFile)
		if err != nil {
			return fmt.Errorf("unable to parse %s: %s", c.ConfigFile, err)
		}
	}

	// If the key is already correctly set, we just exit
	if kv.GetValue(kvs, key) == value {
		return nil
	}

	if !kv.KeyExists(kvs, key) {
		var newKV kv.KV
		newKV.Key = key
		newKV.Value = value
		kvs = append(kvs, newKV)
	} else {
		err := kv.SetValue(kvs, key, value)
		if err != nil {
			return fmt.Errorf("failed to update value of the key %s: %s", key, err)
		}
	}

	data := kv.ToStringSlice(kvs)
	err := os.WriteFile(c.ConfigFile, []byte(strings.Join(data, "\n")+"\n"), 0644)
	if err != nil {
		return fmt.Errorf("impossible to create configuration file %s: %s", c.ConfigFile, err)
	}

	return nil
}
