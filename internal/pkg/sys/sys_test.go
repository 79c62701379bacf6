// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sys

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := DefaultConfig(workDir)
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %s", err)
	}

	if cfg.SpackDir != filepath.Join(workDir, SpackDirName) {
		t.Fatalf("unexpected spack dir %s", cfg.SpackDir)
	}
	if cfg.EnvsDir != filepath.Join(workDir, EnvsDirName) {
		t.Fatalf("unexpected envs dir %s", cfg.EnvsDir)
	}
	if cfg.SpackBin() != filepath.Join(cfg.SpackDir, "bin", "spack") {
		t.Fatalf("unexpected spack binary path %s", cfg.SpackBin())
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := DefaultConfig(t.TempDir())
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %s", err)
	}

	err = cfg.LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() failed without a configuration file: %s", err)
	}
}

func TestUpdateAndLoadConfigFile(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := DefaultConfig(workDir)
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %s", err)
	}

	err = cfg.UpdateConfigFile(SpackDirKey, "/opt/spack")
	if err != nil {
		t.Fatalf("UpdateConfigFile() failed: %s", err)
	}

	// Updating with the same value again must be a no-op
	err = cfg.UpdateConfigFile(SpackDirKey, "/opt/spack")
	if err != nil {
		t.Fatalf("repeated UpdateConfigFile() failed: %s", err)
	}

	fresh, err := DefaultConfig(workDir)
	if err != nil {
		t.Fatalf("DefaultConfig() failed: %s", err)
	}
	err = fresh.LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %s", err)
	}

	if fresh.SpackDir != "/opt/spack" {
		t.Fatalf("spack dir is %s instead of /opt/spack", fresh.SpackDir)
	}
	// Keys not present in the file keep their defaults
	if fresh.EnvsDir != filepath.Join(workDir, EnvsDirName) {
		t.Fatalf("unexpected envs dir %s", fresh.EnvsDir)
	}
}
