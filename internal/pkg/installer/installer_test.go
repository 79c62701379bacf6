// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package installer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
	"github.com/cp2k/cp2k-spack/internal/pkg/manifest"
	"github.com/cp2k/cp2k-spack/internal/pkg/pkgspec"
	"github.com/cp2k/cp2k-spack/internal/pkg/sys"
)

// fakeSpackScript mimics the sub-command surface the installer relies on. The
// install sub-command drops a generated arch file into the environment's view,
// named after the environment directory it runs in, and fails when asked to
// via FAIL_VARIANT.
const fakeSpackScript = `#!/bin/sh
case "$1" in
  help)
    exit 0
    ;;
  arch)
    echo "linux-test-x86_64"
    exit 0
    ;;
  install)
    variant=$(basename "$PWD")
    if [ -n "$FAIL_VARIANT" ] && [ "$variant" = "$FAIL_VARIANT" ]; then
      exit 1
    fi
    mkdir -p .spack-env/view/share/data
    printf 'CC = gcc\nDATA_DIR = /opt/data\nFCFLAGS = -O2\n' > ".spack-env/view/share/data/local.$variant"
    exit 0
    ;;
esac
exit 0
`

func testConfig(t *testing.T) *sys.Config {
	t.Helper()

	workDir := t.TempDir()
	cfg, err := sys.DefaultConfig(workDir)
	if err != nil {
		t.Fatalf("failed to build the configuration: %s", err)
	}

	binDir := filepath.Join(cfg.SpackDir, "bin")
	err = os.MkdirAll(binDir, 0755)
	if err != nil {
		t.Fatalf("failed to create %s: %s", binDir, err)
	}
	err = os.WriteFile(filepath.Join(binDir, "spack"), []byte(fakeSpackScript), 0755)
	if err != nil {
		t.Fatalf("failed to write the fake spack executable: %s", err)
	}

	return cfg
}

func TestRunAllVariants(t *testing.T) {
	cfg := testConfig(t)

	bc := &pkgspec.BuildConfig{OpenMP: true, MPI: true}
	err := Run(cfg, bc)
	if err != nil {
		t.Fatalf("Run() failed: %s", err)
	}

	for _, name := range []string{"sopt", "ssmp", "popt", "psmp"} {
		envDir := filepath.Join(cfg.EnvsDir, name)
		if _, err := os.Stat(filepath.Join(envDir, "spack.yaml")); err != nil {
			t.Fatalf("no descriptor for %s: %s", name, err)
		}
		if _, err := os.Stat(filepath.Join(envDir, manifest.FileName)); err != nil {
			t.Fatalf("no manifest for %s: %s", name, err)
		}

		archFile := filepath.Join(cfg.ArchDir, "local."+name)
		data, err := os.ReadFile(archFile)
		if err != nil {
			t.Fatalf("no arch file for %s: %s", name, err)
		}
		if strings.Contains(string(data), "DATA_DIR") {
			t.Fatalf("the DATA_DIR line was not filtered from %s", archFile)
		}
	}

	// The bundled package repository must be in place
	if _, err := os.Stat(filepath.Join(cfg.RepoDir, "repo.yaml")); err != nil {
		t.Fatalf("the package repository was not materialized: %s", err)
	}
}

func TestRunBaseVariantOnly(t *testing.T) {
	cfg := testConfig(t)

	bc := &pkgspec.BuildConfig{OpenMP: false, MPI: false}
	err := Run(cfg, bc)
	if err != nil {
		t.Fatalf("Run() failed: %s", err)
	}

	entries, err := os.ReadDir(cfg.EnvsDir)
	if err != nil {
		t.Fatalf("failed to list %s: %s", cfg.EnvsDir, err)
	}
	if len(entries) != 1 || entries[0].Name() != "sopt" {
		t.Fatalf("unexpected environments: %v", entries)
	}

	archEntries, err := os.ReadDir(cfg.ArchDir)
	if err != nil {
		t.Fatalf("failed to list %s: %s", cfg.ArchDir, err)
	}
	if len(archEntries) != 1 || archEntries[0].Name() != "local.sopt" {
		t.Fatalf("unexpected arch files: %v", archEntries)
	}

	// The descriptor must carry the FFTW constraint for MPI-free builds
	data, err := os.ReadFile(filepath.Join(cfg.EnvsDir, "sopt", "spack.yaml"))
	if err != nil {
		t.Fatalf("failed to read the descriptor: %s", err)
	}
	if !strings.Contains(string(data), pkgspec.NoMPIFFTW) {
		t.Fatalf("the descriptor does not contain %s:\n%s", pkgspec.NoMPIFFTW, string(data))
	}
}

func TestRunAbortsOnInstallFailure(t *testing.T) {
	cfg := testConfig(t)
	t.Setenv("FAIL_VARIANT", "ssmp")

	bc := &pkgspec.BuildConfig{OpenMP: true, MPI: false}
	err := Run(cfg, bc)
	if err == nil {
		t.Fatalf("Run() did not fail")
	}

	var cmdErr *cp2kerr.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected a CommandError, got: %v", err)
	}
	if !strings.Contains(cmdErr.Msg, "ssmp") {
		t.Fatalf("the error does not name the failing environment: %s", cmdErr.Msg)
	}

	// The base variant was built before the failure and must survive
	if _, err := os.Stat(filepath.Join(cfg.ArchDir, "local.sopt")); err != nil {
		t.Fatalf("the sopt arch file did not survive the ssmp failure: %s", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.ArchDir, "local.ssmp")); err == nil {
		t.Fatalf("an arch file was extracted for the failed ssmp variant")
	}
}

func TestRunIsIdempotentForDescriptors(t *testing.T) {
	cfg := testConfig(t)

	bc := &pkgspec.BuildConfig{OpenMP: false, MPI: false}
	err := Run(cfg, bc)
	if err != nil {
		t.Fatalf("Run() failed: %s", err)
	}

	path := filepath.Join(cfg.EnvsDir, "sopt", "spack.yaml")
	edited := []byte("# user edited\nspack:\n  specs: [\"cp2k-deps\"]\n")
	err = os.WriteFile(path, edited, 0644)
	if err != nil {
		t.Fatalf("failed to edit the descriptor: %s", err)
	}

	err = Run(cfg, bc)
	if err != nil {
		t.Fatalf("second Run() failed: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read the descriptor: %s", err)
	}
	if string(data) != string(edited) {
		t.Fatalf("the second run clobbered the edited descriptor")
	}
}
