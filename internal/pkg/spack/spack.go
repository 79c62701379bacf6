// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * spack wraps the Spack command-line tool. Spack is treated as an opaque
 * collaborator: given arguments and a working directory it exits with a
 * status code, writes files into an environment directory and optionally
 * emits text on stdout/stderr. Nothing here knows about dependency
 * resolution or build-system semantics.
 */
package spack

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gvallee/go_util/pkg/util"

	"github.com/cp2k/cp2k-spack/internal/pkg/cmdexec"
	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
)

// DefaultRepoURL is where Spack is cloned from when no checkout exists yet
const DefaultRepoURL = "https://github.com/spack/spack.git"

// Spack represents a runnable Spack checkout
type Spack struct {
	// BinPath is the path to the spack executable
	BinPath string

	arch string
}

// New returns a handle for the Spack checkout in the given directory
func New(spackDir string) *Spack {
	return &Spack{
		BinPath: filepath.Join(spackDir, "bin", "spack"),
	}
}

// EnsureInstallation fetches Spack into spackDir if required and checks that
// the checkout provides the expected executable. It is a no-op when the
// executable is already there; it never touches an existing directory.
func EnsureInstallation(spackDir string) error {
	if !util.PathExists(spackDir) {
		gitBin, err := exec.LookPath("git")
		if err != nil {
			return fmt.Errorf("failed to find git: %s", err)
		}

		cloneCmd := cmdexec.Cmd{
			BinPath: gitBin,
			CmdArgs: []string{"clone", "--depth=1", DefaultRepoURL, spackDir},
		}
		res := cloneCmd.Run()
		if res.Err != nil {
			return &cp2kerr.CommandError{
				Msg:     "cloning the Spack repository failed",
				CmdLine: cloneCmd.String(),
				Stdout:  res.Stdout,
				Stderr:  res.Stderr,
			}
		}
	}

	binPath := filepath.Join(spackDir, "bin", "spack")
	if !util.FileExists(binPath) {
		return fmt.Errorf("the Spack directory '%s' exists, but the executable 'bin/spack' could not be found: %w", spackDir, cp2kerr.ErrSpackNotFound)
	}

	return nil
}

// Check makes sure the executable on the given path actually runs
func (s *Spack) Check() error {
	helpCmd := cmdexec.Cmd{
		BinPath: s.BinPath,
		CmdArgs: []string{"help"},
	}
	res := helpCmd.Run()
	if res.Err != nil {
		return &cp2kerr.CommandError{
			Msg:     "the Spack installation seems to be broken, calling 'spack help' failed",
			CmdLine: helpCmd.String(),
			Stdout:  res.Stdout,
			Stderr:  res.Stderr,
		}
	}

	return nil
}

// Arch returns the Spack arch tuple of the platform. The value is cached
// after the first call.
func (s *Spack) Arch() (string, error) {
	if s.arch != "" {
		return s.arch, nil
	}

	archCmd := cmdexec.Cmd{
		BinPath: s.BinPath,
		CmdArgs: []string{"arch"},
	}
	res := archCmd.Run()
	if res.Err != nil {
		return "", &cp2kerr.CommandError{
			Msg:     "the Spack installation seems to be broken, calling 'spack arch' failed",
			CmdLine: archCmd.String(),
			Stdout:  res.Stdout,
			Stderr:  res.Stderr,
		}
	}

	s.arch = strings.TrimSpace(res.Stdout)
	return s.arch, nil
}

// Install resolves and installs the specs of the environment in envDir. The
// install sub-command pulls the spec from the environment configuration;
// running Spack in envDir automatically enables the environment. The output
// is not captured so that the operator sees progress, because this takes long.
func (s *Spack) Install(envDir string) error {
	installCmd := cmdexec.Cmd{
		BinPath: s.BinPath,
		CmdArgs: []string{"install"},
		ExecDir: envDir,
		Stream:  true,
	}
	res := installCmd.Run()
	if res.Err != nil {
		return &cp2kerr.CommandError{
			Msg:     fmt.Sprintf("could not install the Spack environment at '%s'", envDir),
			CmdLine: installCmd.String(),
		}
	}

	return nil
}

// EnvActivateScript returns the shell exports that activate the environment
// in envDir, as emitted by 'spack env activate --sh'
func (s *Spack) EnvActivateScript(envDir string) (string, error) {
	activateCmd := cmdexec.Cmd{
		BinPath: s.BinPath,
		CmdArgs: []string{"env", "activate", "--sh", "--dir", "."},
		ExecDir: envDir,
	}
	res := activateCmd.Run()
	if res.Err != nil {
		return "", &cp2kerr.CommandError{
			Msg:     fmt.Sprintf("could not get the activation script for the environment at '%s'", envDir),
			CmdLine: activateCmd.String(),
			Stdout:  res.Stdout,
			Stderr:  res.Stderr,
		}
	}

	return res.Stdout, nil
}
