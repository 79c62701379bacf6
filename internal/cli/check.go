// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/spf13/cobra"

	"github.com/cp2k/cp2k-spack/internal/pkg/checker"
	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
	"github.com/cp2k/cp2k-spack/internal/pkg/manifest"
	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the host prerequisites, the Spack checkout and the installed environments",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	err := checker.CheckPrereqs()
	if err != nil {
		return err
	}

	if !util.FileExists(cfg.SpackBin()) {
		return fmt.Errorf("no Spack checkout in '%s', run 'cp2k-spack install' first: %w", cfg.SpackDir, cp2kerr.ErrSpackNotFound)
	}

	sp := spack.New(cfg.SpackDir)
	err = checker.CheckSpackInstall(sp)
	if err != nil {
		return err
	}

	tuple, err := sp.Arch()
	if err != nil {
		return err
	}
	fmt.Printf("Spack platform: %s\n", tuple)

	// Verify the arch files recorded by previous runs
	manifests, err := filepath.Glob(filepath.Join(cfg.EnvsDir, "*", manifest.FileName))
	if err != nil {
		return fmt.Errorf("failed to list manifests: %s", err)
	}
	for _, m := range manifests {
		err = manifest.Check(m)
		if err != nil {
			return fmt.Errorf("manifest %s: %s", m, err)
		}
		fmt.Printf("* Checking manifest %s\tpass\n", m)
	}

	return nil
}
