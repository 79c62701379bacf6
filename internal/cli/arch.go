// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/spf13/cobra"

	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
)

var archCmd = &cobra.Command{
	Use:   "arch",
	Short: "Print the Spack arch tuple of this platform",
	Args:  cobra.NoArgs,
	RunE:  runArch,
}

func runArch(cmd *cobra.Command, args []string) error {
	if !util.FileExists(cfg.SpackBin()) {
		return fmt.Errorf("no Spack checkout in '%s': %w", cfg.SpackDir, cp2kerr.ErrSpackNotFound)
	}

	sp := spack.New(cfg.SpackDir)
	tuple, err := sp.Arch()
	if err != nil {
		return err
	}

	fmt.Println(tuple)
	return nil
}
