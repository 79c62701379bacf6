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

	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
	"github.com/cp2k/cp2k-spack/internal/pkg/pkgspec"
	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
)

var envCmd = &cobra.Command{
	Use:   "env <variant>",
	Short: "Print the shell exports activating a variant's environment",
	Long: `Print the shell exports that activate the Spack environment of a built
variant (sopt, ssmp, popt or psmp), suitable for eval in a shell:

  eval "$(cp2k-spack env psmp)"`,
	Args: cobra.ExactArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	name := args[0]
	valid := false
	for _, v := range pkgspec.Variants(true, true) {
		if v.Name == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown variant '%s' (expected sopt, ssmp, popt or psmp)", name)
	}

	if !util.FileExists(cfg.SpackBin()) {
		return fmt.Errorf("no Spack checkout in '%s': %w", cfg.SpackDir, cp2kerr.ErrSpackNotFound)
	}

	envDir := filepath.Join(cfg.EnvsDir, name)
	if !util.PathExists(envDir) {
		return fmt.Errorf("no environment for variant '%s' in '%s', run 'cp2k-spack install' first", name, cfg.EnvsDir)
	}

	sp := spack.New(cfg.SpackDir)
	script, err := sp.EnvActivateScript(envDir)
	if err != nil {
		return err
	}

	fmt.Print(script)
	return nil
}
