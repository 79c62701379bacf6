// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cp2k/cp2k-spack/internal/pkg/installer"
	"github.com/cp2k/cp2k-spack/internal/pkg/pkgspec"
)

var (
	withOpenMP bool
	noOpenMP   bool
	withMPI    bool
	noMPI      bool
)

var installCmd = &cobra.Command{
	Use:   "install [<feature>...]",
	Short: "Build the toolchain environments and extract the arch files",
	Long: `Build one Spack environment per requested variant and extract the
generated arch files into the arch/ directory.

Features are free-form CP2K feature tokens, e.g. +cuda ~sirius, passed down
to Spack unmodified.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&withOpenMP, "openmp", false, "build the OpenMP variants ssmp/psmp (default)")
	installCmd.Flags().BoolVar(&noOpenMP, "no-openmp", false, "do not build the OpenMP variants")
	installCmd.Flags().BoolVar(&withMPI, "mpi", false, "build the MPI variants popt/psmp (default)")
	installCmd.Flags().BoolVar(&noMPI, "no-mpi", false, "do not build the MPI variants")
	installCmd.MarkFlagsMutuallyExclusive("openmp", "no-openmp")
	installCmd.MarkFlagsMutuallyExclusive("mpi", "no-mpi")
}

func runInstall(cmd *cobra.Command, args []string) error {
	// Feature tokens are forwarded verbatim; only catch what is most likely
	// a mistyped flag
	for _, f := range args {
		if strings.HasPrefix(f, "-") {
			return fmt.Errorf("invalid feature token '%s'", f)
		}
	}

	bc := &pkgspec.BuildConfig{
		OpenMP:   !noOpenMP,
		MPI:      !noMPI,
		Features: args,
	}

	return installer.Run(cfg, bc)
}
