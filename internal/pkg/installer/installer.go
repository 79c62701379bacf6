// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * installer drives a complete run: make sure Spack is available and works,
 * materialize the package repository, then for every requested variant
 * create the environment, install it and extract its arch file. Execution is
 * strictly sequential and the first failure aborts the run; environments
 * built before the failure are left in place on purpose, a later failure
 * must not discard earlier, working installations.
 */
package installer

import (
	"fmt"
	"log"
	"os"

	"github.com/gvallee/go_util/pkg/util"

	"github.com/cp2k/cp2k-spack/internal/pkg/arch"
	"github.com/cp2k/cp2k-spack/internal/pkg/checker"
	"github.com/cp2k/cp2k-spack/internal/pkg/envmgr"
	"github.com/cp2k/cp2k-spack/internal/pkg/manifest"
	"github.com/cp2k/cp2k-spack/internal/pkg/pkgspec"
	"github.com/cp2k/cp2k-spack/internal/pkg/repo"
	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
	"github.com/cp2k/cp2k-spack/internal/pkg/sys"
)

// Run executes the whole installation sequence for the requested build
// configuration
func Run(cfg *sys.Config, bc *pkgspec.BuildConfig) error {
	needClone := !util.PathExists(cfg.SpackDir)

	err := checker.CheckPrereqs()
	if err != nil {
		if needClone {
			return err
		}
		// An existing checkout may still work, the missing binaries will
		// only hurt once Spack actually needs them
		log.Printf("* [WARN] %s", err)
	}

	err = spack.EnsureInstallation(cfg.SpackDir)
	if err != nil {
		return err
	}

	sp := spack.New(cfg.SpackDir)
	err = checker.CheckSpackInstall(sp)
	if err != nil {
		return err
	}

	err = repo.Materialize(cfg.RepoDir)
	if err != nil {
		return fmt.Errorf("failed to materialize the package repository in %s: %s", cfg.RepoDir, err)
	}

	err = os.MkdirAll(cfg.ArchDir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %s", cfg.ArchDir, err)
	}

	builder := &envmgr.Builder{
		Spack:   sp,
		EnvsDir: cfg.EnvsDir,
		RepoDir: cfg.RepoDir,
	}

	for _, v := range bc.Variants() {
		spec := bc.SpecFor(v)

		err = builder.InstallVariant(v, spec)
		if err != nil {
			return err
		}

		archFile, err := arch.Extract(cfg.ArchDir, cfg.EnvsDir, v.Name)
		if err != nil {
			return err
		}

		rec := manifest.Record{
			Command:       sp.BinPath + " install",
			ExecDir:       builder.EnvDir(v),
			Spec:          spec.String(),
			ArtifactPaths: []string{archFile},
		}
		err = rec.Write(builder.EnvDir(v))
		if err != nil {
			// Bookkeeping only, the installation itself succeeded
			log.Printf("failed to create manifest: %s", err)
		}
	}

	fmt.Printf("\nInstallation finished, the arch files are available in '%s'.\n", cfg.ArchDir)
	fmt.Printf("Remember to set %s before building CP2K, the corresponding line was dropped from the arch files.\n", arch.DataDirToken)

	return nil
}
