// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * envmgr materializes the per-variant Spack environments: it creates the
 * environment directory, writes the spack.yaml descriptor when none exists
 * and drives the actual installation.
 */
package envmgr

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gvallee/go_util/pkg/util"
	"gopkg.in/yaml.v3"

	"github.com/cp2k/cp2k-spack/internal/pkg/pkgspec"
	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
)

// DescriptorName is the name of the Spack environment file
const DescriptorName = "spack.yaml"

const descriptorHeader = `# This is a Spack Environment file.
#
# It describes a set of packages to be installed, along with
# configuration settings.
`

// descriptor mirrors the subset of the Spack environment format we generate
type descriptor struct {
	Spack descriptorBody `yaml:"spack"`
}

type descriptorBody struct {
	// Specs is the list of package specs to install in the environment
	Specs []string `yaml:"specs,flow"`

	// Repos is the package repository search path
	Repos []string `yaml:"repos,flow"`
}

// Builder creates and installs Spack environments
type Builder struct {
	// Spack is the Spack checkout to drive
	Spack *spack.Spack

	// EnvsDir is the directory hosting the per-variant environments
	EnvsDir string

	// RepoDir is the package repository the environments reference
	RepoDir string
}

// EnvDir returns the environment directory for a variant
func (b *Builder) EnvDir(v pkgspec.Variant) string {
	return filepath.Join(b.EnvsDir, v.Name)
}

// WriteDescriptor writes the environment descriptor for the given spec into
// envDir, unless one already exists. An existing descriptor is never
// overwritten so that user edits survive reruns. It reports whether a new
// descriptor was written.
func (b *Builder) WriteDescriptor(envDir string, spec pkgspec.Spec) (bool, error) {
	path := filepath.Join(envDir, DescriptorName)
	if util.FileExists(path) {
		log.Printf("* Environment configuration %s already exists, leaving it untouched", path)
		return false, nil
	}

	d := descriptor{
		Spack: descriptorBody{
			Specs: []string{spec.String()},
			Repos: []string{b.RepoDir},
		},
	}
	data, err := yaml.Marshal(&d)
	if err != nil {
		return false, fmt.Errorf("failed to marshal the environment configuration: %s", err)
	}

	err = os.WriteFile(path, append([]byte(descriptorHeader), data...), 0644)
	if err != nil {
		return false, fmt.Errorf("failed to write %s: %s", path, err)
	}

	return true, nil
}

// InstallVariant creates the environment for a variant if needed and installs
// the given spec into it
func (b *Builder) InstallVariant(v pkgspec.Variant, spec pkgspec.Spec) error {
	envDir := b.EnvDir(v)

	err := os.MkdirAll(envDir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %s", envDir, err)
	}

	created, err := b.WriteDescriptor(envDir, spec)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Creating environment configuration for '%s' in '%s'\n", spec.String(), envDir)
	}

	fmt.Printf("Installing environment with '%s' in '%s'\n", spec.String(), envDir)
	return b.Spack.Install(envDir)
}
