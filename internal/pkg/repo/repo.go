// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * repo ships the Spack package repository with the cp2k-deps recipe inside
 * the binary and materializes it on disk so that environment descriptors can
 * reference it. The recipe itself is consumed by Spack's plugin system,
 * never executed by this tool.
 */
package repo

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gvallee/go_util/pkg/util"
)

//go:embed assets
var assets embed.FS

const assetsRoot = "assets"

// Materialize writes the bundled package repository into repoDir. Files that
// already exist are left untouched so that local modifications to the recipe
// survive reruns.
func Materialize(repoDir string) error {
	return fs.WalkDir(assets, assetsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(assetsRoot, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %s", path, err)
		}
		target := filepath.Join(repoDir, rel)

		if d.IsDir() {
			err = os.MkdirAll(target, 0755)
			if err != nil {
				return fmt.Errorf("failed to create %s: %s", target, err)
			}
			return nil
		}

		if util.FileExists(target) {
			return nil
		}

		data, err := assets.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read embedded file %s: %s", path, err)
		}

		err = os.WriteFile(target, data, 0644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %s", target, err)
		}

		return nil
	})
}
