// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * arch extracts the generated arch file of an installed environment into the
 * shared arch directory. The arch file is the build-configuration fragment
 * (compiler and linker flags) that CP2K's own build system consumes.
 */
package arch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
)

// DataDirToken marks the lines dropped while copying an arch file: DATA_DIR
// points into the environment's install tree and the operator is expected to
// set it independently.
const DataDirToken = "DATA_DIR"

// viewDataDir is where the install step of the package places the generated
// arch file, relative to the environment directory
var viewDataDir = filepath.Join(".spack-env", "view", "share", "data")

// Extract locates the single arch file generated for the given variant and
// copies it into archDir, dropping the DATA_DIR line. It returns the path of
// the extracted file. Exactly one file must match; zero or multiple matches
// are reported as distinct errors.
func Extract(archDir string, envsDir string, variantName string) (string, error) {
	pattern := filepath.Join(envsDir, variantName, viewDataDir, "*."+variantName)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid arch file pattern %s: %s", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w for pattern %s", cp2kerr.ErrMissingArtifact, pattern)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w for pattern %s: %s", cp2kerr.ErrAmbiguousArtifact, pattern, strings.Join(matches, ", "))
	}

	src := matches[0]
	dst := filepath.Join(archDir, filepath.Base(src))
	log.Printf("* Extracting arch file %s to %s", src, dst)
	err = copyFiltered(src, dst)
	if err != nil {
		return "", err
	}

	return dst, nil
}

// copyFiltered copies src to dst line by line, dropping every line that
// starts with the data-directory token. All other lines are carried over
// byte for byte.
func copyFiltered(src string, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %s", src, err)
	}

	var out strings.Builder
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if strings.HasPrefix(line, DataDirToken) {
			continue
		}
		out.WriteString(line)
	}

	err = os.WriteFile(dst, []byte(out.String()), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %s", dst, err)
	}

	return nil
}
