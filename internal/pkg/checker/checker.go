// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package checker

import (
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/cp2k/cp2k-spack/internal/pkg/spack"
)

// Binaries Spack relies on to fetch and build packages. git is also needed by
// this tool itself to clone Spack.
const prereqBinaries = "git python3 make patch tar"

// CheckPrereqs makes sure the binaries required on the host are available
func CheckPrereqs() error {
	var missing []string

	for _, b := range strings.Split(prereqBinaries, " ") {
		_, err := exec.LookPath(b)
		if err != nil {
			log.Printf("* Checking for %s\tfail", b)
			missing = append(missing, b)
			continue
		}
		log.Printf("* Checking for %s\tpass", b)
	}

	if len(missing) > 0 {
		return fmt.Errorf("prerequisite binaries are missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

// CheckSpackInstall makes sure the Spack checkout works properly
func CheckSpackInstall(s *spack.Spack) error {
	err := s.Check()
	if err != nil {
		log.Printf("* Checking for Spack\tfail")
		return err
	}

	log.Printf("* Checking for Spack\tpass")
	return nil
}
