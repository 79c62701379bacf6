// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cp2k/cp2k-spack/internal/pkg/sys"
)

var configCmd = &cobra.Command{
	Use:   "config [<key> <value>]",
	Short: "Show the effective configuration or set a key in the configuration file",
	Long: `Without arguments, show the effective configuration. With a key and a
value, persist the setting in the configuration file (` + sys.ConfigFileName + `).

Supported keys: ` + sys.SpackDirKey + `, ` + sys.EnvsDirKey + `, ` + sys.ArchDirKey + `.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Printf("work dir:    %s\n", cfg.WorkDir)
		fmt.Printf("spack dir:   %s\n", cfg.SpackDir)
		fmt.Printf("envs dir:    %s\n", cfg.EnvsDir)
		fmt.Printf("arch dir:    %s\n", cfg.ArchDir)
		fmt.Printf("repo dir:    %s\n", cfg.RepoDir)
		fmt.Printf("config file: %s\n", cfg.ConfigFile)
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("expected a key and a value")
	}

	key := args[0]
	switch key {
	case sys.SpackDirKey, sys.EnvsDirKey, sys.ArchDirKey:
	default:
		return fmt.Errorf("unknown configuration key '%s'", key)
	}

	return cfg.UpdateConfigFile(key, args[1])
}
