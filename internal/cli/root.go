// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cp2k/cp2k-spack/internal/pkg/cp2kerr"
	"github.com/cp2k/cp2k-spack/internal/pkg/sys"
)

var (
	workDir  string
	spackDir string
	debug    bool
	cfg      *sys.Config
)

var rootCmd = &cobra.Command{
	Use:   "cp2k-spack",
	Short: "Assemble a CP2K build toolchain with Spack",
	Long: `cp2k-spack drives Spack to assemble a toolchain for building CP2K.

It fetches Spack if needed, creates one Spack environment per requested
build variant (sopt, ssmp, popt, psmp), installs the cp2k-deps package into
each and extracts the generated arch files into a local arch/ directory.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and reports any failure on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "directory hosting envs/, arch/ and repo/ (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&spackDir, "spack-dir", "", "path to an existing Spack checkout (default is <work-dir>/spack)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(archCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	var err error
	cfg, err = sys.DefaultConfig(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	err = cfg.LoadConfigFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	// Flags beat the configuration file
	if spackDir != "" {
		cfg.SpackDir = spackDir
	}
	cfg.Debug = debug
}

// printError surfaces a failure to the operator, including the failing
// command line and its captured output when available
func printError(err error) {
	var cmdErr *cp2kerr.CommandError
	if errors.As(err, &cmdErr) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nfailed command was: %s\n", cmdErr.Msg, cmdErr.CmdLine)
		if strings.TrimSpace(cmdErr.Stdout) != "" {
			fmt.Fprintf(os.Stderr, "*** stdout: begin\n%s\n*** stdout: end\n", strings.TrimSpace(cmdErr.Stdout))
		}
		if strings.TrimSpace(cmdErr.Stderr) != "" {
			fmt.Fprintf(os.Stderr, "*** stderr: begin\n%s\n*** stderr: end\n", strings.TrimSpace(cmdErr.Stderr))
		}
		return
	}

	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
}
