// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdexec

import (
	"bytes"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Result represents the result of the execution of a command
type Result struct {
	// Err is the Go error associated to the command execution
	Err error

	// Stdout is the messages that were displayed on stdout during the execution of the command
	Stdout string

	// Stderr is the messages that were displayed on stderr during the execution of the command
	Stderr string
}

// Cmd represents a command to be executed
type Cmd struct {
	// BinPath is the path to the binary to execute
	BinPath string

	// CmdArgs is a slice of string representing the command's arguments
	CmdArgs []string

	// ExecDir is the directory where to execute the command
	ExecDir string

	// Env is a slice of string representing the environment to be used with the command
	Env []string

	// Stream makes the command inherit the parent's stdout/stderr instead of
	// capturing them. Used for long-running installs where the operator needs
	// to see live progress.
	Stream bool
}

// String returns the full command line, for error reporting
func (c *Cmd) String() string {
	if len(c.CmdArgs) == 0 {
		return c.BinPath
	}
	return c.BinPath + " " + strings.Join(c.CmdArgs, " ")
}

// Run executes the command and returns its result. No timeout is imposed: a
// native toolchain build can legitimately run for hours.
func (c *Cmd) Run() Result {
	var res Result
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(c.BinPath, c.CmdArgs...)
	cmd.Dir = c.ExecDir
	if len(c.Env) > 0 {
		cmd.Env = c.Env
	}
	if c.Stream {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	log.Printf("-> Running %s\n", c.String())
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if err != nil {
		res.Err = err
	}

	return res
}
