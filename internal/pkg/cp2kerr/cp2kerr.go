// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cp2kerr

import (
	"errors"
	"fmt"
)

// ErrSpackNotFound is the error returned when a Spack directory exists but does not
// contain the bin/spack executable
var ErrSpackNotFound = errors.New("spack executable not found")

// ErrMissingArtifact is the error returned when no arch file matches the expected
// pattern in an installed environment
var ErrMissingArtifact = errors.New("no matching arch file")

// ErrAmbiguousArtifact is the error returned when more than one arch file matches
// the expected pattern in an installed environment
var ErrAmbiguousArtifact = errors.New("more than one matching arch file")

// CommandError represents the failure of an external command. It carries the
// command line that failed as well as the output that was captured so that the
// operator can diagnose the problem.
type CommandError struct {
	// Msg is a human readable description of what failed
	Msg string

	// CmdLine is the full command line that was executed
	CmdLine string

	// Stdout is the captured standard output of the command, if any
	Stdout string

	// Stderr is the captured standard error of the command, if any
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s (command: %s)", e.Msg, e.CmdLine)
}
