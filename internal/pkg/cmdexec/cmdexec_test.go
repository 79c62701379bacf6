// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdexec

import (
	"strings"
	"testing"
)

func TestRunCapturesOutput(t *testing.T) {
	cmd := Cmd{
		BinPath: "/bin/sh",
		CmdArgs: []string{"-c", "echo hello; echo oops >&2"},
	}

	res := cmd.Run()
	if res.Err != nil {
		t.Fatalf("command failed: %s", res.Err)
	}
	if res.Stdout != "hello\n" {
		t.Fatalf("stdout is %q instead of %q", res.Stdout, "hello\n")
	}
	if res.Stderr != "oops\n" {
		t.Fatalf("stderr is %q instead of %q", res.Stderr, "oops\n")
	}
}

func TestRunHonorsExecDir(t *testing.T) {
	tempDir := t.TempDir()

	cmd := Cmd{
		BinPath: "/bin/sh",
		CmdArgs: []string{"-c", "pwd"},
		ExecDir: tempDir,
	}

	res := cmd.Run()
	if res.Err != nil {
		t.Fatalf("command failed: %s", res.Err)
	}
	// Resolve through the shell's view of the directory, symlinks may differ
	if !strings.Contains(res.Stdout, "/") {
		t.Fatalf("unexpected pwd output: %q", res.Stdout)
	}
}

func TestRunReportsFailure(t *testing.T) {
	cmd := Cmd{
		BinPath: "/bin/sh",
		CmdArgs: []string{"-c", "echo broken >&2; exit 3"},
	}

	res := cmd.Run()
	if res.Err == nil {
		t.Fatalf("expected an error for a failing command")
	}
	if res.Stderr != "broken\n" {
		t.Fatalf("stderr is %q instead of %q", res.Stderr, "broken\n")
	}
}

func TestString(t *testing.T) {
	cmd := Cmd{
		BinPath: "/usr/bin/git",
		CmdArgs: []string{"clone", "--depth=1", "https://example.org/repo.git"},
	}

	expected := "/usr/bin/git clone --depth=1 https://example.org/repo.git"
	if cmd.String() != expected {
		t.Fatalf("command line is %q instead of %q", cmd.String(), expected)
	}

	bare := Cmd{BinPath: "/usr/bin/true"}
	if bare.String() != "/usr/bin/true" {
		t.Fatalf("command line is %q instead of %q", bare.String(), "/usr/bin/true")
	}
}
