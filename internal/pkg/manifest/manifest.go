// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * manifest records what was installed in an environment: the command that
 * ran, where, when, the spec that was requested and the fingerprint of the
 * extracted arch file. The manifest makes it possible to detect afterwards
 * whether an arch file was modified since its extraction.
 */
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gvallee/go_util/pkg/util"
)

// FileName is the name of the manifest file inside an environment directory
const FileName = "install.MANIFEST"

// Record gathers everything worth recording about one variant installation
type Record struct {
	// Command is the command line that performed the installation
	Command string

	// ExecDir is the directory the command ran in
	ExecDir string

	// Spec is the package spec that was installed
	Spec string

	// ArtifactPaths is the list of files to fingerprint, typically the
	// extracted arch file
	ArtifactPaths []string
}

func getFileHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	hasher := sha256.New()
	_, err = io.Copy(hasher, f)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// HashFiles returns the hash for a list of files (absolute path)
func HashFiles(files []string) []string {
	var hashData []string

	for _, file := range files {
		hash := getFileHash(file)
		hashData = append(hashData, file+": "+hash)
	}

	return hashData
}

// Write creates the manifest in the given environment directory. An existing
// manifest is kept as is.
func (r *Record) Write(envDir string) error {
	path := filepath.Join(envDir, FileName)
	if util.FileExists(path) {
		log.Printf("Manifest %s already exists, skipping...", path)
		return nil
	}

	data := []string{
		"Command: " + r.Command,
		"Execution path: " + r.ExecDir,
		"Spec: " + r.Spec,
		"Execution time: " + time.Now().Format("2006-01-02 15:04:05"),
	}
	data = append(data, HashFiles(r.ArtifactPaths)...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %s", path, err)
	}
	defer f.Close()

	_, err = f.WriteString(strings.Join(data, "\n"))
	if err != nil {
		return fmt.Errorf("failed to write to %s: %s", path, err)
	}

	err = os.Chmod(path, 0444)
	if err != nil {
		return fmt.Errorf("failed to set manifest to read only: %s", err)
	}

	return nil
}

// Check parses a manifest and verifies that the files recorded there still
// have the same fingerprint
func Check(path string) error {
	if !util.FileExists(path) {
		// Not an error, just note there is no manifest
		log.Printf("%s does not exist, skipping...", path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("failed to read manifest %s", path)
		return nil // This is not a fatal error
	}

	for _, line := range strings.Split(string(data), "\n") {
		tokens := strings.Split(line, ": ")
		if len(tokens) != 2 {
			continue
		}
		file := tokens[0]
		recordedHash := tokens[1]
		if strings.Contains(file, " ") || !strings.Contains(file, string(os.PathSeparator)) {
			// Metadata entry, not a file fingerprint
			continue
		}
		actualHash := getFileHash(file)
		if actualHash != recordedHash {
			return fmt.Errorf("hashes differ for %s (record: %s; actual: %s)", file, recordedHash, actualHash)
		}
	}

	return nil
}
