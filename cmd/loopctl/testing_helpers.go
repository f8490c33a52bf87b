package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeDocument drops a document into a temp dir and returns its path
func writeDocument(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// resetFlags restores the global command flags between test cases
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	dumpModule = ""
	dumpDepth = -1
	dumpOrigin = "all"
	validateCheck = "all"
	stripAutoOnly = false
	stripManualOnly = false
	stripOutput = ""
}
