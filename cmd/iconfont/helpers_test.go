package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const (
	squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">` +
		`<rect x="2" y="2" width="20" height="20"/></svg>`
	lineSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" ` +
		`stroke="currentColor" stroke-width="2"><path d="M4 12h16"/></svg>`
	emptySVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"></svg>`
)

// testEnv returns an Environment writing into buffers, with a fixed clock
// and the given KEY=value pairs as its process environment.
func testEnv(environ ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Environment{
		Now:     func() time.Time { return now },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Environ: func() []string { return environ },
	}, &stdout, &stderr
}

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// project lays out a mapping file and an icons directory under a temp dir
// and returns the mapping path, the icons directory and the root.
func project(t *testing.T, mapping string, icons map[string]string) (mappingPath, iconsDir, root string) {
	t.Helper()
	root = t.TempDir()
	mappingPath = filepath.Join(root, "mapping.yaml")
	iconsDir = filepath.Join(root, "icons")
	writeFile(t, mappingPath, mapping)
	if err := os.MkdirAll(iconsDir, 0o750); err != nil {
		t.Fatalf("creating icons dir: %v", err)
	}
	for id, content := range icons {
		writeFile(t, filepath.Join(iconsDir, id+".svg"), content)
	}
	return mappingPath, iconsDir, root
}
