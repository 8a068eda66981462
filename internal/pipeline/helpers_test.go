package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">` +
		`<rect x="2" y="2" width="20" height="20"/></svg>`
	lineSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" ` +
		`stroke="currentColor" stroke-width="2"><path d="M4 12h16"/></svg>`
	emptySVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"></svg>`
)

// writeIcons creates <dir>/<id>.svg for every entry of icons.
func writeIcons(t *testing.T, icons map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for id, content := range icons {
		if err := os.WriteFile(filepath.Join(dir, id+".svg"), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", id, err)
		}
	}
	return dir
}
