// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"

	"github.com/alnah/go-iconfont/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains go-iconfont/) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-iconfont/") || strings.Contains(p, `go-iconfont\`) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMappingNotFound returns hints for a missing mapping file.
func ForMappingNotFound() string {
	return format("pass the mapping with --mapping or set mapping.file in the config")
}

// ForSourceDir returns hints for a missing SVG source directory.
func ForSourceDir() string {
	return format("pass the SVG directory with --source; each mapped id needs <id>.svg inside it")
}

// ForRepairFailure returns hints for icons whose geometry could not be repaired.
func ForRepairFailure() string {
	return format("use --on-repair-error=skip to leave broken icons out of the font")
}

// ForCodePointOverflow returns hints when the mapping outgrows the private use area.
func ForCodePointOverflow(base rune, glyphs int) string {
	var hints []string
	if base > 0xE000 {
		hints = append(hints, "lower --code-point-base (currently "+fmt.Sprintf("U+%04X", base)+")")
	}
	if glyphs > 0 {
		hints = append(hints, fmt.Sprintf("split the %d icons across several fonts", glyphs))
	}
	return formatHints(hints)
}

// ForDuplicateGlyph returns hints when a glyph name appears twice in the mapping.
func ForDuplicateGlyph() string {
	return format("remove the repeated name from the mapping or use --on-duplicate=overwrite")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	hints := []string{"check parent directory exists and is writable"}
	if IsInContainer() {
		hints = append(hints, "mount a writable volume for the output directory")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
