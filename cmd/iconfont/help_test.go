package main

import (
	"bytes"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Top-level help
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, cmd := range commandNames {
		if !strings.Contains(buf.String(), "  "+cmd) {
			t.Errorf("usage missing command %q", cmd)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintBuildUsage - Every build flag is documented
// ---------------------------------------------------------------------------

func TestPrintBuildUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBuildUsage(&buf)
	output := buf.String()

	buildBuildFlagSet().VisitAll(func(f *flag.Flag) {
		if !strings.Contains(output, "--"+f.Name) {
			t.Errorf("build usage missing --%s", f.Name)
		}
		if f.Shorthand != "" && !strings.Contains(output, "-"+f.Shorthand+", --"+f.Name) {
			t.Errorf("build usage missing -%s for --%s", f.Shorthand, f.Name)
		}
	})

	for name := range knownEnvVars {
		if !strings.Contains(output, name) {
			t.Errorf("build usage missing environment variable %s", name)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, "Commands:", ""},
		{"build", []string{"build"}, "Usage: iconfont build", ""},
		{"version", []string{"version"}, "Usage: iconfont version", ""},
		{"help", []string{"help"}, "Usage: iconfont help", ""},
		{"completion", []string{"completion"}, "Usage: iconfont completion", ""},
		{"unknown", []string{"convert"}, "", "Unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q, got %q", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q, got %q", tt.wantStderr, stderr)
			}
		})
	}
}
