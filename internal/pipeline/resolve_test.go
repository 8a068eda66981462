package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestResolve - Mapping rows to glyph names and vector ids
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		prefix  string
		want    []Resolved
	}{
		{
			name: "namespaced target and empty fallback",
			entries: []Entry{
				{Source: "codicon:debug", Target: "lucide:bug"},
				{Source: "codicon:alert", Target: ""},
			},
			prefix: "codicon:",
			want: []Resolved{
				{GlyphName: "debug", VectorID: "bug"},
				{GlyphName: "alert", VectorID: "alert"},
			},
		},
		{
			name:    "target without namespace is used whole",
			entries: []Entry{{Source: "codicon:add", Target: "plus"}},
			prefix:  "codicon:",
			want:    []Resolved{{GlyphName: "add", VectorID: "plus"}},
		},
		{
			name:    "only the segment after the first colon",
			entries: []Entry{{Source: "codicon:gear", Target: "lucide:settings:2"}},
			prefix:  "codicon:",
			want:    []Resolved{{GlyphName: "gear", VectorID: "settings"}},
		},
		{
			name:    "source without the prefix is kept",
			entries: []Entry{{Source: "debug", Target: "lucide:bug"}},
			prefix:  "codicon:",
			want:    []Resolved{{GlyphName: "debug", VectorID: "bug"}},
		},
		{
			name:    "empty prefix",
			entries: []Entry{{Source: "codicon:debug", Target: "lucide:bug"}},
			prefix:  "",
			want:    []Resolved{{GlyphName: "codicon:debug", VectorID: "bug"}},
		},
		{
			name:    "malformed entries propagate",
			entries: []Entry{{Source: "codicon:x", Target: "lucide:"}},
			prefix:  "codicon:",
			want:    []Resolved{{GlyphName: "x", VectorID: ""}},
		},
		{
			name:    "empty table",
			entries: nil,
			prefix:  "codicon:",
			want:    []Resolved{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(tt.entries, tt.prefix)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
