package yamlutil_test

// Notes:
// - UnmarshalOrdered value types: we only check strings and nulls, the two
//   shapes a mapping file is expected to contain.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-iconfont/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		anyErr  bool
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
		},
		{
			name:   "unknown field",
			data:   []byte("name: test\nunknown: value"),
			dest:   &testConfig{},
			anyErr: true,
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Errorf("error %q should have yamlutil prefix", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalOrdered - Keeps key order, rejects duplicates
// ---------------------------------------------------------------------------

func TestUnmarshalOrdered(t *testing.T) {
	t.Parallel()

	t.Run("YAML keeps document order", func(t *testing.T) {
		t.Parallel()

		data := []byte("codicon:zeta: lucide:z\ncodicon:alpha: lucide:a\ncodicon:mid:\n")
		got, err := yamlutil.UnmarshalOrdered(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []yamlutil.Pair{
			{Key: "codicon:zeta", Value: "lucide:z"},
			{Key: "codicon:alpha", Value: "lucide:a"},
			{Key: "codicon:mid", Value: nil},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UnmarshalOrdered() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("JSON keeps document order", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"codicon:debug": "lucide:bug", "codicon:alert": ""}`)
		got, err := yamlutil.UnmarshalOrdered(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []yamlutil.Pair{
			{Key: "codicon:debug", Value: "lucide:bug"},
			{Key: "codicon:alert", Value: ""},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("UnmarshalOrdered() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		t.Parallel()

		data := []byte("a: x\nb: y\na: z\n")
		if _, err := yamlutil.UnmarshalOrdered(data); err == nil {
			t.Fatal("expected error for duplicate key, got nil")
		}
	})

	t.Run("non-mapping document is rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := yamlutil.UnmarshalOrdered([]byte("- a\n- b\n")); err == nil {
			t.Fatal("expected error for sequence document, got nil")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		_, err := yamlutil.UnmarshalOrdered(nil)
		if !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("error = %v, want ErrNilData", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Rejects oversized input
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	// Not parallel: reads the package-level MaxInputSize.
	data := []byte("k: " + strings.Repeat("x", yamlutil.MaxInputSize))

	t.Run("UnmarshalStrict enforces limit", func(t *testing.T) {
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("UnmarshalOrdered enforces limit", func(t *testing.T) {
		_, err := yamlutil.UnmarshalOrdered(data)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
