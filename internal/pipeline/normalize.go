package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-iconfont/internal/fileutil"
	"github.com/alnah/go-iconfont/internal/outline"
)

// ErrRepair is returned when a source SVG cannot be repaired and failures
// are not skipped.
var ErrRepair = errors.New("vector repair failed")

// Skip reasons.
const (
	ReasonMissingSource = "missing source"
	ReasonRepairFailed  = "repair failed"
)

// NormalizeOptions configures Normalize.
type NormalizeOptions struct {
	SourceDir  string
	ScratchDir string
	UnitsPerEm int
	Workers    int // <= 0 means GOMAXPROCS

	// SkipRepairFailures drops icons whose repair fails instead of failing
	// the whole run.
	SkipRepairFailures bool
}

// Normalized is a repaired icon ready to be merged.
type Normalized struct {
	GlyphName string
	VectorID  string
	Path      string // repaired SVG in the scratch directory
}

// Skipped is an icon left out of the font.
type Skipped struct {
	GlyphName string
	VectorID  string
	Source    string
	Reason    string
	Err       error // repair error, nil for missing sources
}

// NormalizeResult holds the survivors and the skipped icons, both in input
// order.
type NormalizeResult struct {
	Icons   []Normalized
	Skipped []Skipped
}

// Normalize repairs the source SVG of every item into the scratch
// directory. Items run concurrently, at most Workers at a time; the result
// keeps input order regardless of completion order.
func Normalize(ctx context.Context, items []Resolved, opts NormalizeOptions) (*NormalizeResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	icons := make([]*Normalized, len(items))
	skipped := make([]*Skipped, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src := filepath.Join(opts.SourceDir, item.VectorID+".svg")
			if !fileutil.FileExists(src) {
				skipped[i] = &Skipped{
					GlyphName: item.GlyphName,
					VectorID:  item.VectorID,
					Source:    src,
					Reason:    ReasonMissingSource,
				}
				return nil
			}

			dst := filepath.Join(opts.ScratchDir, scratchName(i, item.VectorID))
			if err := repairFile(src, dst, float64(opts.UnitsPerEm)); err != nil {
				if !opts.SkipRepairFailures {
					return fmt.Errorf("%w: %s: %v", ErrRepair, src, err)
				}
				skipped[i] = &Skipped{
					GlyphName: item.GlyphName,
					VectorID:  item.VectorID,
					Source:    src,
					Reason:    ReasonRepairFailed,
					Err:       err,
				}
				return nil
			}

			icons[i] = &Normalized{GlyphName: item.GlyphName, VectorID: item.VectorID, Path: dst}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &NormalizeResult{}
	for i := range items {
		if icons[i] != nil {
			res.Icons = append(res.Icons, *icons[i])
		}
		if skipped[i] != nil {
			res.Skipped = append(res.Skipped, *skipped[i])
		}
	}
	return res, nil
}

func repairFile(src, dst string, size float64) error {
	f, err := os.Open(src) // #nosec G304 -- path built from the mapping and source dir
	if err != nil {
		return err
	}
	defer f.Close()

	o, err := outline.Repair(f, size)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := o.WriteSVG(&buf); err != nil {
		return err
	}
	return fileutil.WriteFile(dst, buf.Bytes())
}

// scratchName prefixes the index so that two items using the same vector
// never share a scratch file.
func scratchName(index int, vectorID string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, vectorID)
	return strconv.Itoa(index) + "-" + name + ".svg"
}
