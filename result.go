package iconfont

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-iconfont/internal/fileutil"
)

// Result holds the outputs of a successful build.
type Result struct {
	FontName   string
	WOFF       []byte // the icon font
	Descriptor []byte // JSON icon theme descriptor
	Glyphs     []Glyph
	Skipped    []SkippedIcon
	Timings    []StageTiming
}

// FontFile returns the file name of the font, "<name>.woff".
func (r *Result) FontFile() string {
	return r.FontName + ".woff"
}

// DescriptorFile returns the file name of the descriptor, "<name>.json".
func (r *Result) DescriptorFile() string {
	return r.FontName + ".json"
}

// WriteFiles writes the font and the descriptor into dir, creating it if
// needed, and returns their paths.
func (r *Result) WriteFiles(dir string) (fontPath, descriptorPath string, err error) {
	fontPath = filepath.Join(dir, r.FontFile())
	descriptorPath = filepath.Join(dir, r.DescriptorFile())

	var g errgroup.Group
	g.Go(func() error {
		if err := fileutil.WriteFile(fontPath, r.WOFF); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := fileutil.WriteFile(descriptorPath, r.Descriptor); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return fontPath, descriptorPath, nil
}
