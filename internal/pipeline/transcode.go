package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-iconfont/internal/fontbuild"
	"github.com/alnah/go-iconfont/internal/svgfont"
	"github.com/alnah/go-iconfont/internal/woff"
)

// ErrTranscode is returned when the SVG font cannot be turned into WOFF.
var ErrTranscode = errors.New("font transcoding failed")

// TranscodeOptions carries the style metadata written into the font.
type TranscodeOptions struct {
	Weight string
	Style  string
}

// Transcode converts a merged SVG font into WOFF bytes, going through an
// OpenType font with CFF outlines.
func Transcode(svgFont string, opts TranscodeOptions) ([]byte, error) {
	parsed, err := svgfont.Parse(strings.NewReader(svgFont))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}
	font, err := fontbuild.Build(parsed, fontbuild.Options{Weight: opts.Weight, Style: opts.Style})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}
	otf, err := fontbuild.Encode(font)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}
	data, err := woff.Encode(otf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
	}
	return data, nil
}
