package iconfont

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrMappingNotFound   = errors.New("mapping file not found")
	ErrMappingParse      = errors.New("failed to parse mapping")
	ErrSourceDirNotFound = errors.New("source directory not found")

	// Option validation errors.
	ErrInvalidFontName      = errors.New("invalid font name")
	ErrInvalidCodePointBase = errors.New("code point base outside the private use area")
	ErrInvalidUnitsPerEm    = errors.New("invalid units per em")
	ErrInvalidDescent       = errors.New("invalid descent")
	ErrInvalidWorkers       = errors.New("invalid worker count")

	// Pipeline errors.
	ErrVectorRepair      = errors.New("vector repair failed")
	ErrFontMerge         = errors.New("font merge failed")
	ErrCodePointOverflow = errors.New("ran out of private use code points")
	ErrDuplicateGlyph    = errors.New("duplicate glyph name")
	ErrTranscode         = errors.New("font transcoding failed")
	ErrDescriptor        = errors.New("descriptor rendering failed")
	ErrScratchDir        = errors.New("failed to create scratch directory")

	// Output errors.
	ErrWriteOutput = errors.New("failed to write output")
)
