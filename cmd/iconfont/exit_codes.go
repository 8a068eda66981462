package main

import (
	"errors"
	"os"

	iconfont "github.com/alnah/go-iconfont"
	"github.com/alnah/go-iconfont/internal/config"
)

// Exit codes for iconfont CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error, including interruption
	ExitUsage   = 2 // Invalid flags, config, mapping or validation
	ExitIO      = 3 // Mapping or source not found, write failure
	ExitFont    = 4 // Repair, merge or transcoding failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Font pipeline errors (exit 4)
	if errors.Is(err, iconfont.ErrVectorRepair) ||
		errors.Is(err, iconfont.ErrFontMerge) ||
		errors.Is(err, iconfont.ErrCodePointOverflow) ||
		errors.Is(err, iconfont.ErrDuplicateGlyph) ||
		errors.Is(err, iconfont.ErrTranscode) ||
		errors.Is(err, iconfont.ErrDescriptor) {
		return ExitFont
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, iconfont.ErrMappingNotFound) ||
		errors.Is(err, iconfont.ErrSourceDirNotFound) ||
		errors.Is(err, iconfont.ErrScratchDir) ||
		errors.Is(err, iconfont.ErrWriteOutput) ||
		errors.Is(err, ErrNoMapping) ||
		errors.Is(err, ErrNoSource) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, iconfont.ErrMappingParse) ||
		errors.Is(err, iconfont.ErrInvalidFontName) ||
		errors.Is(err, iconfont.ErrInvalidCodePointBase) ||
		errors.Is(err, iconfont.ErrInvalidUnitsPerEm) ||
		errors.Is(err, iconfont.ErrInvalidDescent) ||
		errors.Is(err, iconfont.ErrInvalidWorkers) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
