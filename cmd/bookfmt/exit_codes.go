package main

import (
	"errors"
	"os"

	bookfmt "github.com/alnah/go-bookfmt"
	"github.com/alnah/go-bookfmt/internal/config"
	"github.com/alnah/go-bookfmt/internal/dateutil"
)

// Exit codes for the bookfmt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All chapters built
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or assets
	ExitIO       = 3 // Source missing, output not writable
	ExitWarnings = 5 // Authoring warnings under --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrAuthoringWarnings) {
		return ExitWarnings
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, bookfmt.ErrInvalidFormat) ||
		errors.Is(err, bookfmt.ErrInvalidChapterList) ||
		errors.Is(err, bookfmt.ErrDuplicateChapter) ||
		errors.Is(err, bookfmt.ErrTemplateNotFound) ||
		errors.Is(err, bookfmt.ErrChapterListNotFound) ||
		errors.Is(err, bookfmt.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, bookfmt.ErrReadSource) ||
		errors.Is(err, bookfmt.ErrReadCode) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoDocuments) {
		return ExitIO
	}

	return ExitGeneral
}
