package bookfmt

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyName      = errors.New("chapter name cannot be empty")
	ErrReadSource     = errors.New("reading chapter source failed")
	ErrReadCode       = errors.New("reading code file failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// ErrUnknownChapter is returned by ChapterList lookups. Convert reports
	// it as a WarnUnknownChapter warning instead of failing.
	ErrUnknownChapter = errors.New("chapter not in chapter list")

	// Chapter list validation errors.
	ErrInvalidChapterList = errors.New("invalid chapter list")
	ErrDuplicateChapter   = errors.New("duplicate chapter title")

	// Option validation errors.
	ErrInvalidFormat = errors.New("invalid output format")

	// Asset loading errors.
	ErrTemplateNotFound    = errors.New("template not found")
	ErrChapterListNotFound = errors.New("chapter list not found")
	ErrInvalidAssetPath    = errors.New("invalid asset path")
)
