package bookfmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-bookfmt/internal/pipeline"
)

// Format selects the output flavor.
type Format string

// Output formats.
const (
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
)

// Validate checks that f is a known format.
func (f Format) Validate() error {
	switch f {
	case FormatHTML, FormatXML:
		return nil
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidFormat, string(f), FormatHTML, FormatXML)
	}
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Input is one chapter to convert.
type Input struct {
	// Name is the chapter's base name, e.g. "game-loop". It names the code
	// file excerpts are read from.
	Name string

	// Source is the chapter markup.
	Source string

	// Modified fills the {{modified}} placeholder. Zero leaves it empty.
	Modified time.Time
}

// NavEntry is one heading listed in a chapter's navigation.
type NavEntry = pipeline.NavEntry

// Result is the converted chapter and what was learned about it.
type Result struct {
	Output     []byte
	Title      string // plain title from the ^title directive
	Section    string // part label, empty for part headers
	Outline    bool   // chapter flagged with ^outline
	Navigation []NavEntry
	Words      int // whitespace-separated words in the annotated source
	Warnings   []Warning
}

// WarningKind classifies authoring problems.
type WarningKind = pipeline.WarningKind

// Warning kinds.
const (
	WarnUnknownDirective = pipeline.WarnUnknownDirective
	WarnUnknownChapter   = pipeline.WarnUnknownChapter
	WarnEmptyRegion      = pipeline.WarnEmptyRegion
	WarnLongLine         = pipeline.WarnLongLine
)

// Warning is a non-fatal authoring problem found while converting a
// chapter. The chapter is still written.
type Warning struct {
	Kind     WarningKind
	Document string
	Line     int // 1-based source line, 0 when not tied to one
	Message  string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", w.Document, w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Document, w.Kind, w.Message)
}
