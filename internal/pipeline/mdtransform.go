package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// asideMarker flags an aside for Markdown processing of its contents. It
// is added before rendering and removed afterwards by UnmarkAsides.
const asideMarker = ` markdown="1"`

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Opening aside tag at line start, group 2 holds its attributes.
	asideOpen = regexp.MustCompile(`(?m)^([ \t]*)<aside\b([^>]*)>[ \t]*$`)

	// Closing aside tag at line start.
	asideClose = regexp.MustCompile(`(?m)^([ \t]*)</aside>`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// BookPreprocessor prepares annotated chapter text for goldmark.
type BookPreprocessor struct{}

var _ MarkdownPreprocessor = (*BookPreprocessor)(nil)

// PreprocessMarkdown normalizes line endings and marks asides.
func (p *BookPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = MarkAsides(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// MarkAsides brackets every aside so its body is parsed as Markdown. An
// HTML block ends at the first blank line, so a blank line is placed after
// the opening tag and before the closing one.
func MarkAsides(content string) string {
	content = asideOpen.ReplaceAllStringFunc(content, func(tag string) string {
		m := asideOpen.FindStringSubmatch(tag)
		attrs := m[2]
		if !strings.Contains(attrs, asideMarker) {
			attrs = asideMarker + attrs
		}
		return m[1] + "<aside" + attrs + ">\n"
	})
	return asideClose.ReplaceAllString(content, "\n$1</aside>")
}

// UnmarkAsides removes the marker MarkAsides added to rendered asides.
func UnmarkAsides(rendered string) string {
	return strings.ReplaceAll(rendered, "<aside"+asideMarker, "<aside")
}
