package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// codeHilitePriority runs the tag-to-fence rewrite before other transformers.
const codeHilitePriority = 100

// typographicEntities emits numeric references so the output is valid in
// both the HTML and the XML export, which has no named entity table.
var typographicEntities = map[extension.TypographicPunctuation][]byte{
	extension.LeftSingleQuote:  []byte("&#8216;"),
	extension.RightSingleQuote: []byte("&#8217;"),
	extension.LeftDoubleQuote:  []byte("&#8220;"),
	extension.RightDoubleQuote: []byte("&#8221;"),
	extension.EnDash:           []byte("&#8211;"),
	extension.EmDash:           []byte("&#8212;"),
	extension.Ellipsis:         []byte("&#8230;"),
	extension.LeftAngleQuote:   []byte("&#171;"),
	extension.RightAngleQuote:  []byte("&#187;"),
	extension.Apostrophe:       []byte("&#8217;"),
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts annotated Markdown to an HTML fragment using
// goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterOptions)

type converterOptions struct {
	xhtml bool
}

// WithXHTML renders self-closing void elements, as the XML export needs.
func WithXHTML() ConverterOption {
	return func(o *converterOptions) {
		o.xhtml = true
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, definition
// lists, footnotes, typographic quotes and class-based syntax highlighting.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	var o converterOptions
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []renderer.Option{
		// Headings carry raw anchor markup and asides are raw HTML blocks.
		html.WithUnsafe(),
	}
	if o.xhtml {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
			extension.Footnote,
			extension.NewTypographer(
				extension.WithTypographicSubstitutions(typographicEntities),
			),
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by the book's stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(codeHilite{}, codeHilitePriority),
			),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
