package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// Notes:
// - Assertions check for fragments rather than whole documents; goldmark
//   and chroma own the exact whitespace of their output.

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []ConverterOption
		contains []string
		excludes []string
	}{
		{
			name:     "returns a fragment",
			input:    "Hello\n",
			contains: []string{"<p>Hello</p>"},
			excludes: []string{"<html", "<body"},
		},
		{
			name:     "anchored heading kept as raw html",
			input:    "## <a href=\"#bar\" name=\"bar\">Bar</a>\n",
			contains: []string{`<h2><a href="#bar" name="bar">Bar</a></h2>`},
			excludes: []string{"id="},
		},
		{
			name:     "tagged code block highlighted",
			input:    "Intro.\n\n    :::cpp\n    int x = 1;\n",
			contains: []string{"chroma", "int"},
			excludes: []string{":::"},
		},
		{
			name:     "tagged code block in ordered list item",
			input:    "1. item\n\n        :::cpp\n        int x = 1;\n          nested();\n",
			contains: []string{"chroma", "<li>", "nested"},
			excludes: []string{":::"},
		},
		{
			name:     "tagged code block in bullet list item",
			input:    "* item\n\n        :::cpp\n        int x = 1;\n",
			contains: []string{"chroma", "<li>"},
			excludes: []string{":::"},
		},
		{
			name:     "untagged code block left plain",
			input:    "Intro.\n\n    plain();\n",
			contains: []string{"<pre><code>plain();\n</code></pre>"},
			excludes: []string{"chroma"},
		},
		{
			name:     "definition list",
			input:    "Term\n: Definition\n",
			contains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>"},
		},
		{
			name:     "typographic quotes as numeric entities",
			input:    "\"quoted\" text\n",
			contains: []string{"&#8220;quoted&#8221;"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "html void elements",
			input:    "one  \ntwo\n",
			contains: []string{"<br>"},
		},
		{
			name:     "xhtml void elements",
			input:    "one  \ntwo\n",
			opts:     []ConverterOption{WithXHTML()},
			contains: []string{"<br />"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.opts...).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestAsides_RoundTrip
// ---------------------------------------------------------------------------

func TestAsides_RoundTrip(t *testing.T) {
	t.Parallel()

	src := "Text.\n\n<aside name=\"note\">\n*Important* point.\n</aside>\n"
	pre := (&BookPreprocessor{}).PreprocessMarkdown(context.Background(), src)

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), pre)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	got = UnmarkAsides(got)

	for _, want := range []string{`<aside name="note">`, "<em>Important</em> point.", "</aside>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "markdown=") {
		t.Errorf("marker left in output:\n%s", got)
	}
}
