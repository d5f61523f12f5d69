package pipeline

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseDirective
// ---------------------------------------------------------------------------

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		want   Directive
		wantOK bool
	}{
		{"title", "^title Game Loop\n", SetTitle{Title: "Game Loop"}, true},
		{"title with soft hyphen", "^title Double&shy;Buffer\n", SetTitle{Title: "Double&shy;Buffer"}, true},
		{"section", "^section Sequencing Patterns\n", SetSection{Section: "Sequencing Patterns"}, true},
		{"code", "^code update\n", IncludeCode{Region: "update"}, true},
		{"indented code", "  ^code update\r\n", IncludeCode{Region: "update"}, true},
		{"outline", "^outline\n", MarkOutline{}, true},
		{"outline ignores args", "^outline later", MarkOutline{}, true},
		{"unknown", "^frobnicate a b\n", Unknown{Name: "frobnicate", Args: "a b"}, true},
		{"empty title", "^title\n", SetTitle{}, true},
		{"prose", "Plain text ^title\n", nil, false},
		{"heading", "## Heading\n", nil, false},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseDirective(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseDirective(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}
