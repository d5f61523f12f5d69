// Package dateutil renders modification dates with user-friendly format tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no format is configured. It matches the
// "January 2, 2006" line printed under chapter headers.
const DefaultDateFormat = "MMMM D, YYYY"

// dateTokens maps format tokens to Go layout components, longest first so
// "MMMM" wins over "MM".
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names common formats. Lookup is case-insensitive.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     DefaultDateFormat,
}

// Layout is a compiled date format, ready to render many dates.
type Layout struct {
	goLayout string
}

// Compile resolves presets and translates format into a Layout. An empty
// format compiles DefaultDateFormat.
func Compile(format string) (Layout, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	goLayout, err := ParseDateFormat(format)
	if err != nil {
		return Layout{}, err
	}
	return Layout{goLayout: goLayout}, nil
}

// Format renders t. The zero Layout renders DefaultDateFormat.
func (l Layout) Format(t time.Time) string {
	if l.goLayout == "" {
		l, _ = Compile("")
	}
	return t.Format(l.goLayout)
}

// ParseDateFormat converts a token format to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd (weekday), ddd.
// Text in brackets is copied literally ("[Updated] YYYY"); any other
// character is kept as is.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var out strings.Builder
	rest := format
	for rest != "" {
		if literal, ok := strings.CutPrefix(rest, "["); ok {
			text, after, closed := strings.Cut(literal, "]")
			if !closed {
				pos := len(format) - len(rest)
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
			}
			out.WriteString(text)
			rest = after
			continue
		}

		n := 1
		piece := rest[:1]
		for _, tok := range dateTokens {
			if strings.HasPrefix(rest, tok.token) {
				n, piece = len(tok.token), tok.goFmt
				break
			}
		}
		out.WriteString(piece)
		rest = rest[n:]
	}

	return out.String(), nil
}

// Format renders t with a token format or preset name.
func Format(t time.Time, format string) (string, error) {
	l, err := Compile(format)
	if err != nil {
		return "", err
	}
	return l.Format(t), nil
}
