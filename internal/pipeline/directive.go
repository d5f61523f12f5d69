package pipeline

import (
	"strings"
	"unicode"
)

// DirectiveSigil starts a directive line such as "^title Game Loop".
const DirectiveSigil = "^"

// Directive is a parsed directive line. The set of implementations is
// closed: SetTitle, SetSection, IncludeCode, MarkOutline and Unknown.
type Directive interface {
	directive()
}

// SetTitle sets the chapter title.
type SetTitle struct{ Title string }

// SetSection sets the part the chapter belongs to.
type SetSection struct{ Section string }

// IncludeCode splices the named code region into the chapter.
type IncludeCode struct{ Region string }

// MarkOutline flags an unfinished chapter.
type MarkOutline struct{}

// Unknown is a directive with an unrecognized command.
type Unknown struct {
	Name string
	Args string
}

func (SetTitle) directive()    {}
func (SetSection) directive()  {}
func (IncludeCode) directive() {}
func (MarkOutline) directive() {}
func (Unknown) directive()     {}

// ParseDirective parses line as a directive. It reports false when the
// line, after leading whitespace, does not start with the sigil.
func ParseDirective(line string) (Directive, bool) {
	stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(stripped, DirectiveSigil) {
		return nil, false
	}

	rest := strings.TrimRight(strings.TrimPrefix(stripped, DirectiveSigil), "\r\n")
	command, args := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		command, args = rest[:i], strings.TrimSpace(rest[i:])
	}

	switch command {
	case "title":
		return SetTitle{Title: args}, true
	case "section":
		return SetSection{Section: args}, true
	case "code":
		return IncludeCode{Region: args}, true
	case "outline":
		return MarkOutline{}, true
	default:
		return Unknown{Name: command, Args: args}, true
	}
}
