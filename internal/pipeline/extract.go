package pipeline

import (
	"strings"
	"unicode/utf8"
)

// Region marker defaults.
const (
	DefaultMarker      = "//^"
	DefaultOmitKeyword = "omit"
	DefaultLanguage    = "cpp"

	// codeIndent turns excerpt lines into an indented Markdown code block.
	codeIndent = "    "

	// languagePrefix introduces the language tag on the first block line;
	// the codehilite transformer turns it into a fenced block's info string.
	languagePrefix = ":::"
)

// RegionExtractor pulls named regions out of source files. A region starts
// and ends at lines consisting only of the marker followed by its name:
//
//	//^update
//	void update() { ... }
//	//^update
//
// Inside a region, "//^omit" toggles hiding for every region while
// "//^omit update" toggles hiding for this region only. Markers naming other
// regions are ignored, so regions may overlap.
type RegionExtractor struct {
	Marker       string // region marker prefix, "//^" by default
	Language     string // language tag for the highlighter
	MaxLineWidth int    // widest excerpt line before a warning; 0 disables
}

// Excerpt is the result of one extraction.
type Excerpt struct {
	Block     string     // Markdown code block, empty when the region was not found
	Found     bool       // a start marker was seen
	Lines     int        // included lines, blank lines counted
	LongLines []LongLine // included lines wider than MaxLineWidth
}

// LongLine is an excerpt line that will overflow the printed page.
type LongLine struct {
	Width int
	Text  string
}

// extractState is the extractor's state machine. omitAll and omitRegion are
// independent toggles; a line is kept only when both are off.
type extractState struct {
	inside      bool
	omitAll     bool // flipped by the global omit marker
	omitRegion  bool // flipped by the omit marker naming this region
	blockIndent int  // column of the start marker
}

func (s extractState) including() bool {
	return !s.omitAll && !s.omitRegion
}

type markerKind int

const (
	notMarker markerKind = iota
	boundaryMarker
	omitAllMarker
	omitRegionMarker
	foreignMarker
)

// Extract returns the named region of lines as a Markdown code block,
// each line prefixed with indent plus the code block indent. lines must not
// carry line terminators. A missing region yields an empty Excerpt.
func (x *RegionExtractor) Extract(lines []string, region, indent string) Excerpt {
	var (
		st  extractState
		out strings.Builder
		ex  Excerpt
	)

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		stripped := strings.TrimSpace(line)
		kind := x.classify(stripped, region)

		if !st.inside {
			if kind == boundaryMarker {
				st.inside = true
				ex.Found = true
				st.blockIndent = len(line) - len(strings.TrimLeft(line, " \t"))
			}
			continue
		}

		switch kind {
		case boundaryMarker:
			return x.finish(&out, ex, indent)
		case omitAllMarker:
			st.omitAll = !st.omitAll
			continue
		case omitRegionMarker:
			st.omitRegion = !st.omitRegion
			continue
		case foreignMarker:
			continue
		}

		if !st.including() {
			continue
		}

		ex.Lines++
		if stripped == "" {
			out.WriteString("\n")
			continue
		}

		code := dedent(line, st.blockIndent)
		if width := utf8.RuneCountInString(code); x.MaxLineWidth > 0 && width > x.MaxLineWidth {
			ex.LongLines = append(ex.LongLines, LongLine{Width: width, Text: code})
		}
		out.WriteString(indent)
		out.WriteString(codeIndent)
		out.WriteString(code)
		out.WriteString("\n")
	}

	// Unterminated region: keep what was collected.
	return x.finish(&out, ex, indent)
}

func (x *RegionExtractor) finish(body *strings.Builder, ex Excerpt, indent string) Excerpt {
	if !ex.Found {
		return ex
	}
	ex.Block = indent + codeIndent + languagePrefix + x.language() + "\n" + body.String()
	return ex
}

// classify identifies marker lines relative to the requested region.
func (x *RegionExtractor) classify(stripped, region string) markerKind {
	marker := x.marker()
	switch {
	case !strings.HasPrefix(stripped, marker):
		return notMarker
	case stripped == marker+region:
		return boundaryMarker
	case stripped == marker+DefaultOmitKeyword:
		return omitAllMarker
	case stripped == marker+DefaultOmitKeyword+" "+region:
		return omitRegionMarker
	default:
		return foreignMarker
	}
}

func (x *RegionExtractor) marker() string {
	if x.Marker == "" {
		return DefaultMarker
	}
	return x.Marker
}

func (x *RegionExtractor) language() string {
	if x.Language == "" {
		return DefaultLanguage
	}
	return x.Language
}

// dedent removes the block indent from line. A line indented less than the
// block keeps its text and loses only its leading whitespace.
func dedent(line string, blockIndent int) string {
	lead := len(line) - len(strings.TrimLeft(line, " \t"))
	if lead >= blockIndent {
		return line[blockIndent:]
	}
	return line[lead:]
}
