package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/alnah/go-bookfmt/internal/hints"
)

// HeadingSigil starts a heading line.
const HeadingSigil = '#'

// maxHeadingLevel is the deepest ATX heading level.
const maxHeadingLevel = 6

// softHyphen is stripped from the plain-text title but kept in its HTML.
const softHyphen = "&shy;"

// CodeLoader supplies the source file a chapter excerpts code from.
type CodeLoader interface {
	// LoadCode returns the lines of the code file for the named chapter,
	// without line terminators, and the path it was read from.
	LoadCode(ctx context.Context, name string) (lines []string, path string, err error)
}

// Interpreter walks chapter lines and produces the annotated Markdown
// stream plus the chapter metadata.
type Interpreter struct {
	Code          CodeLoader
	Extractor     *RegionExtractor
	NavMaxLevel   int  // deepest heading level listed in navigation; 0 means 2
	PlainHeadings bool // leave headings as prose, for the XML export
}

// Annotated is the interpreter's output for one chapter.
type Annotated struct {
	Content    string
	Title      string // plain title, soft hyphens removed
	TitleHTML  string // title as written
	Section    string
	Outline    bool
	Navigation []NavEntry
	Warnings   []Warning
}

// Interpret processes the lines of the chapter called name. Each line is
// routed to exactly one of three branches: directive, heading, or prose.
// Lines keep their terminators; SplitLines produces suitable input.
// Only I/O failures while loading code are returned as errors.
func (in *Interpreter) Interpret(ctx context.Context, name string, lines []string) (*Annotated, error) {
	var (
		out     strings.Builder
		a       = &Annotated{}
		code    []string
		codeSrc string
		loaded  bool
	)

	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		indentation := line[:len(line)-len(stripped)]

		if d, ok := ParseDirective(line); ok {
			switch d := d.(type) {
			case SetTitle:
				a.TitleHTML = d.Title
				a.Title = strings.ReplaceAll(d.Title, softHyphen, "")
			case SetSection:
				a.Section = d.Section
			case MarkOutline:
				a.Outline = true
			case IncludeCode:
				if !loaded {
					if err := ctx.Err(); err != nil {
						return nil, err
					}
					var err error
					code, codeSrc, err = in.Code.LoadCode(ctx, name)
					if err != nil {
						return nil, fmt.Errorf("line %d: %w", lineNo, err)
					}
					loaded = true
				}
				in.includeCode(&out, a, code, codeSrc, d.Region, indentation, lineNo)
			case Unknown:
				a.Warnings = append(a.Warnings, Warning{
					Kind:    WarnUnknownDirective,
					Line:    lineNo,
					Message: strings.TrimSpace(d.Name + " " + d.Args),
				})
			}
			continue
		}

		if !in.PlainHeadings {
			if level, text, ok := parseHeading(stripped); ok {
				heading := Pretty(text)
				anchor := Anchor(heading)

				out.WriteString(indentation)
				out.WriteString(strings.Repeat(string(HeadingSigil), level))
				out.WriteString(` <a href="#` + anchor + `" name="` + anchor + `">` + heading + "</a>\n")

				if level >= navBaseLevel+1 && level <= in.navMaxLevel() {
					a.Navigation = append(a.Navigation, NavEntry{Level: level, Text: heading, Anchor: anchor})
				}
				continue
			}
		}

		out.WriteString(Pretty(line))
	}

	a.Content = out.String()
	return a, nil
}

func (in *Interpreter) includeCode(out *strings.Builder, a *Annotated, code []string, codeSrc, region, indentation string, lineNo int) {
	ex := in.Extractor.Extract(code, region, indentation)
	if ex.Lines == 0 {
		a.Warnings = append(a.Warnings, Warning{
			Kind:    WarnEmptyRegion,
			Line:    lineNo,
			Message: fmt.Sprintf("region %q in %s extracted no lines%s", region, codeSrc, hints.ForEmptyRegion(in.Extractor.marker(), region, codeSrc)),
		})
	}
	for _, ll := range ex.LongLines {
		a.Warnings = append(a.Warnings, Warning{
			Kind:    WarnLongLine,
			Line:    lineNo,
			Message: fmt.Sprintf("region %q: %d chars: %s%s", region, ll.Width, ll.Text, hints.ForLongLine(in.Extractor.MaxLineWidth)),
		})
	}
	out.WriteString(ex.Block)
}

func (in *Interpreter) navMaxLevel() int {
	if in.NavMaxLevel == 0 {
		return navBaseLevel + 1
	}
	return in.NavMaxLevel
}

// parseHeading recognizes an ATX heading: one to six sigils followed by
// whitespace or end of line. "#include" is prose, not a heading.
func parseHeading(stripped string) (level int, text string, ok bool) {
	for level < len(stripped) && stripped[level] == HeadingSigil {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	rest := stripped[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\r' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}

// SplitLines splits text into lines that keep their terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
