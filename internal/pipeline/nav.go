package pipeline

import "strings"

// navBaseLevel is the chapter title's own level. Entries nest below it, so
// level-2 headings form the outermost list.
const navBaseLevel = 1

// NavEntry is one heading listed in the in-page table of contents.
type NavEntry struct {
	Level  int
	Text   string
	Anchor string
}

// RenderNavigation renders entries as nested <ul><li> lists.
//
// A cursor tracks the open nesting depth. Deeper entries open one list per
// level skipped; shallower or equal entries close back down and start a new
// item. Levels at or above the base level are clamped to the first nesting
// level, and all lists are closed at the end, so the output is balanced for
// any sequence of levels.
func RenderNavigation(entries []NavEntry) string {
	var b strings.Builder
	depth := navBaseLevel

	for _, e := range entries {
		level := max(e.Level, navBaseLevel+1)

		if level > depth {
			for ; depth < level; depth++ {
				b.WriteString("<ul><li>\n")
			}
		} else {
			for ; depth > level; depth-- {
				b.WriteString("</li></ul>\n")
			}
			b.WriteString("</li><li>\n")
		}

		b.WriteString(`<a href="#`)
		b.WriteString(e.Anchor)
		b.WriteString(`">`)
		b.WriteString(e.Text)
		b.WriteString("</a>")
	}

	for ; depth > navBaseLevel; depth-- {
		b.WriteString("</li></ul>\n")
	}

	return b.String()
}
