package pipeline

import "strings"

// anchorReplacer hyphenates spaces and drops the punctuation that breaks
// URL fragments.
var anchorReplacer = strings.NewReplacer(
	" ", "-",
	".", "",
	"?", "",
	"!", "",
	":", "",
	"/", "",
	`"`, "",
)

// Anchor derives the URL fragment for a heading. It never fails: a
// punctuation-only heading yields an empty anchor, and Anchor(Anchor(s))
// equals Anchor(s).
func Anchor(heading string) string {
	return anchorReplacer.Replace(strings.ToLower(heading))
}
