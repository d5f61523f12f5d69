package pipeline

import "strings"

// prettyReplacer applies the cosmetic substitutions in a single left-to-right
// pass. No replacement produces text another rule matches, so the pass order
// cannot change the result.
var prettyReplacer = strings.NewReplacer(
	" -- ", "&#8202;&mdash;&#8202;",
	"à", "&agrave;",
	"ï", "&iuml;",
	"ø", "&oslash;",
	"æ", "&aelig;",
)

// Pretty swaps the ASCII dash idiom and a few accented letters for HTML
// entities. Applied to prose and heading text only, never to code.
func Pretty(text string) string {
	return prettyReplacer.Replace(text)
}
