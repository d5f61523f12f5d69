// Package hints provides actionable hints for authoring and setup failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to messages.
package hints

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// minSuggestRatio is the similarity below which no chapter is suggested.
const minSuggestRatio = 0.6

// LookPath reports whether an executable is on PATH. Replaced in tests.
var LookPath = exec.LookPath

// ForUnknownChapter suggests the closest chapter title when a ^title
// directive does not match the chapter list exactly.
func ForUnknownChapter(title string, available []string) string {
	if best := closest(title, available); best != "" {
		return format("did you mean " + `"` + best + `"?`)
	}
	return format("add the title to the chapter list or fix the ^title directive")
}

// ForEmptyRegion returns a hint for a ^code directive that extracted nothing.
// marker is the configured region marker prefix.
func ForEmptyRegion(marker, region, codePath string) string {
	return format("add " + marker + region + " start and end markers to " + codePath)
}

// ForLongLine returns a hint for code lines that overflow the printed page.
func ForLongLine(width int) string {
	return format("wrap the source line to fit " + strconv.Itoa(width) + " columns")
}

// ForConfigNotFound suggests --config or a file in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-bookfmt") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStylesheetCompiler returns a hint when the stylesheet compiler cannot run.
func ForStylesheetCompiler(compiler string) string {
	if _, err := LookPath(compiler); err != nil {
		return format("install " + compiler + " or set style.compiler; leave style.source empty to skip")
	}
	return ""
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// closest returns the candidate most similar to s, or "" if none is close.
func closest(s string, candidates []string) string {
	target := strings.Split(strings.ToLower(s), "")
	best, bestRatio := "", minSuggestRatio
	for _, c := range candidates {
		m := difflib.NewMatcher(target, strings.Split(strings.ToLower(c), ""))
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
