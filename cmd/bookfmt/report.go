package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	bookfmt "github.com/alnah/go-bookfmt"
)

// reporter prints progress lines and the book summary.
type reporter struct {
	out     io.Writer
	errOut  io.Writer
	quiet   bool
	verbose bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// batchSummary is what a batch of results adds up to.
type batchSummary struct {
	Stats    bookfmt.Stats
	Built    int
	Failed   int
	Warnings int
	FirstErr error
}

func newReporter(env *Environment, f commonFlags) *reporter {
	r := &reporter{
		out:     env.Stdout,
		errOut:  env.Stderr,
		quiet:   f.quiet,
		verbose: f.verbose,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed, color.Bold),
	}
	if f.noColor {
		r.green.DisableColor()
		r.yellow.DisableColor()
		r.red.DisableColor()
	}
	return r
}

// results prints one line per built document and folds the results into a
// summary. Skipped documents print nothing. Warnings are always counted but
// only printed outside quiet mode.
func (r *reporter) results(results []buildResult) batchSummary {
	var sum batchSummary

	for _, res := range results {
		if res.Skipped {
			continue
		}
		if res.Err != nil {
			sum.Failed++
			if sum.FirstErr == nil {
				sum.FirstErr = res.Err
			}
			r.failure(res.Doc.SourcePath, res.Err)
			continue
		}

		sum.Built++
		class := sum.Stats.Add(res.Result)
		sum.Warnings += len(res.Result.Warnings)

		if r.quiet {
			continue
		}
		for _, w := range res.Result.Warnings {
			fmt.Fprintf(r.errOut, "%s %s\n", r.yellow.Sprint("warning:"), w)
		}
		r.chapter(res.Doc.Name, class, res.Result.Words, res.Duration)
	}

	return sum
}

// chapter prints a document's progress marker.
func (r *reporter) chapter(name string, class bookfmt.Classification, words int, d time.Duration) {
	var line string
	switch class {
	case bookfmt.ClassStub:
		line = "  " + name
	case bookfmt.ClassDraft:
		line = fmt.Sprintf("%s %s (%d words)", r.yellow.Sprint("-"), name, words)
	case bookfmt.ClassComplete:
		line = fmt.Sprintf("%s %s (%d words)", r.green.Sprint("✓"), name, words)
	default:
		line = fmt.Sprintf("%s %s (%d words)", r.green.Sprint("•"), name, words)
	}
	if r.verbose {
		line += fmt.Sprintf(" [%v]", d.Round(time.Millisecond))
	}
	fmt.Fprintln(r.out, line)
}

// stylesheet reports a compiled stylesheet.
func (r *reporter) stylesheet(output string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.green.Sprint("✓"), filepath.Base(output))
}

// failure reports an error for one input.
func (r *reporter) failure(path string, err error) {
	fmt.Fprintf(r.errOut, "%s %s: %v\n", r.red.Sprint("FAILED"), path, err)
}

// summary prints the book's estimated completion.
func (r *reporter) summary(s bookfmt.Stats) {
	if r.quiet {
		return
	}
	est, ok := s.Completion()
	if !ok {
		fmt.Fprintf(r.out, "%d words (completion unknown)\n", s.Words)
		return
	}
	fmt.Fprintf(r.out, "%d/~%d words (%d%%)\n", est.Words, est.Estimated, est.Percent)
}

// infof prints an informational line outside quiet mode.
func (r *reporter) infof(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}
