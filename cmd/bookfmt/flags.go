package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds console and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// outputFlags holds output selection flags.
type outputFlags struct {
	dir     string
	xml     bool
	workers int
	changed bool // skip documents whose output is newer than every input
	strict  bool // authoring warnings fail the run
}

// assetFlags holds template and chapter list overrides.
type assetFlags struct {
	assetPath string
	template  string
	chapters  string
	codeDir   string
}

// cliFlags holds every flag of the bookfmt command.
type cliFlags struct {
	common      commonFlags
	output      outputFlags
	assets      assetFlags
	watch       bool
	printConfig bool
	version     bool
	completion  string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and warnings detail")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.BoolVar(&f.xml, "xml", false, "write XML for print layout instead of HTML")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.changed, "changed", false, "only rebuild documents whose inputs changed")
	fs.BoolVar(&f.strict, "strict", false, "exit with an error on authoring warnings")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.template, "template", "", "page template file")
	fs.StringVar(&f.chapters, "chapters", "", "chapter list YAML file")
	fs.StringVar(&f.codeDir, "code-dir", "", "directory of code excerpt sources")
}

// newFlagSet registers every flag of the command on a new FlagSet.
// Shared by parseFlags and completion generation.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("bookfmt", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.watch, "watch", false, "rebuild changed documents continuously")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.StringVar(&f.completion, "completion", "", "print a shell completion script: bash, zsh, fish")

	return fs
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
