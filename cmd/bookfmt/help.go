package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookfmt [flags] [filter]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert book chapters to HTML pages (or XML with --xml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  filter    Only build chapters whose path contains this text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: html, or xml)")
	fmt.Fprintln(w, "      --xml                 Write XML for print layout")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --changed             Only rebuild chapters whose inputs changed")
	fmt.Fprintln(w, "      --strict              Exit with code 5 on authoring warnings")
	fmt.Fprintln(w, "      --watch               Rebuild changed chapters until interrupted")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --template <file>     Page template file")
	fmt.Fprintln(w, "      --chapters <file>     Chapter list YAML file")
	fmt.Fprintln(w, "      --code-dir <dir>      Code excerpt sources")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Console:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timings")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w, "      --print-config        Print the effective config and exit")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "      --completion <shell>  Print completion script: bash, zsh, fish")
	fmt.Fprintln(w, "                            eval \"$(bookfmt --completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BOOKFMT_CONFIG, BOOKFMT_INPUT_DIR, BOOKFMT_OUTPUT_DIR,")
	fmt.Fprintln(w, "  BOOKFMT_CODE_DIR, BOOKFMT_FORMAT, BOOKFMT_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage or config, 3 I/O, 5 warnings with --strict")
}
