package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-bookfmt/internal/config"
	"github.com/alnah/go-bookfmt/internal/fileutil"
	"github.com/alnah/go-bookfmt/internal/hints"
	"github.com/alnah/go-bookfmt/internal/process"
)

// compileStylesheet runs "compiler source output" when the source is newer
// than the output. It reports whether the compiler ran. An empty source
// disables the step.
func compileStylesheet(ctx context.Context, style config.StyleConfig) (bool, error) {
	if style.Source == "" {
		return false, nil
	}
	if !fileutil.FileExists(style.Source) {
		return false, fmt.Errorf("%w: %s: %v", ErrStylesheet, style.Source, os.ErrNotExist)
	}
	if fileutil.IsUpToDate(style.Output, style.Source) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(style.Output), dirPermissions); err != nil {
		return false, fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	compiler := style.Compiler
	if compiler == "" {
		compiler = config.DefaultCompiler
	}

	if _, err := process.Run(ctx, compiler, style.Source, style.Output); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("%w: %v%s", ErrStylesheet, err, hints.ForStylesheetCompiler(compiler))
	}
	return true, nil
}
