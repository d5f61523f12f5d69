package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bookfmt "github.com/alnah/go-bookfmt"
	"github.com/alnah/go-bookfmt/internal/fileutil"
	"github.com/alnah/go-bookfmt/internal/hints"
)

// ChapterConverter is the interface for the conversion library.
type ChapterConverter interface {
	Convert(ctx context.Context, input bookfmt.Input) (*bookfmt.Result, error)
}

// Compile-time interface implementation check.
var _ ChapterConverter = (*bookfmt.Converter)(nil)

// buildResult holds the outcome of a single document.
type buildResult struct {
	Doc      document
	Result   *bookfmt.Result
	Skipped  bool // output already newer than every input
	Err      error
	Duration time.Duration
}

// builder converts documents and writes their pages.
type builder struct {
	conv    ChapterConverter
	code    *bookfmt.DirCodeLoader
	workers int

	// templatePath is the page template file, empty for the embedded one.
	// Embedded assets never make an output stale.
	templatePath string
}

// buildAll processes docs concurrently. Results keep the order of docs.
func (b *builder) buildAll(ctx context.Context, docs []document, skipFresh bool) []buildResult {
	if len(docs) == 0 {
		return nil
	}

	concurrency := min(max(b.workers, 1), len(docs))

	results := make([]buildResult, len(docs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(docs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = buildResult{Doc: docs[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = b.buildOne(ctx, docs[idx], skipFresh)
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// isFresh reports whether doc's output is newer than its source, the
// template, and its code file.
func (b *builder) isFresh(doc document) bool {
	return fileutil.IsUpToDate(doc.OutputPath, doc.SourcePath, b.templatePath, b.code.Path(doc.Name))
}

// buildOne converts a single document and writes its page.
func (b *builder) buildOne(ctx context.Context, doc document, skipFresh bool) buildResult {
	start := time.Now()
	result := buildResult{Doc: doc}

	if skipFresh && b.isFresh(doc) {
		result.Skipped = true
		return result
	}

	source, err := os.ReadFile(doc.SourcePath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", bookfmt.ErrReadSource, err)
		result.Duration = time.Since(start)
		return result
	}
	modified, _ := fileutil.ModTime(doc.SourcePath)

	res, err := b.conv.Convert(ctx, bookfmt.Input{
		Name:     doc.Name,
		Source:   string(source),
		Modified: modified,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Result = res

	if err := os.MkdirAll(filepath.Dir(doc.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(doc.OutputPath, res.Output, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	result.Duration = time.Since(start)
	return result
}
