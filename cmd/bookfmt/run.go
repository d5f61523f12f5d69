package main

import (
	"context"
	"errors"
	"fmt"

	bookfmt "github.com/alnah/go-bookfmt"
	"github.com/alnah/go-bookfmt/internal/yamlutil"
)

// run executes one invocation: a batch build, or a watch loop with --watch.
func run(ctx context.Context, flags *cliFlags, args []string, env *Environment) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one filter, got %d arguments", ErrUsage, len(args))
	}
	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	s, err := loadSettings(flags, env)
	if err != nil {
		return err
	}

	if flags.printConfig {
		data, err := yamlutil.Marshal(s.cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	opts, err := s.converterOptions()
	if err != nil {
		return err
	}
	conv, err := bookfmt.NewConverter(opts...)
	if err != nil {
		return err
	}

	b := &builder{
		conv:         conv,
		code:         s.codeLoader(),
		workers:      s.workers,
		templatePath: s.cfg.Template.Path,
	}
	rep := newReporter(env, flags.common)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", s.workers)
	}

	if flags.watch {
		return watch(ctx, s, b, rep, filter, env)
	}
	return buildOnce(ctx, s, b, rep, filter, flags.output.changed, flags.output.strict)
}

// discover lists the documents selected by filter.
func (s *settings) discover(filter string) ([]document, error) {
	docs, err := discoverDocuments(s.cfg.Input.Dir, s.cfg.Input.Extensions, filter,
		s.cfg.OutputDir(), string(s.format()))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		if filter != "" {
			return nil, fmt.Errorf("%w in %s matching %q", ErrNoDocuments, s.cfg.Input.Dir, filter)
		}
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, s.cfg.Input.Dir)
	}
	return docs, nil
}

// buildOnce converts every selected document, compiles the stylesheet, and
// prints the book summary.
func buildOnce(ctx context.Context, s *settings, b *builder, rep *reporter, filter string, changed, strict bool) error {
	docs, err := s.discover(filter)
	if err != nil {
		return err
	}

	sum := rep.results(b.buildAll(ctx, docs, changed))

	compiled, styleErr := compileStylesheet(ctx, s.cfg.Style)
	if styleErr != nil && !errors.Is(styleErr, context.Canceled) {
		rep.failure(s.cfg.Style.Source, styleErr)
	}
	if compiled {
		rep.stylesheet(s.cfg.Style.Output)
	}

	if sum.Built > 0 {
		rep.summary(sum.Stats)
	} else if sum.Failed == 0 {
		rep.infof("all %d chapters up to date", len(docs))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d chapters failed: %w", sum.Failed, len(docs), sum.FirstErr)
	}
	if styleErr != nil {
		return styleErr
	}
	if strict && sum.Warnings > 0 {
		return fmt.Errorf("%w: %d", ErrAuthoringWarnings, sum.Warnings)
	}
	return nil
}

// watch rebuilds changed documents and the stylesheet on every tick until
// ctx is canceled. Failures are reported and the loop keeps going.
func watch(ctx context.Context, s *settings, b *builder, rep *reporter, filter string, env *Environment) error {
	interval, err := s.cfg.WatchInterval()
	if err != nil {
		return err
	}
	rep.infof("watching %s every %s (Ctrl+C to stop)", s.cfg.Input.Dir, interval)

	seen := make(failureLog)
	for {
		docs, err := s.discover(filter)
		if err != nil {
			if seen.changed(s.cfg.Input.Dir, err) {
				rep.failure(s.cfg.Input.Dir, err)
			}
		} else {
			seen.changed(s.cfg.Input.Dir, nil)
			results := b.buildAll(ctx, docs, true)
			for i, res := range results {
				if res.Skipped {
					continue
				}
				if !seen.changed(res.Doc.SourcePath, res.Err) && res.Err != nil {
					results[i].Skipped = true // already reported
				}
			}
			rep.results(results)
		}

		compiled, err := compileStylesheet(ctx, s.cfg.Style)
		if ctx.Err() == nil && seen.changed(s.cfg.Style.Source, err) && err != nil {
			rep.failure(s.cfg.Style.Source, err)
		}
		if compiled {
			rep.stylesheet(s.cfg.Style.Output)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-env.After(interval):
		}
	}
}

// failureLog remembers the last error per path so a watch loop reports a
// persistent failure once instead of on every tick.
type failureLog map[string]string

// changed records err for path and reports whether it differs from the
// previous record. A nil err clears the record.
func (l failureLog) changed(path string, err error) bool {
	if err == nil {
		_, had := l[path]
		delete(l, path)
		return had
	}
	msg := err.Error()
	if l[path] == msg {
		return false
	}
	l[path] = msg
	return true
}
