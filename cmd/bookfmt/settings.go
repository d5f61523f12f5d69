package main

import (
	"errors"
	"fmt"
	"os"

	bookfmt "github.com/alnah/go-bookfmt"
	"github.com/alnah/go-bookfmt/internal/config"
	"github.com/alnah/go-bookfmt/internal/fileutil"
	"github.com/alnah/go-bookfmt/internal/hints"
)

// settings is the effective configuration of one run.
type settings struct {
	cfg       *config.Config
	workers   int
	assetPath string
}

// loadSettings layers defaults, the config file, environment variables and
// flags, in increasing priority, then validates the result.
func loadSettings(flags *cliFlags, env *Environment) (*settings, error) {
	if err := validateWorkers(flags.output.workers); err != nil {
		return nil, err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), env.Stderr)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := flags.output.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	return &settings{
		cfg:       cfg,
		workers:   bookfmt.ResolvePoolSize(min(workers, bookfmt.MaxPoolSize)),
		assetPath: flags.assets.assetPath,
	}, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.output.dir != "" {
		cfg.Output.Dir = flags.output.dir
	}
	if flags.output.xml {
		cfg.Output.Format = config.FormatXML
	}
	if flags.assets.template != "" {
		cfg.Template.Path = flags.assets.template
	}
	if flags.assets.chapters != "" {
		cfg.Chapters.Path = flags.assets.chapters
	}
	if flags.assets.codeDir != "" {
		cfg.Code.Dir = flags.assets.codeDir
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > bookfmt.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, bookfmt.MaxPoolSize)
	}
	return nil
}

// format returns the configured output format.
func (s *settings) format() bookfmt.Format {
	if s.cfg.Output.Format == "" {
		return bookfmt.FormatHTML
	}
	return bookfmt.Format(s.cfg.Output.Format)
}

// converterOptions translates the config into Converter options.
func (s *settings) converterOptions() ([]bookfmt.Option, error) {
	cfg := s.cfg
	opts := []bookfmt.Option{
		bookfmt.WithFormat(s.format()),
		bookfmt.WithCodeLoader(s.codeLoader()),
		bookfmt.WithLanguage(cfg.Code.Language),
		bookfmt.WithMarker(cfg.Code.Marker),
		bookfmt.WithMaxLineWidth(cfg.Code.MaxLineWidth),
		bookfmt.WithDateFormat(cfg.Date.Format),
	}
	if cfg.Navigation.MaxLevel != 0 {
		opts = append(opts, bookfmt.WithNavigationLevel(cfg.Navigation.MaxLevel))
	}
	if s.assetPath != "" {
		opts = append(opts, bookfmt.WithAssetPath(s.assetPath))
	}

	if cfg.Template.Path != "" {
		tmpl, err := os.ReadFile(cfg.Template.Path) // #nosec G304 -- user-provided template
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bookfmt.ErrTemplateNotFound, err)
		}
		opts = append(opts, bookfmt.WithTemplate(string(tmpl)))
	}

	if cfg.Chapters.Path != "" {
		data, err := os.ReadFile(cfg.Chapters.Path) // #nosec G304 -- user-provided chapter list
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bookfmt.ErrChapterListNotFound, err)
		}
		list, err := bookfmt.ParseChapterList(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Chapters.Path, err)
		}
		opts = append(opts, bookfmt.WithChapterList(list))
	}

	return opts, nil
}

// codeLoader returns the loader the converter reads excerpts with, so
// freshness checks see the same code paths.
func (s *settings) codeLoader() *bookfmt.DirCodeLoader {
	return &bookfmt.DirCodeLoader{Dir: s.cfg.Code.Dir, Extension: s.cfg.Code.Extension}
}
