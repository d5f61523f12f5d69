package bookfmt

import (
	"fmt"

	"github.com/alnah/go-bookfmt/internal/pipeline"
)

// Navigation depth bounds.
const (
	MinNavigationLevel     = 2
	MaxNavigationLevel     = 6
	DefaultNavigationLevel = 2
)

// DefaultMaxLineWidth is the widest code line that fits the printed page.
const DefaultMaxLineWidth = 64

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	format       Format
	assetPath    string
	template     string // page template content, overrides the asset loader
	codeDir      string
	codeExt      string
	language     string
	marker       string
	maxLineWidth int
	navMaxLevel  int
	dateFormat   string
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		format:       FormatHTML,
		codeDir:      DefaultCodeDir,
		codeExt:      DefaultCodeExtension,
		language:     pipeline.DefaultLanguage,
		marker:       pipeline.DefaultMarker,
		maxLineWidth: DefaultMaxLineWidth,
		navMaxLevel:  DefaultNavigationLevel,
	}
}

// WithFormat selects HTML or XML output. Invalid formats are reported by
// NewConverter.
func WithFormat(f Format) Option {
	return func(c *Converter) {
		c.cfg.format = f
	}
}

// WithAssetPath loads templates and chapter lists from dir, falling back to
// the embedded defaults.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithTemplate sets the page template content directly.
func WithTemplate(content string) Option {
	return func(c *Converter) {
		c.cfg.template = content
	}
}

// WithChapterList sets the book order. The embedded list is used otherwise.
func WithChapterList(l *ChapterList) Option {
	return func(c *Converter) {
		c.chapters = l
	}
}

// WithCodeLoader sets where ^code directives read source files from.
func WithCodeLoader(l CodeLoader) Option {
	return func(c *Converter) {
		c.codeLoader = l
	}
}

// WithCodeDir reads code from "<dir>/<chapter name><ext>".
func WithCodeDir(dir, ext string) Option {
	return func(c *Converter) {
		c.cfg.codeDir = dir
		c.cfg.codeExt = ext
	}
}

// WithLanguage sets the highlighter language tag for code excerpts.
func WithLanguage(lang string) Option {
	return func(c *Converter) {
		c.cfg.language = lang
	}
}

// WithMarker sets the code region marker prefix.
func WithMarker(marker string) Option {
	return func(c *Converter) {
		c.cfg.marker = marker
	}
}

// WithMaxLineWidth sets the widest code line before a warning. Zero
// disables the check. Panics if n is negative.
func WithMaxLineWidth(n int) Option {
	if n < 0 {
		panic("bookfmt: WithMaxLineWidth must not be negative")
	}
	return func(c *Converter) {
		c.cfg.maxLineWidth = n
	}
}

// WithNavigationLevel sets the deepest heading level listed in the
// navigation. Panics outside MinNavigationLevel..MaxNavigationLevel.
func WithNavigationLevel(level int) Option {
	if level < MinNavigationLevel || level > MaxNavigationLevel {
		panic(fmt.Sprintf("bookfmt: WithNavigationLevel %d outside %d..%d",
			level, MinNavigationLevel, MaxNavigationLevel))
	}
	return func(c *Converter) {
		c.cfg.navMaxLevel = level
	}
}

// WithDateFormat sets the format of the {{modified}} placeholder, either a
// preset name or a token pattern like "MMMM D, YYYY".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}
