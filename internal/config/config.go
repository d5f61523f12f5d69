// Package config loads and validates the YAML book configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-bookfmt/internal/dateutil"
	"github.com/alnah/go-bookfmt/internal/fileutil"
	"github.com/alnah/go-bookfmt/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Output formats.
const (
	FormatHTML = "html"
	FormatXML  = "xml"
)

// Defaults mirror the layout of the book repository: chapters in book/,
// excerpted sources in code/cpp/, generated pages in html/.
const (
	DefaultInputDir      = "book"
	DefaultOutputDir     = "html"
	DefaultCodeDir       = "code/cpp"
	DefaultCodeExtension = ".h"
	DefaultLanguage      = "cpp"
	DefaultMarker        = "//^"
	DefaultMaxLineWidth  = 64
	DefaultNavMaxLevel   = 2
	DefaultWatchInterval = "300ms"
	DefaultCompiler      = "sass"
)

// Limits for validated fields.
const (
	MaxPathLength     = 4096
	MaxLanguageLength = 30
	MaxMarkerLength   = 10
	MinNavLevel       = 2
	MaxNavLevel       = 6
	MinWatchInterval  = 50 * time.Millisecond
)

// Config holds all configuration for a book build.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Code       CodeConfig       `yaml:"code"`
	Template   TemplateConfig   `yaml:"template"`
	Chapters   ChaptersConfig   `yaml:"chapters"`
	Navigation NavigationConfig `yaml:"navigation"`
	Style      StyleConfig      `yaml:"style"`
	Watch      WatchConfig      `yaml:"watch"`
	Date       DateConfig       `yaml:"date"`
}

// InputConfig defines where chapter sources live.
type InputConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"` // e.g. [".markdown", ".md"]
}

// OutputConfig defines where generated pages go.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // empty = named after the format ("html" or "xml")
	Format string `yaml:"format"` // "html" or "xml"
}

// CodeConfig defines how ^code directives find and tag excerpts.
type CodeConfig struct {
	Dir          string `yaml:"dir"`
	Extension    string `yaml:"extension"`    // appended to the chapter base name
	Language     string `yaml:"language"`     // highlighter language tag
	Marker       string `yaml:"marker"`       // region marker prefix in source files
	MaxLineWidth int    `yaml:"maxLineWidth"` // warn above this many columns
}

// TemplateConfig selects the page template.
type TemplateConfig struct {
	Path string `yaml:"path"` // empty = embedded template for the format
}

// ChaptersConfig selects the chapter list.
type ChaptersConfig struct {
	Path string `yaml:"path"` // empty = embedded default list
}

// NavigationConfig controls the in-page table of contents.
type NavigationConfig struct {
	MaxLevel int `yaml:"maxLevel"` // deepest heading level listed (2-6)
}

// StyleConfig defines the stylesheet compilation step.
type StyleConfig struct {
	Source   string `yaml:"source"`   // e.g. asset/style.scss; empty = skip
	Output   string `yaml:"output"`   // e.g. html/style.css
	Compiler string `yaml:"compiler"` // executable invoked as: compiler source output
}

// WatchConfig controls the polling rebuild loop.
type WatchConfig struct {
	Interval string `yaml:"interval"` // Go duration, e.g. "300ms"
}

// DateConfig controls the {{modified}} placeholder.
type DateConfig struct {
	Format string `yaml:"format"` // token format or preset (iso, european, us, long)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Dir: DefaultInputDir, Extensions: []string{".markdown", ".md"}},
		Output: OutputConfig{Format: FormatHTML},
		Code: CodeConfig{
			Dir:          DefaultCodeDir,
			Extension:    DefaultCodeExtension,
			Language:     DefaultLanguage,
			Marker:       DefaultMarker,
			MaxLineWidth: DefaultMaxLineWidth,
		},
		Navigation: NavigationConfig{MaxLevel: DefaultNavMaxLevel},
		Style:      StyleConfig{Compiler: DefaultCompiler},
		Watch:      WatchConfig{Interval: DefaultWatchInterval},
		Date:       DateConfig{Format: dateutil.DefaultDateFormat},
	}
}

// OutputDir returns the configured output directory, defaulting to the
// format name so HTML and XML builds never overwrite each other.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	if c.Output.Format == "" {
		return DefaultOutputDir
	}
	return c.Output.Format
}

// WatchInterval parses the polling interval.
func (c *Config) WatchInterval() (time.Duration, error) {
	interval := c.Watch.Interval
	if interval == "" {
		interval = DefaultWatchInterval
	}
	d, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.interval: %v", ErrInvalidValue, err)
	}
	if d < MinWatchInterval {
		return 0, fmt.Errorf("%w: watch.interval: %s is below minimum %s", ErrInvalidValue, d, MinWatchInterval)
	}
	return d, nil
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, and by the CLI after merging flags.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"code.dir", c.Code.Dir, MaxPathLength},
		{"code.language", c.Code.Language, MaxLanguageLength},
		{"code.marker", c.Code.Marker, MaxMarkerLength},
		{"template.path", c.Template.Path, MaxPathLength},
		{"chapters.path", c.Chapters.Path, MaxPathLength},
		{"style.source", c.Style.Source, MaxPathLength},
		{"style.output", c.Style.Output, MaxPathLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Output.Format) {
	case "", FormatHTML, FormatXML:
	default:
		return fmt.Errorf("%w: output.format %q (must be html or xml)", ErrInvalidValue, c.Output.Format)
	}

	for i, ext := range c.Input.Extensions {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: input.extensions[%d]: %v", ErrInvalidValue, i, err)
		}
	}
	if c.Code.Extension != "" {
		if err := fileutil.ValidateExtension(c.Code.Extension); err != nil {
			return fmt.Errorf("%w: code.extension: %v", ErrInvalidValue, err)
		}
	}
	if strings.TrimSpace(c.Code.Marker) != c.Code.Marker {
		return fmt.Errorf("%w: code.marker %q must not contain surrounding whitespace", ErrInvalidValue, c.Code.Marker)
	}
	if c.Code.MaxLineWidth < 0 {
		return fmt.Errorf("%w: code.maxLineWidth must be >= 0 (0 disables), got %d", ErrInvalidValue, c.Code.MaxLineWidth)
	}

	if c.Navigation.MaxLevel != 0 && (c.Navigation.MaxLevel < MinNavLevel || c.Navigation.MaxLevel > MaxNavLevel) {
		return fmt.Errorf("%w: navigation.maxLevel must be between %d and %d, got %d",
			ErrInvalidValue, MinNavLevel, MaxNavLevel, c.Navigation.MaxLevel)
	}

	if c.Style.Source != "" && c.Style.Output == "" {
		return fmt.Errorf("%w: style.output is required when style.source is set", ErrInvalidValue)
	}

	if _, err := c.WatchInterval(); err != nil {
		return err
	}

	if c.Date.Format != "" {
		if _, err := dateutil.Compile(c.Date.Format); err != nil {
			return fmt.Errorf("%w: date.format: %v", ErrInvalidValue, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-bookfmt", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
