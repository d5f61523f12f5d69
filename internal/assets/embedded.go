package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*
var templates embed.FS

//go:embed chapters/*
var chapters embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate loads a page template from embedded assets.
func (e *EmbeddedLoader) LoadTemplate(name, format string) (string, error) {
	if err := validateTemplateRequest(name, format); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + "." + format)
	if err != nil {
		return "", fmt.Errorf("%w: %q (%s)", ErrTemplateNotFound, name, format)
	}

	return string(content), nil
}

// LoadChapterList loads a chapter list from embedded assets.
func (e *EmbeddedLoader) LoadChapterList(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := chapters.ReadFile("chapters/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrChapterListNotFound, name)
	}

	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
