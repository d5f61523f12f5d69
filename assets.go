package bookfmt

import (
	"errors"

	"github.com/alnah/go-bookfmt/internal/assets"
)

// Asset name constants for the built-in template and chapter list.
const (
	// DefaultTemplate is the name of the built-in page template.
	DefaultTemplate = assets.DefaultTemplateName

	// DefaultChapterListName is the name of the built-in chapter list.
	DefaultChapterListName = assets.DefaultChapterListName
)

// AssetLoader defines the contract for loading page templates and chapter
// lists. Implementations may load from the filesystem, embedded assets, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults.
type AssetLoader interface {
	// LoadTemplate loads a page template by name for format.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string, format Format) (string, error)

	// LoadChapterList loads the raw YAML of a chapter list by name.
	// Returns ErrChapterListNotFound if the list doesn't exist.
	LoadChapterList(name string) ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - templates/{name}.html and templates/{name}.xml for page templates
//   - chapters/{name}.yaml for chapter lists
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps internal AssetResolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplate(name string, format Format) (string, error) {
	content, err := a.resolver.LoadTemplate(name, string(format))
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadChapterList(name string) ([]byte, error) {
	data, err := a.resolver.LoadChapterList(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrChapterListNotFound):
		return wrapError(ErrChapterListNotFound, err)
	case errors.Is(err, assets.ErrInvalidFormat):
		return wrapError(ErrInvalidFormat, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
