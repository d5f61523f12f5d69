package assets

// Default asset names.
const (
	DefaultTemplateName    = "page"
	DefaultChapterListName = "default"
)

// AssetLoader defines the contract for loading page templates and chapter lists.
type AssetLoader interface {
	// LoadTemplate loads a page template by name for the given format
	// ("html" or "xml").
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name, format string) (string, error)

	// LoadChapterList loads the raw YAML of a chapter list by name.
	// Returns ErrChapterListNotFound if the list doesn't exist.
	LoadChapterList(name string) ([]byte, error)
}
