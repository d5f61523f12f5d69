// Package assets provides page templates and chapter lists for book builds.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader only when the asset is not found, so a book can override
// its page template while keeping the default chapter list.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   ├── {name}.html          # HTML page template
//	│   └── {name}.xml           # XML export template
//	└── chapters/
//	    └── {name}.yaml          # ordered chapter list
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
