package bookfmt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-bookfmt/internal/pipeline"
)

// Code file defaults.
const (
	DefaultCodeDir       = "code/cpp"
	DefaultCodeExtension = ".h"
)

// CodeLoader supplies the source file a chapter's ^code directives excerpt.
type CodeLoader = pipeline.CodeLoader

// DirCodeLoader reads "<Dir>/<chapter name><Extension>".
type DirCodeLoader struct {
	Dir       string
	Extension string
}

var _ CodeLoader = (*DirCodeLoader)(nil)

// Path returns the code file for the named chapter.
func (d *DirCodeLoader) Path(name string) string {
	return filepath.Join(d.Dir, name+d.Extension)
}

// LoadCode reads the chapter's code file and splits it into lines.
// Returns ErrReadCode if the file cannot be read.
func (d *DirCodeLoader) LoadCode(ctx context.Context, name string) ([]string, string, error) {
	path := d.Path(name)
	if err := ctx.Err(); err != nil {
		return nil, path, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path built from configured dir
	if err != nil {
		return nil, path, fmt.Errorf("%w: %v", ErrReadCode, err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, path, nil
	}
	return strings.Split(text, "\n"), path, nil
}
