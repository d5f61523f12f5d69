package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// document is one chapter source and where its page is written.
type document struct {
	Name       string // base name without extension, e.g. "game-loop"
	SourcePath string
	OutputPath string
}

// discoverDocuments lists the chapter sources in inputDir whose extension
// is one of extensions and whose path contains filter. Subdirectories are
// not searched. The result is sorted by source path.
func discoverDocuments(inputDir string, extensions []string, filter, outputDir, outputExt string) ([]document, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocuments, err)
	}

	var docs []document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(extensions, ext) {
			continue
		}
		path := filepath.Join(inputDir, e.Name())
		if filter != "" && !strings.Contains(path, filter) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		docs = append(docs, document{
			Name:       name,
			SourcePath: path,
			OutputPath: filepath.Join(outputDir, name+"."+outputExt),
		})
	}

	slices.SortFunc(docs, func(a, b document) int {
		return strings.Compare(a.SourcePath, b.SourcePath)
	})
	return docs, nil
}
