// Package pipeline implements the chapter markup conversion pipeline.
//
// The stages run in order for each chapter:
//   - Directive interpretation: ^title, ^section, ^code and ^outline lines,
//     heading anchors, and cosmetic substitutions over prose
//   - Code excerpt extraction from named //^ regions of a source file
//   - Aside marking so Markdown inside <aside> blocks is rendered
//   - Markdown to HTML conversion via Goldmark (definition lists, footnotes,
//     typographic quotes, chroma highlighting)
//   - Optional XML export cleanup for the print layout importer
//   - Page template substitution
//
// Every stage is a pure function of its input except code extraction,
// which reads one source file through the CodeLoader interface.
package pipeline
