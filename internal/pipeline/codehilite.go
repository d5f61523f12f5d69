package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// codeHilite turns indented code blocks whose first line is a ":::lang"
// tag into fenced blocks with that info string, so the highlighting
// extension picks them up. Untagged indented blocks are left alone.
type codeHilite struct{}

var _ parser.ASTTransformer = codeHilite{}

func (codeHilite) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var blocks []*ast.CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if cb, ok := n.(*ast.CodeBlock); ok {
			blocks = append(blocks, cb)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	// Replace after the walk; swapping nodes mid-walk breaks sibling links.
	for _, cb := range blocks {
		if fenced := tagToFence(cb, source); fenced != nil {
			cb.Parent().ReplaceChild(cb.Parent(), cb, fenced)
		}
	}
}

func tagToFence(cb *ast.CodeBlock, source []byte) *ast.FencedCodeBlock {
	lines := cb.Lines()
	if lines.Len() == 0 {
		return nil
	}

	// List items keep columns beyond the code indent on every line, so
	// the tag may be preceded by blanks that the body shares.
	first := lines.At(0)
	lead := leadingBlank(first, source)
	first = trimBlank(first, source, lead)
	raw := source[first.Start:first.Stop]
	if !bytes.HasPrefix(raw, []byte(languagePrefix)) {
		return nil
	}

	start := first.Start + len(languagePrefix)
	lang := bytes.TrimRight(source[start:first.Stop], " \t\r\n")
	if len(lang) == 0 || bytes.ContainsAny(lang, " \t") {
		return nil
	}

	info := ast.NewTextSegment(text.NewSegment(start, start+len(lang)))
	fenced := ast.NewFencedCodeBlock(info)
	fenced.SetBlankPreviousLines(cb.HasBlankPreviousLines())

	body := text.NewSegments()
	for i := 1; i < lines.Len(); i++ {
		body.Append(trimBlank(lines.At(i), source, lead))
	}
	fenced.SetLines(body)

	return fenced
}

// leadingBlank counts the spaces and tabs opening seg, padding included.
func leadingBlank(seg text.Segment, source []byte) int {
	n := seg.Padding
	for i := seg.Start; i < seg.Stop && isBlank(source[i]); i++ {
		n++
	}
	return n
}

// trimBlank drops up to n leading spaces or tabs from seg, padding first.
func trimBlank(seg text.Segment, source []byte, n int) text.Segment {
	p := min(seg.Padding, n)
	seg.Padding -= p
	n -= p
	for ; n > 0 && seg.Start < seg.Stop && isBlank(source[seg.Start]); n-- {
		seg.Start++
	}
	return seg
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
