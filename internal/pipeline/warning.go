package pipeline

import "fmt"

// WarningKind classifies authoring problems. None of them stop a build.
type WarningKind int

const (
	WarnUnknownDirective WarningKind = iota + 1
	WarnUnknownChapter
	WarnEmptyRegion
	WarnLongLine
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnknownDirective:
		return "unknown directive"
	case WarnUnknownChapter:
		return "unknown chapter"
	case WarnEmptyRegion:
		return "empty code region"
	case WarnLongLine:
		return "long code line"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning is an authoring diagnostic attached to a chapter.
type Warning struct {
	Kind    WarningKind
	Line    int // 1-based source line, 0 when not tied to one
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
