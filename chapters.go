package bookfmt

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bookfmt/internal/assets"
	"github.com/alnah/go-bookfmt/internal/hints"
	"github.com/alnah/go-bookfmt/internal/yamlutil"
)

// Chapter is one entry of the book order.
type Chapter struct {
	Title          string `yaml:"title"`
	LocalizedTitle string `yaml:"localizedTitle,omitempty"`
	Href           string `yaml:"href,omitempty"` // defaults to TitleToFile(Title) + ".html"
	Part           bool   `yaml:"part,omitempty"` // part divider, not numbered
}

// ChapterList is the fixed book order used for prev/next links and
// chapter citations. It is read-only after construction and safe for
// concurrent use.
type ChapterList struct {
	chapters []Chapter
	index    map[string]int // title and localized title to position
	numbers  map[string]int // href to citation number
}

type chapterListFile struct {
	Chapters []Chapter `yaml:"chapters"`
}

// NewChapterList builds a list from chapters in book order. Titles must be
// non-empty and unique across both title fields.
func NewChapterList(chapters []Chapter) (*ChapterList, error) {
	l := &ChapterList{
		chapters: make([]Chapter, len(chapters)),
		index:    make(map[string]int, 2*len(chapters)),
		numbers:  make(map[string]int, len(chapters)),
	}

	number := 0
	for i, ch := range chapters {
		if strings.TrimSpace(ch.Title) == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", ErrInvalidChapterList, i+1)
		}
		if ch.Href == "" {
			ch.Href = TitleToFile(ch.Title) + ".html"
		}

		for _, title := range []string{ch.Title, ch.LocalizedTitle} {
			if title == "" {
				continue
			}
			if prev, dup := l.index[title]; dup && prev != i {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateChapter, title)
			}
			l.index[title] = i
		}

		if !ch.Part {
			number++
			l.numbers[ch.Href] = number
		}
		l.chapters[i] = ch
	}

	return l, nil
}

// ParseChapterList parses a YAML chapter list:
//
//	chapters:
//	  - title: Game Loop
//	  - title: Sequencing Patterns
//	    part: true
func ParseChapterList(data []byte) (*ChapterList, error) {
	var f chapterListFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChapterList, err)
	}
	if len(f.Chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters", ErrInvalidChapterList)
	}
	return NewChapterList(f.Chapters)
}

// DefaultChapterList returns the built-in book order.
func DefaultChapterList() (*ChapterList, error) {
	data, err := assets.NewEmbeddedLoader().LoadChapterList(assets.DefaultChapterListName)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return ParseChapterList(data)
}

// Len returns the number of chapters.
func (l *ChapterList) Len() int {
	return len(l.chapters)
}

// Chapters returns a copy of the chapters in book order.
func (l *ChapterList) Chapters() []Chapter {
	return append([]Chapter(nil), l.chapters...)
}

// Titles returns the canonical titles in book order.
func (l *ChapterList) Titles() []string {
	titles := make([]string, len(l.chapters))
	for i, ch := range l.chapters {
		titles[i] = ch.Title
	}
	return titles
}

// Lookup finds a chapter by canonical or localized title.
func (l *ChapterList) Lookup(title string) (Chapter, int, bool) {
	i, ok := l.index[title]
	if !ok {
		return Chapter{}, -1, false
	}
	return l.chapters[i], i, true
}

// PrevNext returns the links to the chapters before and after title. The
// first chapter has no previous link and the last has no next link. A
// title missing from the list returns ErrUnknownChapter with a hint.
func (l *ChapterList) PrevNext(title string) (prev, next string, err error) {
	_, i, ok := l.Lookup(title)
	if !ok {
		return "", "", fmt.Errorf("%w: %q%s", ErrUnknownChapter, title, hints.ForUnknownChapter(title, l.Titles()))
	}

	if i > 0 {
		prev = `<span class="prev">&larr; <a href="` + l.chapters[i-1].Href + `">Previous Chapter</a></span>`
	}
	if i < len(l.chapters)-1 {
		next = `<span class="next"><a href="` + l.chapters[i+1].Href + `">Next Chapter</a> &rarr;</span>`
	}
	return prev, next, nil
}

// CitationNumber returns the 1-based table-of-contents number of the
// chapter at href. Part dividers are not numbered.
func (l *ChapterList) CitationNumber(href string) (int, bool) {
	n, ok := l.numbers[href]
	return n, ok
}

// titleToFile drops commas and hyphenates spaces.
var titleToFile = strings.NewReplacer(" ", "-", ",", "")

// TitleToFile converts a title like "Event Queue" to the base name of its
// file, "event-queue".
func TitleToFile(title string) string {
	return titleToFile.Replace(strings.ToLower(title))
}
