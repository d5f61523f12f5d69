package pipeline

import (
	"context"
	"strings"
)

// Template placeholders. Each is replaced once per occurrence; values are
// inserted verbatim and never rescanned for other placeholders.
const (
	PlaceholderTitle         = "{{title}}"
	PlaceholderSectionHeader = "{{section_header}}"
	PlaceholderHeader        = "{{header}}"
	PlaceholderBody          = "{{body}}"
	PlaceholderPrev          = "{{prev}}"
	PlaceholderNext          = "{{next}}"
	PlaceholderNavigation    = "{{navigation}}"
	PlaceholderModified      = "{{modified}}"
)

// Page holds the values substituted into a page template. All fields are
// markup and are inserted without escaping.
type Page struct {
	Title         string // browser title, "Title &middot; Section" for chapters
	SectionHeader string // link to the chapter's part, empty for parts
	Header        string // chapter title with soft hyphens kept
	Body          string
	Prev          string
	Next          string
	Navigation    string
	Modified      string
}

// PageInjector defines the contract for filling a page template.
type PageInjector interface {
	InjectPage(ctx context.Context, tmpl string, page *Page) (string, error)
}

// PageInjection fills page templates by placeholder substitution.
type PageInjection struct{}

var _ PageInjector = (*PageInjection)(nil)

// InjectPage substitutes every placeholder in tmpl. If page is nil, tmpl
// is returned unchanged.
func (p *PageInjection) InjectPage(ctx context.Context, tmpl string, page *Page) (string, error) {
	if page == nil {
		return tmpl, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return RenderPage(tmpl, page), nil
}

// RenderPage substitutes page into tmpl in a single pass, so a body that
// happens to contain "{{next}}" is left alone.
func RenderPage(tmpl string, page *Page) string {
	r := strings.NewReplacer(
		PlaceholderTitle, page.Title,
		PlaceholderSectionHeader, page.SectionHeader,
		PlaceholderHeader, page.Header,
		PlaceholderBody, page.Body,
		PlaceholderPrev, page.Prev,
		PlaceholderNext, page.Next,
		PlaceholderNavigation, page.Navigation,
		PlaceholderModified, page.Modified,
	)
	return r.Replace(tmpl)
}

// SectionHref returns the file a part's landing page is written to.
func SectionHref(section string) string {
	return strings.ReplaceAll(strings.ToLower(section), " ", "-") + ".html"
}

// TitleWithSection returns the browser title for a chapter in section.
func TitleWithSection(title, section string) string {
	if section == "" {
		return title
	}
	return title + " &middot; " + section
}

// SectionHeader returns the link to the part a chapter belongs to.
func SectionHeader(section string) string {
	if section == "" {
		return ""
	}
	return `<span class="section"><a href="` + SectionHref(section) + `">` + section + `</a></span>`
}
