package pipeline

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lineSeparator keeps a code block one XML paragraph while preserving its
// visual line breaks.
const lineSeparator = "&#x2028;"

// preBoundary splits rendered markup into code and regular spans.
var preBoundary = regexp.MustCompile(`(?i)<pre\b[^>]*>|</pre>`)

// Highlighter span classes reduced to bare text in exported code.
var strippedCodeClasses = map[string]bool{
	"k": true, "kc": true, "kd": true, "kn": true, "kr": true, "kt": true,
	"m": true, "mi": true, "mf": true, "mh": true,
	"n": true, "nb": true, "nc": true, "nf": true, "nl": true, "nn": true, "nv": true,
	"o": true, "p": true, "w": true,
	"s": true, "s1": true, "s2": true, "sc": true,
	"cp": true, "cpf": true,
	"line": true, "cl": true,
}

// Highlighter span classes exported as <comment>.
var commentCodeClasses = map[string]bool{
	"c": true, "c1": true, "ch": true, "cm": true, "cn": true, "cs": true,
}

// Closing tags followed by a newline in exported markup.
var blockBreaks = strings.NewReplacer(
	"</p>", "</p>\n",
	"</h1>", "</h1>\n",
	"</h2>", "</h2>\n",
	"</h3>", "</h3>\n",
	"</h4>", "</h4>\n",
	"</li>", "</li>\n",
	"</ol>", "</ol>\n",
	"</ul>", "</ul>\n",
	"</aside>", "</aside>\n",
	"</blockquote>", "</blockquote>\n",
)

var spaceRun = regexp.MustCompile(` {2,}`)

// Citer numbers links to chapters. It reports false for hrefs that are
// not chapters.
type Citer interface {
	CitationNumber(href string) (int, bool)
}

// XMLExporter rewrites rendered XHTML for a page-layout XML importer.
type XMLExporter struct {
	Citations Citer
}

// Export splits markup at <pre> boundaries and cleans code and regular
// spans with their own rules. Neither rule set sees the other's spans.
func (x *XMLExporter) Export(markup string) string {
	var out strings.Builder
	inCode := false
	afterPre := false
	last := 0

	flush := func(chunk string) {
		if inCode {
			out.WriteString(x.exportCode(chunk))
			return
		}
		cleaned := x.exportMarkup(chunk)
		if afterPre {
			cleaned = strings.TrimLeft(cleaned, " ")
		}
		out.WriteString(cleaned)
	}

	for _, loc := range preBoundary.FindAllStringIndex(markup, -1) {
		flush(markup[last:loc[0]])
		tag := markup[loc[0]:loc[1]]
		closing := strings.HasPrefix(tag, "</")
		out.WriteString(tag)
		if closing {
			out.WriteString("\n")
		}
		inCode = !closing
		afterPre = closing
		last = loc[1]
	}
	flush(markup[last:])

	return strings.TrimRight(out.String(), " ")
}

type spanAction int

const (
	spanKeep spanAction = iota
	spanDrop
	spanComment
)

// openSpan is a span awaiting its end tag. mark is the output length
// before the span's opening was written.
type openSpan struct {
	action spanAction
	mark   int
}

// exportCode drops highlighter wrappers, maps comment wrappers to
// <comment>, and turns every newline but the last into a line separator.
// A comment wrapper with no text is dropped entirely.
func (x *XMLExporter) exportCode(code string) string {
	var (
		out   bytes.Buffer
		stack []openSpan
		z     = html.NewTokenizer(strings.NewReader(code))
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// Malformed tail: keep it as is.
				out.Write(z.Raw())
			}
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.Span {
				out.WriteString(raw)
				continue
			}
			action := spanKeep
			if hasAttr {
				action = classifySpan(spanClass(z))
			}
			stack = append(stack, openSpan{action: action, mark: out.Len()})
			switch action {
			case spanKeep:
				out.WriteString(raw)
			case spanComment:
				out.WriteString("<comment>")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != atom.Span || len(stack) == 0 {
				out.WriteString(raw)
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch open.action {
			case spanKeep:
				out.WriteString(raw)
			case spanComment:
				if out.Len() == open.mark+len("<comment>") {
					out.Truncate(open.mark)
					continue
				}
				out.WriteString("</comment>")
			}
		default:
			out.WriteString(raw)
		}
	}

	result := out.String()
	i := strings.LastIndex(result, "\n")
	if i < 0 {
		return result
	}
	return strings.ReplaceAll(result[:i], "\n", lineSeparator) + result[i:]
}

func spanClass(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

func classifySpan(class string) spanAction {
	switch {
	case commentCodeClasses[class]:
		return spanComment
	case strippedCodeClasses[class]:
		return spanDrop
	default:
		return spanKeep
	}
}

// exportMarkup replaces links with their text plus a citation for chapter
// links, collapses whitespace, then re-adds newlines after block tags.
func (x *XMLExporter) exportMarkup(markup string) string {
	var (
		out  strings.Builder
		link strings.Builder
		href string
		in   int // <a> nesting depth
		z    = html.NewTokenizer(strings.NewReader(markup))
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				out.Write(z.Raw())
			}
			break
		}
		raw := z.Raw()
		name, hasAttr := z.TagName()
		isAnchor := atom.Lookup(name) == atom.A

		switch {
		case tt == html.StartTagToken && isAnchor:
			if in == 0 {
				link.Reset()
				href = ""
				if hasAttr {
					href = attrValue(z, "href")
				}
			}
			in++
		case tt == html.EndTagToken && isAnchor && in > 0:
			in--
			if in == 0 {
				out.WriteString(link.String())
				out.WriteString(x.citation(href))
			}
		case in > 0:
			link.Write(raw)
		default:
			out.Write(raw)
		}
	}
	if in > 0 {
		// Unclosed link: keep its text.
		out.WriteString(link.String())
	}

	s := strings.ReplaceAll(out.String(), "\n", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "> <", "><")
	s = blockBreaks.Replace(s)
	return strings.ReplaceAll(s, "\n ", "\n")
}

func (x *XMLExporter) citation(href string) string {
	if x.Citations == nil || href == "" {
		return ""
	}
	n, ok := x.Citations.CitationNumber(chapterHref(href))
	if !ok {
		return ""
	}
	return "<citation>(" + strconv.Itoa(n) + ")</citation>"
}

func attrValue(z *html.Tokenizer, want string) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == want {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

// chapterHref reduces a link target to the file it points at: in-page
// fragments and query strings are dropped, external URLs are kept whole
// so they never match a chapter.
func chapterHref(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return href
	}
	return u.Path
}
