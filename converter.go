package bookfmt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-bookfmt/internal/assets"
	"github.com/alnah/go-bookfmt/internal/dateutil"
	"github.com/alnah/go-bookfmt/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.BookPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.PageInjector         = (*pipeline.PageInjection)(nil)
	_ pipeline.Citer                = (*ChapterList)(nil)
)

// Converter orchestrates the chapter conversion pipeline.
// Create with NewConverter() and use Convert() for each chapter. A
// Converter holds no per-chapter state and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	chapters          *ChapterList
	codeLoader        CodeLoader
	template          string
	dateLayout        dateutil.Layout
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	pageInjector      pipeline.PageInjector
	exporter          *pipeline.XMLExporter
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadTemplate(name, format string) (string, error) {
	return a.pub.LoadTemplate(name, Format(format))
}

func (a *publicToInternalAdapter) LoadChapterList(name string) ([]byte, error) {
	return a.pub.LoadChapterList(name)
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithFormat, WithCodeDir,
// WithChapterList). Returns error if asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConverterConfig(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.BookPreprocessor{},
		pageInjector: &pipeline.PageInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.format.Validate(); err != nil {
		return nil, err
	}
	layout, err := dateutil.Compile(c.cfg.dateFormat)
	if err != nil {
		return nil, err
	}
	c.dateLayout = layout

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}
	if err := c.resolveChapterList(); err != nil {
		return nil, err
	}

	if c.codeLoader == nil {
		c.codeLoader = &DirCodeLoader{Dir: c.cfg.codeDir, Extension: c.cfg.codeExt}
	}

	if c.cfg.format == FormatXML {
		c.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.WithXHTML())
		c.exporter = &pipeline.XMLExporter{Citations: c.chapters}
	} else {
		c.htmlConverter = pipeline.NewGoldmarkConverter()
	}

	return c, nil
}

// Format returns the output format.
func (c *Converter) Format() Format {
	return c.cfg.format
}

// Chapters returns the book order in use.
func (c *Converter) Chapters() *ChapterList {
	return c.chapters
}

// Template returns the page template in use.
func (c *Converter) Template() string {
	return c.template
}

// Convert runs the full pipeline on one chapter. Authoring problems are
// reported in Result.Warnings; only I/O failures and cancellation return
// an error. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Name == "" {
		return nil, ErrEmptyName
	}

	interp := &pipeline.Interpreter{
		Code: c.codeLoader,
		Extractor: &pipeline.RegionExtractor{
			Marker:       c.cfg.marker,
			Language:     c.cfg.language,
			MaxLineWidth: c.cfg.maxLineWidth,
		},
		NavMaxLevel:   c.cfg.navMaxLevel,
		PlainHeadings: c.cfg.format == FormatXML,
	}

	ann, err := interp.Interpret(ctx, input.Name, pipeline.SplitLines(input.Source))
	if err != nil {
		return nil, fmt.Errorf("interpreting %s: %w", input.Name, err)
	}

	res := &Result{
		Title:      ann.Title,
		Section:    ann.Section,
		Outline:    ann.Outline,
		Navigation: ann.Navigation,
		Words:      len(strings.Fields(ann.Content)),
	}
	for _, w := range ann.Warnings {
		res.Warnings = append(res.Warnings, Warning{Kind: w.Kind, Document: input.Name, Line: w.Line, Message: w.Message})
	}

	prev, next, err := c.chapters.PrevNext(ann.Title)
	if err != nil {
		if !errors.Is(err, ErrUnknownChapter) {
			return nil, err
		}
		res.Warnings = append(res.Warnings, Warning{Kind: WarnUnknownChapter, Document: input.Name, Message: err.Error()})
	}

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, ann.Content)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to HTML
	body, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	body = pipeline.UnmarkAsides(body)

	page := &pipeline.Page{
		Title:         pipeline.TitleWithSection(ann.Title, ann.Section),
		SectionHeader: pipeline.SectionHeader(ann.Section),
		Header:        ann.TitleHTML,
		Body:          body,
		Prev:          prev,
		Next:          next,
		Navigation:    pipeline.RenderNavigation(ann.Navigation),
		Modified:      c.formatModified(input),
	}
	out, err := c.pageInjector.InjectPage(ctx, c.template, page)
	if err != nil {
		return nil, fmt.Errorf("filling template: %w", err)
	}

	if c.exporter != nil {
		out = c.exporter.Export(out)
	}

	res.Output = []byte(out)
	return res, nil
}

func (c *Converter) formatModified(input Input) string {
	if input.Modified.IsZero() {
		return ""
	}
	return c.dateLayout.Format(input.Modified)
}

// resolveTemplate loads the page template unless WithTemplate provided one.
func (c *Converter) resolveTemplate() error {
	if c.cfg.template != "" {
		c.template = c.cfg.template
		return nil
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName, string(c.cfg.format))
	if err != nil {
		return fmt.Errorf("loading %s template: %w", c.cfg.format, convertAssetError(err))
	}
	c.template = tmpl
	return nil
}

// resolveChapterList loads the default chapter list unless WithChapterList
// provided one.
func (c *Converter) resolveChapterList() error {
	if c.chapters != nil {
		return nil
	}

	data, err := c.assetLoader.LoadChapterList(assets.DefaultChapterListName)
	if err != nil {
		return fmt.Errorf("loading chapter list: %w", convertAssetError(err))
	}
	l, err := ParseChapterList(data)
	if err != nil {
		return err
	}
	c.chapters = l
	return nil
}
