package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/toc"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

var errWriterRequired = errors.New("render: writer is required")

// Markdown converts Markdown bodies to HTML. RenderAnchored assigns heading
// ids from next in document order and keeps every id unique within ids.
type Markdown interface {
	Render(source []byte) ([]byte, error)
	RenderAnchored(source []byte, ids *markdown.HeadingIDs, next func() string) ([]byte, error)
}

var _ Markdown = (*markdown.GoldmarkRenderer)(nil)

// Renderer writes page views as HTML documents.
type Renderer struct {
	markdown  Markdown
	extractor *toc.Extractor
	layout    *template.Template
	siteName  string
	logger    interfaces.Logger
}

// Option configures the renderer instance.
type Option func(*Renderer)

// WithMarkdown overrides the Markdown renderer.
func WithMarkdown(md Markdown) Option {
	return func(r *Renderer) {
		if md != nil {
			r.markdown = md
		}
	}
}

// WithExtractor sets the extractor whose ordering the rendered blocks follow.
func WithExtractor(extractor *toc.Extractor) Option {
	return func(r *Renderer) {
		if extractor != nil {
			r.extractor = extractor
		}
	}
}

// WithSiteName appends name to every document title.
func WithSiteName(name string) Option {
	return func(r *Renderer) {
		r.siteName = strings.TrimSpace(name)
	}
}

// WithLogger attaches a logger to the renderer.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a renderer with the default page layout.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		markdown:  markdown.NewGoldmarkRenderer(interfaces.ParseOptions{}),
		extractor: toc.New(),
		layout:    pageLayout,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type layoutData struct {
	View     pages.View
	SiteName string
	Body     template.HTML
}

// Render writes view as a complete HTML document.
func (r *Renderer) Render(w io.Writer, view pages.View) error {
	if w == nil {
		return errWriterRequired
	}
	body, err := r.RenderBlocks(view.Blocks)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.layout.Execute(&buf, layoutData{View: view, SiteName: r.siteName, Body: body}); err != nil {
		return fmt.Errorf("render: execute layout: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	logging.WithPageContext(r.logger, view.Locale, view.Slug).Debug("render.page", "bytes", buf.Len(), "toc", len(view.TOC))
	return nil
}

// RenderBlocks renders tree to HTML. Headings that appear in the table of
// contents carry the anchors toc.Outline assigns to them.
func (r *Renderer) RenderBlocks(tree []blocks.Block) (template.HTML, error) {
	entries := toc.Outline(r.extractor.Extract(tree, 1))
	reserved := make([]string, 0, len(entries))
	for _, entry := range entries {
		reserved = append(reserved, entry.Anchor)
	}
	cursor := &anchorCursor{entries: entries, ids: markdown.NewHeadingIDs(reserved...)}
	var b strings.Builder
	if err := r.writeBlocks(&b, tree, 1, cursor); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// anchorCursor hands out outline anchors in document order. A nil cursor
// yields no anchors. ids holds every heading id used on the page.
type anchorCursor struct {
	entries []toc.Entry
	pos     int
	ids     *markdown.HeadingIDs
}

// detached shares the page ids but hands out no outline anchors.
func (c *anchorCursor) detached() *anchorCursor {
	if c == nil {
		return nil
	}
	return &anchorCursor{ids: c.ids}
}

func (c *anchorCursor) headingIDs() *markdown.HeadingIDs {
	if c == nil {
		return nil
	}
	return c.ids
}

func (c *anchorCursor) next() string {
	if c == nil || c.pos >= len(c.entries) {
		return ""
	}
	anchor := c.entries[c.pos].Anchor
	c.pos++
	return anchor
}

func (r *Renderer) writeBlocks(b *strings.Builder, tree []blocks.Block, level int, cursor *anchorCursor) error {
	for _, block := range tree {
		if err := r.writeBlock(b, block, level, cursor); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeBlock(b *strings.Builder, block blocks.Block, level int, cursor *anchorCursor) error {
	switch v := block.(type) {
	case blocks.PageHeader:
		b.WriteString(`<header class="page-header"><h1>`)
		b.WriteString(template.HTMLEscapeString(v.Title))
		b.WriteString(`</h1>`)
		if v.Description != "" {
			b.WriteString(`<p>`)
			b.WriteString(template.HTMLEscapeString(v.Description))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</header>`)
	case blocks.Container:
		b.WriteString(`<div class="container">`)
		if err := r.writeBlocks(b, v.Blocks, level, cursor); err != nil {
			return err
		}
		b.WriteString(`</div>`)
	case blocks.FlexLayout:
		return r.writeSection(b, "flex-layout", v.Heading, v.Blocks, level, cursor)
	case blocks.Group:
		return r.writeSection(b, "group", v.Heading, v.Blocks, level, cursor)
	case blocks.OrderedBlock:
		b.WriteString(`<ol class="ordered-block">`)
		for _, item := range r.extractor.SortItems(v.Items) {
			b.WriteString(`<li>`)
			writeHeading(b, level, item.Title, cursor.next())
			if err := r.writeBlocks(b, item.Blocks, level+1, cursor.detached()); err != nil {
				return err
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ol>`)
	case blocks.Accordion:
		b.WriteString(`<section class="accordion">`)
		if v.Heading != nil {
			writeHeading(b, level, *v.Heading, cursor.next())
		}
		for _, item := range v.Items {
			answer, err := r.markdown.RenderAnchored([]byte(item.Answer), cursor.headingIDs(), nil)
			if err != nil {
				return err
			}
			b.WriteString(`<details><summary>`)
			b.WriteString(template.HTMLEscapeString(item.Question))
			b.WriteString(`</summary><div class="answer">`)
			b.Write(answer)
			b.WriteString(`</div></details>`)
		}
		b.WriteString(`</section>`)
	case blocks.Markdown:
		html, err := r.markdown.RenderAnchored([]byte(v.Body), cursor.headingIDs(), cursor.next)
		if err != nil {
			return err
		}
		b.WriteString(`<div class="markdown">`)
		b.Write(html)
		b.WriteString(`</div>`)
	case blocks.Generic:
		b.WriteString(`<section class="block block-`)
		b.WriteString(template.HTMLEscapeString(string(v.Type)))
		b.WriteString(`">`)
		switch {
		case v.Title != nil:
			writeHeading(b, level, *v.Title, cursor.next())
		case v.Heading != nil:
			writeHeading(b, level, *v.Heading, cursor.next())
		}
		b.WriteString(`</section>`)
	}
	return nil
}

func (r *Renderer) writeSection(b *strings.Builder, class, heading string, children []blocks.Block, level int, cursor *anchorCursor) error {
	b.WriteString(`<section class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	if heading != "" {
		writeHeading(b, level, heading, cursor.next())
		level++
	}
	if err := r.writeBlocks(b, children, level, cursor); err != nil {
		return err
	}
	b.WriteString(`</section>`)
	return nil
}

// writeHeading emits an h2..h6 element; level 1 maps to h2 below the page title.
func writeHeading(b *strings.Builder, level int, text, anchor string) {
	tag := "h" + strconv.Itoa(min(level+1, 6))
	b.WriteString("<" + tag)
	if anchor != "" {
		b.WriteString(` id="`)
		b.WriteString(template.HTMLEscapeString(anchor))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(template.HTMLEscapeString(text))
	b.WriteString("</" + tag + ">")
}
