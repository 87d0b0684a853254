package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// GoldmarkRenderer implements interfaces.MarkdownRenderer. The default engine
// is built once and shared; goldmark engines are safe for concurrent use.
type GoldmarkRenderer struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

var _ interfaces.MarkdownRenderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer constructs a renderer. Without explicit extensions it
// enables GFM, linkify and task lists; raw HTML passes through unless SafeMode is set.
func NewGoldmarkRenderer(defaults interfaces.ParseOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		defaults: defaults,
		engine:   newEngine(defaults),
	}
}

// Render converts Markdown into HTML with the renderer defaults.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return convert(r.engine, markdown)
}

// RenderWithOptions converts Markdown into HTML with per-call options.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(newEngine(opts), markdown)
}

// HeadingIDs is the set of heading ids already taken on one page. Sharing a
// single set across RenderAnchored calls keeps generated ids unique page-wide.
type HeadingIDs struct {
	ids parser.IDs
}

// NewHeadingIDs returns a set that already holds reserved.
func NewHeadingIDs(reserved ...string) *HeadingIDs {
	ids := parser.NewContext().IDs()
	for _, id := range reserved {
		if id != "" {
			ids.Put([]byte(id))
		}
	}
	return &HeadingIDs{ids: ids}
}

// RenderAnchored converts Markdown with the renderer defaults, taking heading
// ids from next in document order. When next is nil or returns an empty
// string the heading gets a goldmark id that is not yet in ids. A nil ids
// starts an empty set.
func (r *GoldmarkRenderer) RenderAnchored(markdown []byte, ids *HeadingIDs, next func() string) ([]byte, error) {
	if ids == nil {
		ids = NewHeadingIDs()
	}
	seq := &sequenceIDs{next: next, fallback: ids.ids}
	ctx := parser.NewContext(parser.WithIDs(seq))
	return convert(r.engine, markdown, parser.WithContext(ctx))
}

func convert(engine goldmark.Markdown, markdown []byte, opts ...parser.ParseOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf, opts...); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

func newEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(extensionsFor(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

type sequenceIDs struct {
	next     func() string
	fallback parser.IDs
}

func (s *sequenceIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	if s.next != nil {
		if id := s.next(); id != "" {
			s.fallback.Put([]byte(id))
			return []byte(id)
		}
	}
	return s.fallback.Generate(value, kind)
}

func (s *sequenceIDs) Put(value []byte) {
	s.fallback.Put(value)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// extensionsFor resolves extension names, ignoring unknown and repeated ones.
func extensionsFor(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}

	var out []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ext)
	}
	return out
}
