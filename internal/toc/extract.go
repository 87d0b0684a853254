// Package toc derives a page's table of contents from its block tree.
package toc

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// Heading is one table of contents entry.
type Heading struct {
	Title string
	Level int
}

// TableOfContents lists headings in document order. Titles may repeat.
type TableOfContents []Heading

// Extractor walks block trees. It holds no per-call state and is safe for
// concurrent use.
type Extractor struct {
	locale language.Tag
	logger interfaces.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLocale sets the BCP 47 tag used to collate ordered_block titles.
// Unparseable tags leave the default (English) in place.
func WithLocale(tag string) Option {
	return func(e *Extractor) {
		if parsed, err := language.Parse(tag); err == nil {
			e.locale = parsed
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		locale: language.English,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Extract returns the table of contents of tree using the default extractor.
func Extract(tree []blocks.Block, level int) TableOfContents {
	return defaultExtractor.Extract(tree, level)
}

// Extract returns the headings of tree, starting at level (minimum 1).
//
// page_header blocks are skipped together with their descendants. Containers
// and headingless flex_layout/group blocks are transparent; a flex_layout or
// group with a heading emits it and nests its children one level deeper.
// ordered_block items are emitted in collated title order, accordion and
// residual blocks emit their heading or title, and markdown blocks emit every
// heading of their body at the current level regardless of markup depth.
// Extract never fails and does not modify tree.
func (e *Extractor) Extract(tree []blocks.Block, level int) TableOfContents {
	if level < 1 {
		level = 1
	}
	out := e.extract(tree, level)
	e.logger.Debug("toc.extracted", "headings", len(out), "level", level)
	return out
}

func (e *Extractor) extract(tree []blocks.Block, level int) TableOfContents {
	var out TableOfContents
	for _, b := range tree {
		out = append(out, e.extractBlock(b, level)...)
	}
	return out
}

func (e *Extractor) extractBlock(b blocks.Block, level int) TableOfContents {
	switch v := b.(type) {
	case blocks.PageHeader:
		return nil
	case blocks.Container:
		return e.extract(v.Blocks, level)
	case blocks.FlexLayout:
		return e.section(v.Heading, v.Blocks, level)
	case blocks.Group:
		return e.section(v.Heading, v.Blocks, level)
	case blocks.OrderedBlock:
		items := e.SortItems(v.Items)
		out := make(TableOfContents, 0, len(items))
		for _, item := range items {
			out = append(out, Heading{Title: item.Title, Level: level})
		}
		return out
	case blocks.Accordion:
		if v.Heading == nil {
			return nil
		}
		return TableOfContents{{Title: *v.Heading, Level: level}}
	case blocks.Markdown:
		found := markdown.Headings([]byte(v.Body))
		out := make(TableOfContents, 0, len(found))
		for _, h := range found {
			out = append(out, Heading{Title: h.Text, Level: level})
		}
		return out
	case blocks.Generic:
		if v.Title != nil {
			return TableOfContents{{Title: *v.Title, Level: level}}
		}
		if v.Heading != nil {
			return TableOfContents{{Title: *v.Heading, Level: level}}
		}
	}
	return nil
}

func (e *Extractor) section(heading string, children []blocks.Block, level int) TableOfContents {
	if heading == "" {
		return e.extract(children, level)
	}
	return append(TableOfContents{{Title: heading, Level: level}}, e.extract(children, level+1)...)
}

// SortItems returns a copy of items ordered by title with the extractor's
// collation. Items with equal titles keep their relative order.
func (e *Extractor) SortItems(items []blocks.OrderedItem) []blocks.OrderedItem {
	sorted := slices.Clone(items)
	// collate.Collator keeps scratch buffers, so each call gets its own.
	c := collate.New(e.locale)
	slices.SortStableFunc(sorted, func(a, b blocks.OrderedItem) int {
		return c.CompareString(a.Title, b.Title)
	})
	return sorted
}
