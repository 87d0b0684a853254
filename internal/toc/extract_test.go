package toc_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/toc"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name  string
		tree  []blocks.Block
		level int
		want  toc.TableOfContents
	}{
		{
			name: "empty input",
		},
		{
			name: "blocks without headings",
			tree: []blocks.Block{
				blocks.Container{Blocks: []blocks.Block{blocks.FlexLayout{}}},
				blocks.Generic{Type: "divider"},
				blocks.Markdown{Body: "just text"},
			},
			level: 1,
		},
		{
			name: "page header skipped at any depth",
			tree: []blocks.Block{
				blocks.PageHeader{Title: "Top"},
				blocks.Container{Blocks: []blocks.Block{
					blocks.PageHeader{Title: "Nested"},
					blocks.Generic{Type: "hero", Title: blocks.String("Hero")},
				}},
			},
			level: 1,
			want:  toc.TableOfContents{{Title: "Hero", Level: 1}},
		},
		{
			name: "nested flex layouts increase level",
			tree: []blocks.Block{
				blocks.FlexLayout{Heading: "Intro", Blocks: []blocks.Block{
					blocks.FlexLayout{Heading: "Details"},
				}},
			},
			level: 1,
			want: toc.TableOfContents{
				{Title: "Intro", Level: 1},
				{Title: "Details", Level: 2},
			},
		},
		{
			name: "headingless siblings keep level",
			tree: []blocks.Block{
				blocks.Group{Heading: "Team", Blocks: []blocks.Block{
					blocks.Group{Blocks: []blocks.Block{
						blocks.Generic{Type: "basic_card", Title: blocks.String("Ada")},
					}},
					blocks.Container{Blocks: []blocks.Block{
						blocks.Generic{Type: "basic_card", Heading: blocks.String("Grace")},
					}},
				}},
				blocks.Generic{Type: "link_list", Heading: blocks.String("Links")},
			},
			level: 1,
			want: toc.TableOfContents{
				{Title: "Team", Level: 1},
				{Title: "Ada", Level: 2},
				{Title: "Grace", Level: 2},
				{Title: "Links", Level: 1},
			},
		},
		{
			name: "ordered block sorted by title",
			tree: []blocks.Block{
				blocks.OrderedBlock{Items: []blocks.OrderedItem{
					{Title: "Banana", Blocks: []blocks.Block{blocks.Generic{Type: "x", Title: blocks.String("Hidden")}}},
					{Title: "Apple"},
				}},
			},
			level: 3,
			want: toc.TableOfContents{
				{Title: "Apple", Level: 3},
				{Title: "Banana", Level: 3},
			},
		},
		{
			name: "markdown headings flattened to current level",
			tree: []blocks.Block{
				blocks.Markdown{Body: "# Heading One\n\nSome text\n\n## Heading Two"},
			},
			level: 2,
			want: toc.TableOfContents{
				{Title: "Heading One", Level: 2},
				{Title: "Heading Two", Level: 2},
			},
		},
		{
			name: "markdown heading references and escapes decoded",
			tree: []blocks.Block{
				blocks.Markdown{Body: "# Fees &amp; Gas\n\n# Step 1\\. Install"},
			},
			level: 1,
			want: toc.TableOfContents{
				{Title: "Fees & Gas", Level: 1},
				{Title: "Step 1. Install", Level: 1},
			},
		},
		{
			name: "accordion heading",
			tree: []blocks.Block{
				blocks.Accordion{Items: []blocks.AccordionItem{{Question: "Q"}}},
				blocks.Accordion{Heading: blocks.String("FAQ")},
			},
			level: 1,
			want:  toc.TableOfContents{{Title: "FAQ", Level: 1}},
		},
		{
			name: "title wins over heading and empty title is kept",
			tree: []blocks.Block{
				blocks.Generic{Type: "card", Title: blocks.String("Card"), Heading: blocks.String("Ignored")},
				blocks.Generic{Type: "card", Title: blocks.String("")},
			},
			level: 1,
			want: toc.TableOfContents{
				{Title: "Card", Level: 1},
				{Title: "", Level: 1},
			},
		},
		{
			name:  "level clamped to one",
			tree:  []blocks.Block{blocks.Accordion{Heading: blocks.String("FAQ")}},
			level: 0,
			want:  toc.TableOfContents{{Title: "FAQ", Level: 1}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := toc.Extract(tc.tree, tc.level)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %#v\ngot  %#v", tc.want, got)
			}
		})
	}
}

func TestExtractIsIdempotentAndDoesNotMutateInput(t *testing.T) {
	tree := []blocks.Block{
		blocks.OrderedBlock{Items: []blocks.OrderedItem{{Title: "b"}, {Title: "a"}}},
		blocks.FlexLayout{Heading: "Section", Blocks: []blocks.Block{blocks.Markdown{Body: "## Sub"}}},
	}

	first := toc.Extract(tree, 1)
	second := toc.Extract(tree, 1)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected equal results, got %#v and %#v", first, second)
	}

	ordered := tree[0].(blocks.OrderedBlock)
	if ordered.Items[0].Title != "b" {
		t.Fatalf("expected input order to be preserved, got %#v", ordered.Items)
	}
}

func TestExtractorCollatesTitles(t *testing.T) {
	extractor := toc.New(toc.WithLocale("en"))
	tree := []blocks.Block{
		blocks.OrderedBlock{Items: []blocks.OrderedItem{{Title: "banana"}, {Title: "Cherry"}, {Title: "apple"}}},
	}

	got := extractor.Extract(tree, 1)
	want := []string{"apple", "banana", "Cherry"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: want %q, got %q (all: %#v)", i, title, got[i].Title, got)
		}
	}
}

func TestWithLocaleIgnoresInvalidTags(t *testing.T) {
	extractor := toc.New(toc.WithLocale("!!"))
	items := extractor.SortItems([]blocks.OrderedItem{{Title: "b"}, {Title: "a"}})
	if items[0].Title != "a" {
		t.Fatalf("expected default collation to apply, got %#v", items)
	}
}
