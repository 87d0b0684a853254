package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/render"
	"github.com/goliatone/go-cms-site/internal/toc"
)

func faqPage() *pages.Page {
	return &pages.Page{
		Locale:          "en",
		Slug:            "faq",
		Title:           "FAQ",
		Template:        pages.ContentTemplate,
		Breadcrumbs:     true,
		BreadcrumbsData: []pages.BreadcrumbRef{{Locale: "en", Slug: "support", Title: "Support"}},
		PageLastUpdated: true,
		GitLog:          &pages.GitLog{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Blocks: []blocks.Block{
			blocks.PageHeader{Title: "FAQ", Description: "Common questions"},
			blocks.FlexLayout{Heading: "Accounts", Blocks: []blocks.Block{
				blocks.Markdown{Body: "# Sign up\n\nText.\n\n## Accounts"},
			}},
			blocks.OrderedBlock{Items: []blocks.OrderedItem{
				{Title: "Zebra", Blocks: []blocks.Block{blocks.Group{Heading: "Hidden"}}},
				{Title: "apple"},
			}},
			blocks.Accordion{Heading: blocks.String("More"), Items: []blocks.AccordionItem{
				{Question: "Is it <free>?", Answer: "**Yes**"},
			}},
		},
	}
}

func TestRendererRenderDocument(t *testing.T) {
	now := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	view := pages.BuildView(faqPage(), pages.ViewOptions{Now: func() time.Time { return now }})

	var buf bytes.Buffer
	if err := render.New(render.WithSiteName("Docs")).Render(&buf, view); err != nil {
		t.Fatalf("render: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	if got := doc.Find("title").Text(); got != "FAQ | Docs" {
		t.Fatalf("unexpected title %q", got)
	}
	crumbs := doc.Find("nav.breadcrumbs li")
	if crumbs.Length() != 3 {
		t.Fatalf("expected 3 breadcrumbs, got %d", crumbs.Length())
	}
	if href, _ := crumbs.Eq(1).Find("a").Attr("href"); href != "/en/support" {
		t.Fatalf("unexpected parent href %q", href)
	}
	if got := crumbs.Eq(2).Find("span.current").Text(); got != "FAQ" {
		t.Fatalf("unexpected current crumb %q", got)
	}
	if got := doc.Find("p.last-updated").Text(); !strings.HasPrefix(got, "Page last updated 2 days ago") {
		t.Fatalf("unexpected last updated %q", got)
	}
	if gap, _ := doc.Find(".page-layout").Attr("data-gap-lg"); gap != "32px" {
		t.Fatalf("unexpected gap %q", gap)
	}

	links := doc.Find("aside.toc a")
	if links.Length() != len(view.TOC) {
		t.Fatalf("expected %d toc links, got %d", len(view.TOC), links.Length())
	}
	links.Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		anchor := strings.TrimPrefix(href, "#")
		if anchor != view.TOC[i].Anchor {
			t.Fatalf("toc link %d: expected #%s, got %s", i, view.TOC[i].Anchor, href)
		}
		target := doc.Find("main [id='" + anchor + "']")
		if target.Length() != 1 {
			t.Fatalf("expected one heading with id %q, found %d", anchor, target.Length())
		}
		if target.Text() != view.TOC[i].Title {
			t.Fatalf("heading %q: expected text %q, got %q", anchor, view.TOC[i].Title, target.Text())
		}
	})

	items := doc.Find("ol.ordered-block > li")
	if items.Length() != 2 || items.Eq(0).Find("h2").Text() != "apple" {
		t.Fatalf("expected collated ordered items, got %q", items.Text())
	}
	if _, ok := items.Find("section.group h3").Attr("id"); ok {
		t.Fatal("expected headings outside the table of contents to have no anchor")
	}
	if got := doc.Find("details summary").Text(); got != "Is it <free>?" {
		t.Fatalf("unexpected summary %q", got)
	}
	if doc.Find("details .answer strong").Text() != "Yes" {
		t.Fatal("expected accordion answer to render markdown")
	}
}

func TestRendererOmitsAsideOutsideContentTemplate(t *testing.T) {
	page := faqPage()
	page.Template = "landing"
	page.Breadcrumbs = false
	page.PageLastUpdated = false

	var buf bytes.Buffer
	if err := render.New().Render(&buf, pages.BuildView(page, pages.ViewOptions{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if doc.Find("aside.toc").Length() != 0 {
		t.Fatal("expected no aside")
	}
	if doc.Find("nav.breadcrumbs").Length() != 0 || doc.Find("p.last-updated").Length() != 0 {
		t.Fatal("expected breadcrumbs and label to be hidden")
	}
	if gap, _ := doc.Find(".page-layout").Attr("data-gap-lg"); gap != "136px" {
		t.Fatalf("unexpected gap %q", gap)
	}
	if _, ok := doc.Find("section.flex-layout > h2").Attr("id"); !ok {
		t.Fatal("expected section headings to keep anchors without an aside")
	}
}

func TestRenderBlocksMatchesOutlineForRepeatedTitles(t *testing.T) {
	tree := []blocks.Block{
		blocks.Group{Heading: "Setup"},
		blocks.Markdown{Body: "# Setup\n\n# Setup"},
	}
	html, err := render.New().RenderBlocks(tree)
	if err != nil {
		t.Fatalf("render blocks: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	outline := toc.Outline(toc.Extract(tree, 1))
	var ids []string
	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	if len(ids) != len(outline) {
		t.Fatalf("expected %d headings, got %v", len(outline), ids)
	}
	for i, entry := range outline {
		if ids[i] != entry.Anchor {
			t.Fatalf("heading %d: expected id %q, got %q", i, entry.Anchor, ids[i])
		}
	}
}

func TestRenderBlocksKeepsHeadingIDsUniqueAcrossPage(t *testing.T) {
	tree := []blocks.Block{
		blocks.OrderedBlock{Items: []blocks.OrderedItem{
			{Title: "Zebra", Blocks: []blocks.Block{blocks.Markdown{Body: "## Apple"}}},
			{Title: "Apple"},
		}},
		blocks.Accordion{Items: []blocks.AccordionItem{{Question: "Q", Answer: "## Zebra"}}},
	}
	html, err := render.New().RenderBlocks(tree)
	if err != nil {
		t.Fatalf("render blocks: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	seen := map[string]bool{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if seen[id] {
			t.Fatalf("duplicate heading id %q in %s", id, html)
		}
		seen[id] = true
	})
	for _, entry := range toc.Outline(toc.Extract(tree, 1)) {
		if !seen[entry.Anchor] {
			t.Fatalf("expected outline anchor %q in %s", entry.Anchor, html)
		}
	}
	if !seen["apple-1"] || !seen["zebra-1"] {
		t.Fatalf("expected nested headings to get suffixed ids, got %v", seen)
	}
}
