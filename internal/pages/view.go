package pages

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/toc"
)

// ContentTemplate is the template that renders an aside table of contents.
const ContentTemplate = "content"

const (
	defaultHomeLabel = "Home"
	lastUpdatedLabel = "Page last updated "
)

// Crumb is one entry of the breadcrumb trail. The current page has no Href.
type Crumb struct {
	Label   string
	Href    string
	Current bool
}

// Gap holds the layout spacing in pixels for the base and large breakpoints.
type Gap struct {
	Base  int
	Large int
}

// View is the render-ready projection of a Page.
type View struct {
	Locale      string
	Slug        string
	Title       string
	Template    string
	Breadcrumbs []Crumb
	LastUpdated string
	Gap         Gap
	Blocks      []blocks.Block
	ShowTOC     bool
	TOC         []toc.Entry
}

// ViewOptions tunes BuildView. Zero values select the defaults.
type ViewOptions struct {
	Extractor    *toc.Extractor
	StartLevel   int
	TOCTemplates []string
	HomeLabel    string
	Now          func() time.Time
}

// BuildView projects page into the data the page layout renders.
func BuildView(page *Page, opts ViewOptions) View {
	if page == nil {
		return View{}
	}
	opts = withViewDefaults(opts)

	view := View{
		Locale:      page.Locale,
		Slug:        page.Slug,
		Title:       page.Title,
		Template:    page.Template,
		Breadcrumbs: breadcrumbs(page, opts.HomeLabel),
		LastUpdated: lastUpdated(page, opts.Now()),
		Gap:         layoutGap(page.Template),
		Blocks:      page.Blocks,
	}
	if view.Blocks == nil && len(page.RawBlocks) > 0 {
		view.Blocks = blocks.Decode(page.RawBlocks)
	}
	if slices.Contains(opts.TOCTemplates, strings.TrimSpace(page.Template)) {
		view.ShowTOC = true
		view.TOC = toc.Outline(opts.Extractor.Extract(view.Blocks, opts.StartLevel))
	}
	return view
}

func withViewDefaults(opts ViewOptions) ViewOptions {
	if opts.Extractor == nil {
		opts.Extractor = toc.New()
	}
	if opts.StartLevel < 1 {
		opts.StartLevel = 1
	}
	if opts.TOCTemplates == nil {
		opts.TOCTemplates = []string{ContentTemplate}
	}
	if strings.TrimSpace(opts.HomeLabel) == "" {
		opts.HomeLabel = defaultHomeLabel
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// breadcrumbs links home and the first parent page, then the page itself.
func breadcrumbs(page *Page, homeLabel string) []Crumb {
	if !page.Breadcrumbs || len(page.BreadcrumbsData) == 0 {
		return nil
	}
	parent := page.BreadcrumbsData[0]
	locale := parent.Locale
	if locale == "" {
		locale = page.Locale
	}
	return []Crumb{
		{Label: homeLabel, Href: "/" + locale},
		{Label: parent.Title, Href: "/" + locale + "/" + strings.Trim(parent.Slug, "/")},
		{Label: page.Title, Current: true},
	}
}

func lastUpdated(page *Page, now time.Time) string {
	if !page.PageLastUpdated || page.GitLog == nil || page.GitLog.Date.IsZero() {
		return ""
	}
	return lastUpdatedLabel + humanize.RelTime(page.GitLog.Date, now, "ago", "from now") + "  "
}

func layoutGap(template string) Gap {
	if strings.TrimSpace(template) == ContentTemplate {
		return Gap{Base: 32, Large: 32}
	}
	return Gap{Base: 56, Large: 136}
}
