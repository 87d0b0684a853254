package cms

import (
	"context"
	"io"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/cmsdata"
	sitecmd "github.com/goliatone/go-cms-site/internal/commands/site"
	"github.com/goliatone/go-cms-site/internal/di"
	"github.com/goliatone/go-cms-site/internal/filters"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/render"
	"github.com/goliatone/go-cms-site/internal/toc"
)

// PageService exports the pages service contract.
type PageService = pages.Service

// Page exports the stored page record.
type Page = pages.Page

// PageView exports the data a page layout renders.
type PageView = pages.View

// UpsertPageRequest exports the page write payload.
type UpsertPageRequest = pages.UpsertPageRequest

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports generator build overrides.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build summary.
type BuildResult = generator.BuildResult

// ImportResult exports the cmsdata import summary.
type ImportResult = cmsdata.ImportResult

// TableOfContents exports the flat heading list produced by extraction.
type TableOfContents = toc.TableOfContents

// TOCEntry exports an anchored table of contents entry.
type TOCEntry = toc.Entry

// FilterDrawer exports the mobile filter drawer state holder.
type FilterDrawer = filters.Drawer

// CommandHandlers exports the site command handler set.
type CommandHandlers = sitecmd.HandlerSet

// Option customises module wiring.
type Option = di.Option

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithPageRepository  = di.WithPageRepository
	WithPageService     = di.WithPageService
	WithDataFS          = di.WithDataFS
	WithArtifactWriter  = di.WithArtifactWriter
	WithCommandRegistry = di.WithCommandRegistry
	WithClock           = di.WithClock
)

// Module represents the top level site runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a site module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// TOC returns the table of contents extractor.
func (m *Module) TOC() *toc.Extractor {
	return m.container.Extractor()
}

// Renderer returns the HTML page renderer.
func (m *Module) Renderer() *render.Renderer {
	return m.container.Renderer()
}

// Generator returns the static site generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Loader returns a cmsdata loader over the configured data directory.
func (m *Module) Loader() *cmsdata.Loader {
	return m.container.Loader()
}

// Commands returns the site command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// ExtractTOC returns the headings of tree starting at level.
func (m *Module) ExtractTOC(tree []blocks.Block, level int) TableOfContents {
	return m.container.Extractor().Extract(tree, level)
}

// View loads a page and projects it for rendering.
func (m *Module) View(ctx context.Context, locale, slug string) (PageView, error) {
	page, err := m.container.PageService().Get(ctx, locale, slug)
	if err != nil {
		return PageView{}, err
	}
	return pages.BuildView(page, m.container.ViewOptions()), nil
}

// RenderPage writes the HTML document of a stored page to w.
func (m *Module) RenderPage(ctx context.Context, w io.Writer, locale, slug string) error {
	view, err := m.View(ctx, locale, slug)
	if err != nil {
		return err
	}
	return m.container.Renderer().Render(w, view)
}

// Import loads the configured cmsdata directory into the page store.
func (m *Module) Import(ctx context.Context) (*ImportResult, error) {
	return m.container.Importer().Import(ctx, ".")
}

// Build renders every stored page through the generator.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.GeneratorService().Build(ctx, opts)
}

// NewFilterDrawer returns a closed filter drawer for a viewport of width pixels.
func (m *Module) NewFilterDrawer(width int) *FilterDrawer {
	return m.container.NewFilterDrawer(width)
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}
