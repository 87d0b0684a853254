package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled   = errors.New("generator: service disabled")
	errPagesRequired     = errors.New("generator: page service is required")
	errRendererRequired  = errors.New("generator: page renderer is required")
	errOutputDirRequired = errors.New("generator: output directory is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildPage(ctx context.Context, locale, slug string) (*RenderedPage, error)
}

// PageRenderer writes a page view as an HTML document.
type PageRenderer interface {
	Render(w io.Writer, view pages.View) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir     string
	Workers       int
	Locales       []string
	RenderTimeout time.Duration
	View          pages.ViewOptions
}

// BuildOptions narrows the scope of a generator run. Zero values fall back
// to the service configuration.
type BuildOptions struct {
	OutputDir string
	Locales   []string
	Workers   int
	DryRun    bool
}

// RenderedPage describes one generated document.
type RenderedPage struct {
	Locale string
	Slug   string
	Output string
	Bytes  int
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	Pages    int
	Locales  []string
	Duration time.Duration
	Rendered []RenderedPage
	Errors   []error
	DryRun   bool
}

// Dependencies lists the services required by the generator. Writer
// overrides the filesystem writer rooted at the output directory.
type Dependencies struct {
	Pages    pages.Service
	Renderer PageRenderer
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildPage(context.Context, string, string) (*RenderedPage, error) {
	return nil, ErrServiceDisabled
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkDependencies(); err != nil {
		return nil, err
	}

	writer, outputDir, err := s.resolveWriter(opts)
	if err != nil {
		return nil, err
	}

	start := s.now()
	locales := s.resolveLocales(opts.Locales)
	targets, err := s.collectPages(ctx, locales)
	if err != nil {
		return nil, err
	}

	logger := s.deps.Logger
	logger.Info("generator.build_started", "pages", len(targets), "output_dir", outputDir, "dry_run", opts.DryRun)

	result := &BuildResult{
		DryRun:   opts.DryRun,
		Rendered: make([]RenderedPage, 0, len(targets)),
	}
	seen := map[string]bool{}
	for _, page := range targets {
		if !seen[page.Locale] {
			seen[page.Locale] = true
			result.Locales = append(result.Locales, page.Locale)
		}
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.resolveWorkers(opts.Workers))
	for _, page := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rendered, err := s.renderPage(ctx, writer, page)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logging.WithPageContext(logger, page.Locale, page.Slug).Error("generator.page_failed", "error", err)
				result.Errors = append(result.Errors, err)
				return nil
			}
			result.Rendered = append(result.Rendered, *rendered)
			result.Pages++
			return nil
		})
	}
	waitErr := g.Wait()

	slices.SortFunc(result.Rendered, func(a, b RenderedPage) int {
		return strings.Compare(a.Output, b.Output)
	})
	result.Duration = s.now().Sub(start)
	logger.Info("generator.build_completed", "pages", result.Pages, "errors", len(result.Errors), "duration", result.Duration)

	if waitErr != nil {
		return result, waitErr
	}
	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

func (s *service) BuildPage(ctx context.Context, locale, slug string) (*RenderedPage, error) {
	if err := s.checkDependencies(); err != nil {
		return nil, err
	}
	writer, _, err := s.resolveWriter(BuildOptions{})
	if err != nil {
		return nil, err
	}
	page, err := s.deps.Pages.Get(ctx, locale, slug)
	if err != nil {
		return nil, err
	}
	return s.renderPage(ctx, writer, page)
}

func (s *service) renderPage(ctx context.Context, writer ArtifactWriter, page *pages.Page) (*RenderedPage, error) {
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	view := pages.BuildView(page, s.cfg.View)
	var buf bytes.Buffer
	if err := s.deps.Renderer.Render(&buf, view); err != nil {
		return nil, fmt.Errorf("generator: render %s/%s: %w", page.Locale, page.Slug, err)
	}
	output := buildOutputPath(page.Locale, page.Slug)
	if err := writer.WriteFile(ctx, output, buf.Bytes()); err != nil {
		return nil, err
	}
	logging.WithPageContext(s.deps.Logger, page.Locale, page.Slug).Debug("generator.page_written", "output", output)
	return &RenderedPage{
		Locale: page.Locale,
		Slug:   page.Slug,
		Output: output,
		Bytes:  buf.Len(),
	}, nil
}

func (s *service) collectPages(ctx context.Context, locales []string) ([]*pages.Page, error) {
	if len(locales) == 0 {
		return s.deps.Pages.List(ctx, "")
	}
	var out []*pages.Page
	for _, locale := range locales {
		records, err := s.deps.Pages.List(ctx, locale)
		if err != nil {
			return nil, fmt.Errorf("generator: list %s pages: %w", locale, err)
		}
		out = append(out, records...)
	}
	return out, nil
}

func (s *service) checkDependencies() error {
	if s.deps.Pages == nil {
		return errPagesRequired
	}
	if s.deps.Renderer == nil {
		return errRendererRequired
	}
	return nil
}

func (s *service) resolveWriter(opts BuildOptions) (ArtifactWriter, string, error) {
	if opts.DryRun {
		return NewMemoryWriter(), "", nil
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		return NewFilesystemWriter(dir), dir, nil
	}
	dir := strings.TrimSpace(s.cfg.OutputDir)
	if s.deps.Writer != nil {
		return s.deps.Writer, dir, nil
	}
	if dir == "" {
		return nil, "", errOutputDirRequired
	}
	return NewFilesystemWriter(dir), dir, nil
}

func (s *service) resolveLocales(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return s.cfg.Locales
}

func (s *service) resolveWorkers(requested int) int {
	workers := requested
	if workers <= 0 {
		workers = s.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return workers
}
