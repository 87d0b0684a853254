package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/internal/cmsdata"
	sitecmd "github.com/goliatone/go-cms-site/internal/commands/site"
	"github.com/goliatone/go-cms-site/internal/filters"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/logging/console"
	"github.com/goliatone/go-cms-site/internal/logging/gologger"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/render"
	"github.com/goliatone/go-cms-site/internal/runtimeconfig"
	"github.com/goliatone/go-cms-site/internal/toc"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// Container wires the site services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo pages.PageRepository
	pageSvc  pages.Service

	markdown  *markdown.GoldmarkRenderer
	extractor *toc.Extractor
	renderer  *render.Renderer

	writer       generator.ArtifactWriter
	generatorSvc generator.Service

	dataFS          fs.FS
	commandRegistry sitecmd.CommandRegistry
	commands        *sitecmd.HandlerSet

	now func() time.Time
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container registers the page
// model on it but never closes it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache used in front of bun storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPageRepository replaces the repository selected by Config.Storage.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithPageService replaces the page service entirely.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithDataFS sets the filesystem cmsdata documents are read from. Defaults
// to the directory named by Config.CMSData.Dir.
func WithDataFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.dataFS = fsys
	}
}

// WithArtifactWriter routes generator output through writer.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithCommandRegistry registers the site command handlers with reg.
func WithCommandRegistry(reg sitecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithClock overrides the clock used for page timestamps and labels.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and builds every service it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.TTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()

	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   os.Stderr,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || c.pageRepo != nil || c.pageSvc != nil {
		return c.registerModels()
	}
	storage := c.Config.Storage
	if strings.ToLower(strings.TrimSpace(storage.Provider)) != "bun" {
		return nil
	}

	var (
		driver  string
		dialect schema.Dialect
	)
	switch strings.ToLower(strings.TrimSpace(storage.Dialect)) {
	case "postgres":
		driver, dialect = "postgres", pgdialect.New()
	default:
		driver, dialect = "sqlite3", sqlitedialect.New()
	}

	sqldb, err := sql.Open(driver, storage.DSN)
	if err != nil {
		return fmt.Errorf("site storage: open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		sqldb.SetMaxOpenConns(1)
	}
	c.bunDB = bun.NewDB(sqldb, dialect)
	c.ownsDB = true

	if err := c.registerModels(); err != nil {
		c.Close()
		return err
	}
	return nil
}

func (c *Container) registerModels() error {
	if c.bunDB == nil {
		return nil
	}
	if err := pages.RegisterModels(context.Background(), c.bunDB); err != nil {
		return fmt.Errorf("site storage: register models: %w", err)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.pageRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.pageRepo = pages.NewMemoryPageRepository()
}

func (c *Container) configureServices() {
	cfg := c.Config

	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(c.pageRepo,
			pages.WithClock(c.now),
			pages.WithLocales(cfg.Locales...),
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		)
	}

	c.markdown = markdown.NewGoldmarkRenderer(interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})
	c.extractor = toc.New(
		toc.WithLocale(cfg.TOC.CollationLocale),
		toc.WithLogger(logging.TOCLogger(c.loggerProvider)),
	)
	c.renderer = render.New(
		render.WithMarkdown(c.markdown),
		render.WithExtractor(c.extractor),
		render.WithSiteName(cfg.Render.SiteName),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
	)

	if !cfg.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
	} else {
		c.generatorSvc = generator.NewService(generator.Config{
			OutputDir:     cfg.Generator.OutputDir,
			Workers:       cfg.Generator.Workers,
			Locales:       cfg.Locales,
			RenderTimeout: cfg.Generator.RenderTimeout,
			View:          c.ViewOptions(),
		}, generator.Dependencies{
			Pages:    c.pageSvc,
			Renderer: c.renderer,
			Writer:   c.writer,
			Logger:   logging.GeneratorLogger(c.loggerProvider),
		})
	}

	if c.dataFS == nil && strings.TrimSpace(cfg.CMSData.Dir) != "" {
		c.dataFS = os.DirFS(cfg.CMSData.Dir)
	}
}

func (c *Container) configureCommands() error {
	set, err := sitecmd.RegisterSiteCommands(c.commandRegistry, sitecmd.Dependencies{
		Pages:     c.pageSvc,
		Generator: c.generatorSvc,
		Source: sitecmd.ImportSource{
			FS:      c.dataFS,
			Locales: c.Config.Locales,
		},
	}, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the provider module loggers are drawn from. It is
// nil when the logger feature is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB returns the bun database backing page storage, or nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// PageService returns the page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// Extractor returns the table of contents extractor.
func (c *Container) Extractor() *toc.Extractor {
	return c.extractor
}

// Renderer returns the HTML page renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// GeneratorService returns the static generator, or a disabled one when
// Config.Generator.Enabled is false.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// Commands returns the site command handlers.
func (c *Container) Commands() *sitecmd.HandlerSet {
	return c.commands
}

// ViewOptions returns the page view settings derived from the configuration.
func (c *Container) ViewOptions() pages.ViewOptions {
	return pages.ViewOptions{
		Extractor:    c.extractor,
		StartLevel:   c.Config.TOC.StartLevel,
		TOCTemplates: c.Config.TOC.Templates,
		HomeLabel:    c.Config.Render.HomeLabel,
		Now:          c.now,
	}
}

// Loader returns a cmsdata loader over the configured data filesystem.
func (c *Container) Loader() *cmsdata.Loader {
	return cmsdata.NewLoader(c.dataFS, cmsdata.LoaderConfig{
		Locales: c.Config.Locales,
		Strict:  c.Config.CMSData.Strict,
	}, cmsdata.WithLogger(logging.CMSDataLogger(c.loggerProvider)))
}

// Importer returns an importer writing through the page service.
func (c *Container) Importer() *cmsdata.Importer {
	return cmsdata.NewImporter(c.Loader(), c.pageSvc)
}

// NewFilterDrawer returns a closed drawer using the configured breakpoint.
func (c *Container) NewFilterDrawer(width int) *filters.Drawer {
	return filters.NewDrawer(
		filters.WithBreakpoints(filters.Breakpoints{Large: c.Config.Filters.LargeBreakpoint}),
		filters.WithViewport(width),
	)
}

// Close releases the database opened by the container.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}
