package di

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-cms-site/blocks"
	sitecmd "github.com/goliatone/go-cms-site/internal/commands/site"
	"github.com/goliatone/go-cms-site/internal/commands/fixtures"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/logging/console"
	"github.com/goliatone/go-cms-site/internal/logging/gologger"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/runtimeconfig"
)

func TestNewContainerDefaultsToMemoryStorage(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	if container.DB() != nil {
		t.Fatal("expected no database for memory storage")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected no logger provider when the logger feature is off")
	}
	if _, err := container.GeneratorService().Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected disabled generator, got %v", err)
	}
	if container.Commands() == nil || container.Commands().Import == nil {
		t.Fatal("expected site commands to be wired")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigureLoggerProviderSelectsProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.loggerProvider.(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	var buf bytes.Buffer
	level := console.LevelInfo
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &level})
	container, err = NewContainer(cfg, WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, err := container.PageService().Upsert(context.Background(), pages.UpsertPageRequest{Locale: "en", Slug: "faq", Title: "FAQ"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !strings.Contains(buf.String(), "pages.created") {
		t.Fatalf("expected page log entry, got %q", buf.String())
	}
}

func TestContainerSQLiteStorageWithCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage = runtimeconfig.StorageConfig{Provider: "bun", Dialect: "sqlite", DSN: "file:container_test?mode=memory&cache=shared"}
	cfg.Cache.Enabled = true

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	if container.DB() == nil {
		t.Fatal("expected bun database")
	}
	if container.cacheService == nil {
		t.Fatal("expected cache service")
	}

	ctx := context.Background()
	svc := container.PageService()
	if _, err := svc.Upsert(ctx, pages.UpsertPageRequest{
		Locale: "en", Slug: "faq", Title: "FAQ", Template: "content",
		Blocks: []blocks.Block{blocks.Group{Heading: "Billing"}},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	page, err := svc.Get(ctx, "en", "faq")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(page.Blocks) != 1 {
		t.Fatalf("expected stored blocks, got %#v", page.Blocks)
	}
}

func TestContainerWiresGeneratorAndImport(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []string{"en", "es"}
	cfg.Generator.Enabled = true
	cfg.Render.SiteName = "Docs"

	data := fstest.MapFS{
		"en/faq.yml":  {Data: []byte("title: FAQ\ntemplate: content\nblocks:\n  - type: group\n    heading: Billing\n")},
		"es/faq.json": {Data: []byte(`{"title":"Preguntas"}`)},
	}
	writer := generator.NewMemoryWriter()
	reg := fixtures.NewRecordingRegistry()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	container, err := NewContainer(cfg,
		WithDataFS(data),
		WithArtifactWriter(writer),
		WithCommandRegistry(reg),
		WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if len(reg.Handlers) != 2 {
		t.Fatalf("expected two registered handlers, got %d", len(reg.Handlers))
	}

	ctx := context.Background()
	if err := container.Commands().Import.Execute(ctx, sitecmd.ImportPagesCommand{Directory: "."}); err != nil {
		t.Fatalf("import: %v", err)
	}
	result, err := container.GeneratorService().Build(ctx, generator.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Pages != 2 {
		t.Fatalf("expected two pages, got %d", result.Pages)
	}
	html := string(writer.Files()["en/faq/index.html"])
	if !strings.Contains(html, "FAQ | Docs") || !strings.Contains(html, `href="#billing"`) {
		t.Fatalf("unexpected html %q", html)
	}

	if view := container.ViewOptions(); view.StartLevel != 1 || view.Extractor != container.Extractor() {
		t.Fatalf("unexpected view options %#v", view)
	}
	if drawer := container.NewFilterDrawer(375); !drawer.IsMobile() {
		t.Fatal("expected 375px viewport to be mobile")
	}
}
