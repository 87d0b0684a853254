package generator_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/internal/render"
)

func seedPages(t *testing.T) pages.Service {
	t.Helper()
	svc := pages.NewService(pages.NewMemoryPageRepository())
	requests := []pages.UpsertPageRequest{
		{Locale: "en", Slug: "index", Title: "Home"},
		{Locale: "en", Slug: "docs/faq", Title: "FAQ", Template: "content", Blocks: []blocks.Block{
			blocks.Group{Heading: "Billing"},
		}},
		{Locale: "es", Slug: "faq", Title: "Preguntas"},
	}
	for _, req := range requests {
		if _, err := svc.Upsert(context.Background(), req); err != nil {
			t.Fatalf("seed %s/%s: %v", req.Locale, req.Slug, err)
		}
	}
	return svc
}

func TestBuildWritesEveryPage(t *testing.T) {
	outDir := t.TempDir()
	svc := generator.NewService(generator.Config{OutputDir: outDir, Workers: 2}, generator.Dependencies{
		Pages:    seedPages(t),
		Renderer: render.New(),
	})

	result, err := svc.Build(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.Pages)
	}
	wantOutputs := []string{"en/docs/faq/index.html", "en/index.html", "es/faq/index.html"}
	for i, want := range wantOutputs {
		if result.Rendered[i].Output != want {
			t.Fatalf("rendered[%d]: expected %s, got %s", i, want, result.Rendered[i].Output)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "en", "docs", "faq", "index.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if got := doc.Find("aside.toc a").Text(); got != "Billing" {
		t.Fatalf("expected toc link, got %q", got)
	}
	if lang, _ := doc.Find("html").Attr("lang"); lang != "en" {
		t.Fatalf("expected lang attribute, got %q", lang)
	}
}

func TestBuildFiltersLocalesAndDryRun(t *testing.T) {
	svc := generator.NewService(generator.Config{}, generator.Dependencies{
		Pages:    seedPages(t),
		Renderer: render.New(),
	})

	result, err := svc.Build(context.Background(), generator.BuildOptions{Locales: []string{"es"}, DryRun: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !result.DryRun || result.Pages != 1 || result.Rendered[0].Output != "es/faq/index.html" {
		t.Fatalf("unexpected dry run result %#v", result)
	}
	if len(result.Locales) != 1 || result.Locales[0] != "es" {
		t.Fatalf("unexpected locales %#v", result.Locales)
	}

	if _, err := svc.Build(context.Background(), generator.BuildOptions{}); err == nil {
		t.Fatal("expected missing output directory to fail")
	}
}

type failingRenderer struct {
	slug string
	next generator.PageRenderer
}

func (f failingRenderer) Render(w io.Writer, view pages.View) error {
	if view.Slug == f.slug {
		return errors.New("boom")
	}
	return f.next.Render(w, view)
}

func TestBuildCollectsPageErrors(t *testing.T) {
	writer := generator.NewMemoryWriter()
	svc := generator.NewService(generator.Config{}, generator.Dependencies{
		Pages:    seedPages(t),
		Renderer: failingRenderer{slug: "index", next: render.New()},
		Writer:   writer,
	})

	result, err := svc.Build(context.Background(), generator.BuildOptions{Workers: 1})
	if err == nil {
		t.Fatal("expected build error")
	}
	if result.Pages != 2 || len(result.Errors) != 1 {
		t.Fatalf("expected two pages and one error, got %d pages %d errors", result.Pages, len(result.Errors))
	}
	files := writer.Files()
	if _, ok := files["en/index.html"]; ok {
		t.Fatal("expected failed page to be skipped")
	}
	if _, ok := files["es/faq/index.html"]; !ok {
		t.Fatalf("expected es page to be written, got %v", files)
	}
}

func TestBuildPageAndDisabledService(t *testing.T) {
	writer := generator.NewMemoryWriter()
	svc := generator.NewService(generator.Config{}, generator.Dependencies{
		Pages:    seedPages(t),
		Renderer: render.New(),
		Writer:   writer,
	})
	rendered, err := svc.BuildPage(context.Background(), "en", "index")
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	if rendered.Output != "en/index.html" || rendered.Bytes == 0 {
		t.Fatalf("unexpected rendered page %#v", rendered)
	}

	if _, err := generator.NewDisabledService().Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestBuildHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := generator.NewService(generator.Config{}, generator.Dependencies{
		Pages:    seedPages(t),
		Renderer: render.New(),
		Writer:   generator.NewMemoryWriter(),
	})
	if _, err := svc.Build(ctx, generator.BuildOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
