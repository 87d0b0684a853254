package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := provider.GetLogger("site.toc")
	logger = logging.WithFields(logger, map[string]any{"module": "site.toc"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"page": "faq"})
	logger = logger.WithContext(ctx)

	logger.Info("toc.extracted", "headings", 3, "title", "Getting started")

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26Z INFO toc.extracted headings=3 logger=site.toc module=site.toc page=faq title="Getting started"`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.ParseLevel("warn")
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("site.test")
	logger.Info("ignored.info")
	logger.Error("included.error", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "included.error") || !strings.Contains(lines[0], "error=boom") {
		t.Fatalf("unexpected log line %s", lines[0])
	}
}

func TestConsoleLogger_OddArgumentsArePositional(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("site.test").Warn("odd", "key", "value", "dangling")

	if !strings.Contains(buf.String(), "field_1=dangling") {
		t.Fatalf("expected dangling argument as positional field, got %q", buf.String())
	}
}
