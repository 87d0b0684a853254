package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-cms-site/internal/generator"
)

func TestBuildModuleEnablesGenerator(t *testing.T) {
	module, err := BuildModule(Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	defer module.Close()

	if _, err := module.Generator().Build(context.Background(), generator.BuildOptions{DryRun: true}); errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatal("expected generator to be enabled")
	}
}

func TestBuildModuleRejectsUnknownDialect(t *testing.T) {
	if _, err := BuildModule(Options{StorageDSN: "x", StorageDialect: "oracle"}); err == nil {
		t.Fatal("expected unknown dialect to fail")
	}
}

func TestSplitLocales(t *testing.T) {
	got := SplitLocales(" en, ,es ")
	if len(got) != 2 || got[0] != "en" || got[1] != "es" {
		t.Fatalf("unexpected locales %#v", got)
	}
	if SplitLocales("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
