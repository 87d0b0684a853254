package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-cms-site/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "missing default locale",
			mutate: func(c *runtimeconfig.Config) { c.DefaultLocale = " " },
			want:   runtimeconfig.ErrDefaultLocaleRequired,
		},
		{
			name:   "unknown storage provider",
			mutate: func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "bun without dsn",
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = "bun"
				c.Storage.Dialect = "sqlite"
			},
			want: runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name: "bun with unknown dialect",
			mutate: func(c *runtimeconfig.Config) {
				c.Storage = runtimeconfig.StorageConfig{Provider: "bun", Dialect: "mysql", DSN: "x"}
			},
			want: runtimeconfig.ErrStorageDialectUnknown,
		},
		{
			name:   "cache with memory storage",
			mutate: func(c *runtimeconfig.Config) { c.Cache.Enabled = true },
			want:   runtimeconfig.ErrCacheRequiresPersistentRepo,
		},
		{
			name:   "toc start level",
			mutate: func(c *runtimeconfig.Config) { c.TOC.StartLevel = 0 },
			want:   runtimeconfig.ErrTOCStartLevelInvalid,
		},
		{
			name:   "breakpoint",
			mutate: func(c *runtimeconfig.Config) { c.Filters.LargeBreakpoint = 0 },
			want:   runtimeconfig.ErrBreakpointInvalid,
		},
		{
			name: "generator output dir",
			mutate: func(c *runtimeconfig.Config) {
				c.Generator.Enabled = true
				c.Generator.OutputDir = ""
			},
			want: runtimeconfig.ErrGeneratorOutputDirRequired,
		},
		{
			name:   "generator workers",
			mutate: func(c *runtimeconfig.Config) { c.Generator.Workers = -1 },
			want:   runtimeconfig.ErrGeneratorWorkersInvalid,
		},
		{
			name: "logging provider required",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = ""
			},
			want: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "logging provider unknown",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "syslog"
			},
			want: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "logging format invalid",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTOCConfigShowsTOC(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().TOC
	if !cfg.ShowsTOC("content") {
		t.Fatal("expected content template to show toc")
	}
	if cfg.ShowsTOC("landing") {
		t.Fatal("expected landing template to hide toc")
	}
}
