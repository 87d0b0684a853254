package bootstrap

import (
	"fmt"
	"strings"

	cms "github.com/goliatone/go-cms-site"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// Options captures configuration shared by the site CLI subcommands.
type Options struct {
	DataDir        string
	OutputDir      string
	Locales        []string
	Strict         bool
	Workers        int
	SiteName       string
	StorageDialect string
	StorageDSN     string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// BuildModule constructs a site module for CLI use. Storage stays in memory
// unless a DSN is supplied.
func BuildModule(opts Options) (*cms.Module, error) {
	cfg := cms.DefaultConfig()

	if dir := strings.TrimSpace(opts.DataDir); dir != "" {
		cfg.CMSData.Dir = dir
	}
	cfg.CMSData.Strict = opts.Strict

	// No locales means every locale directory of the data dir.
	cfg.Locales = cloneStrings(opts.Locales)
	if len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0]
	}

	cfg.Generator.Enabled = true
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Generator.OutputDir = dir
	}
	cfg.Generator.Workers = opts.Workers
	cfg.Render.SiteName = strings.TrimSpace(opts.SiteName)

	if dsn := strings.TrimSpace(opts.StorageDSN); dsn != "" {
		cfg.Storage = cms.StorageConfig{
			Provider: "bun",
			Dialect:  strings.TrimSpace(opts.StorageDialect),
			DSN:      dsn,
		}
		cfg.Cache.Enabled = true
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}

	var moduleOpts []cms.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, cms.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := cms.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise site module: %w", err)
	}
	return module, nil
}

// SplitLocales converts a comma separated list into locale codes.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	return append([]string(nil), values...)
}
