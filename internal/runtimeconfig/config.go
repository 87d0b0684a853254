package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrDefaultLocaleRequired       = errors.New("site config: default locale is required")
	ErrStorageProviderUnknown      = errors.New("site config: storage provider is invalid")
	ErrStorageDialectUnknown       = errors.New("site config: storage dialect is invalid")
	ErrStorageDSNRequired          = errors.New("site config: storage dsn is required for bun storage")
	ErrTOCStartLevelInvalid        = errors.New("site config: toc start level must be at least 1")
	ErrBreakpointInvalid           = errors.New("site config: filter breakpoint must be positive")
	ErrGeneratorOutputDirRequired  = errors.New("site config: generator output directory is required when generator is enabled")
	ErrGeneratorWorkersInvalid     = errors.New("site config: generator workers must be zero or positive")
	ErrCMSDataDirRequired          = errors.New("site config: cms data directory is required when strict loading is enabled")
	ErrLoggingProviderRequired     = errors.New("site config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown      = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid         = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("site config: logging format is invalid")
	ErrCacheRequiresPersistentRepo = errors.New("site config: cache requires bun storage")
)

// Config aggregates the runtime options of the site module.
type Config struct {
	DefaultLocale string
	Locales       []string
	Storage       StorageConfig
	Cache         CacheConfig
	TOC           TOCConfig
	Markdown      MarkdownConfig
	Render        RenderConfig
	Filters       FiltersConfig
	Generator     GeneratorConfig
	CMSData       CMSDataConfig
	Logging       LoggingConfig
	Features      Features
}

// StorageConfig selects the page repository. Provider is "memory" or "bun";
// bun storage needs a Dialect ("sqlite" or "postgres") and a DSN.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
}

// CacheConfig toggles the go-repository-cache wrapper around bun repositories.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// TOCConfig controls table of contents extraction.
type TOCConfig struct {
	StartLevel int
	// CollationLocale is the BCP 47 tag used to order ordered_block items.
	CollationLocale string
	// Templates lists the page templates that render a table of contents.
	Templates []string
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// RenderConfig captures presentation strings used by the HTML renderer.
type RenderConfig struct {
	SiteName  string
	HomeLabel string
}

// FiltersConfig configures the mobile filter drawer.
type FiltersConfig struct {
	// LargeBreakpoint is the viewport width, in CSS pixels, from which the
	// layout is no longer considered mobile.
	LargeBreakpoint int
}

// GeneratorConfig controls static builds.
type GeneratorConfig struct {
	Enabled       bool
	OutputDir     string
	Workers       int
	RenderTimeout time.Duration
}

// CMSDataConfig points at a directory of page documents.
type CMSDataConfig struct {
	Dir    string
	Strict bool
}

// LoggingConfig captures provider specific logging options.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional behaviour.
type Features struct {
	Logger bool
}

// DefaultConfig returns defaults matching the reference site.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			TTL: time.Minute,
		},
		TOC: TOCConfig{
			StartLevel:      1,
			CollationLocale: "en",
			Templates:       []string{"content"},
		},
		Render: RenderConfig{
			HomeLabel: "Home",
		},
		Filters: FiltersConfig{
			LargeBreakpoint: 992,
		},
		Generator: GeneratorConfig{
			OutputDir: "dist",
		},
		CMSData: CMSDataConfig{
			Dir: "_data",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks and returns the first violation.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
		if cfg.Cache.Enabled {
			return ErrCacheRequiresPersistentRepo
		}
	case "bun":
		if dialect := normalize(cfg.Storage.Dialect); !slices.Contains([]string{"", "sqlite", "postgres"}, dialect) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.TOC.StartLevel < 1 {
		return ErrTOCStartLevelInvalid
	}
	if cfg.Filters.LargeBreakpoint <= 0 {
		return ErrBreakpointInvalid
	}
	if cfg.Generator.Workers < 0 {
		return ErrGeneratorWorkersInvalid
	}
	if cfg.Generator.Enabled && strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if cfg.CMSData.Strict && strings.TrimSpace(cfg.CMSData.Dir) == "" {
		return ErrCMSDataDirRequired
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := normalize(cfg.Logging.Level); level != "" && !slices.Contains(supportedLevels, level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := normalize(cfg.Logging.Format); provider == "gologger" && format != "" && !slices.Contains(supportedFormats, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ShowsTOC reports whether pages using template render a table of contents.
func (cfg TOCConfig) ShowsTOC(template string) bool {
	return slices.Contains(cfg.Templates, strings.TrimSpace(template))
}

var (
	supportedLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	supportedFormats = []string{"json", "console", "pretty"}
)

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
