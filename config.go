package cms

import "github.com/goliatone/go-cms-site/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired       = runtimeconfig.ErrDefaultLocaleRequired
	ErrStorageProviderUnknown      = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown       = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired          = runtimeconfig.ErrStorageDSNRequired
	ErrTOCStartLevelInvalid        = runtimeconfig.ErrTOCStartLevelInvalid
	ErrBreakpointInvalid           = runtimeconfig.ErrBreakpointInvalid
	ErrGeneratorOutputDirRequired  = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorWorkersInvalid     = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrCMSDataDirRequired          = runtimeconfig.ErrCMSDataDirRequired
	ErrLoggingProviderRequired     = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheRequiresPersistentRepo = runtimeconfig.ErrCacheRequiresPersistentRepo
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	TOCConfig       = runtimeconfig.TOCConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	RenderConfig    = runtimeconfig.RenderConfig
	FiltersConfig   = runtimeconfig.FiltersConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	CMSDataConfig   = runtimeconfig.CMSDataConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
