// Package generator exposes the static site generation API for site hosts.
// Use NewService with Config and Dependencies to prerender every stored page.
package generator

import internal "github.com/goliatone/go-cms-site/internal/generator"

type (
	Service        = internal.Service
	Config         = internal.Config
	BuildOptions   = internal.BuildOptions
	BuildResult    = internal.BuildResult
	RenderedPage   = internal.RenderedPage
	Dependencies   = internal.Dependencies
	PageRenderer   = internal.PageRenderer
	ArtifactWriter = internal.ArtifactWriter
	MemoryWriter   = internal.MemoryWriter
)

var ErrServiceDisabled = internal.ErrServiceDisabled

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a generator whose builds fail with ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}

// NewFilesystemWriter writes artifacts below root.
func NewFilesystemWriter(root string) ArtifactWriter {
	return internal.NewFilesystemWriter(root)
}

// NewMemoryWriter keeps artifacts in memory.
func NewMemoryWriter() *MemoryWriter {
	return internal.NewMemoryWriter()
}
