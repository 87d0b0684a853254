package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const (
	rootModule      = "site"
	tocModule       = "site.toc"
	pagesModule     = "site.pages"
	renderModule    = "site.render"
	generatorModule = "site.generator"
	cmsdataModule   = "site.cmsdata"
)

// ModuleLogger returns a logger scoped to module, falling back to NoOp when
// provider is nil or hands back nil. The module name is attached as a field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module = strings.TrimSpace(module); module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// TOCLogger returns the logger used by the heading extractor.
func TOCLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tocModule)
}

// PagesLogger returns the logger used by page services and repositories.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// RenderLogger returns the logger used by the HTML renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// GeneratorLogger returns the logger used by static builds.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// CMSDataLogger returns the logger used when loading page documents from disk.
func CMSDataLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cmsdataModule)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
// The map is copied so callers may reuse it.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithPageContext adds locale and slug fields, skipping blank values.
func WithPageContext(logger interfaces.Logger, locale, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields["locale"] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields["slug"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
