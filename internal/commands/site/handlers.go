package sitecmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-cms-site/internal/cmsdata"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// ErrImportDisabled is returned when the import handler has no source to read from.
var ErrImportDisabled = errors.New("site commands: page import disabled")

// ImportSource describes where import commands read documents from.
type ImportSource struct {
	FS      fs.FS
	Locales []string
}

// ImportPagesHandler loads cmsdata documents and upserts them as pages.
type ImportPagesHandler struct {
	inner *commands.Handler[ImportPagesCommand]
}

// NewImportPagesHandler constructs the import handler. A loader is built per
// message so Strict and Locales apply to that run only.
func NewImportPagesHandler(source ImportSource, service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportPagesCommand]) *ImportPagesHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportPagesCommand) error {
		if source.FS == nil || service == nil {
			return ErrImportDisabled
		}
		locales := source.Locales
		if len(msg.Locales) > 0 {
			locales = normalizeLocales(msg.Locales)
		}
		loader := cmsdata.NewLoader(source.FS, cmsdata.LoaderConfig{
			Locales: locales,
			Strict:  msg.Strict,
		}, cmsdata.WithLogger(baseLogger))

		result, err := cmsdata.NewImporter(loader, service).Import(ctx, msg.Directory)
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Import: result,
			Metadata: map[string]any{
				"operation": "import",
				"directory": msg.Directory,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportPagesCommand]{
		commands.WithLogger[ImportPagesCommand](baseLogger),
		commands.WithOperation[ImportPagesCommand]("site.import"),
		commands.WithMessageFields(func(msg ImportPagesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if len(msg.Locales) > 0 {
				fields["locales"] = len(msg.Locales)
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportPagesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportPagesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportPagesCommand].
func (h *ImportPagesHandler) Execute(ctx context.Context, msg ImportPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildSiteHandler triggers static site builds.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		options := generator.BuildOptions{
			OutputDir: msg.OutputDir,
			Workers:   msg.Workers,
			DryRun:    msg.DryRun,
		}
		if len(msg.Locales) > 0 {
			options.Locales = normalizeLocales(msg.Locales)
		}

		result, err := service.Build(ctx, options)
		operation := "build"
		if msg.DryRun {
			operation = "dry_run"
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Build: result,
			Metadata: map[string]any{
				"operation": operation,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.OutputDir != "" {
				fields["output_dir"] = msg.OutputDir
			}
			if len(msg.Locales) > 0 {
				fields["locales"] = len(msg.Locales)
			}
			if msg.Workers > 0 {
				fields["workers"] = msg.Workers
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
