package sitecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/internal/generator"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterSiteCommands.
type HandlerSet struct {
	Import *ImportPagesHandler
	Build  *BuildSiteHandler
}

// Dependencies lists the services the site commands call into.
type Dependencies struct {
	Pages     pages.Service
	Generator generator.Service
	Source    ImportSource
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportPagesCommand]
	buildHandlerOpts  []commands.HandlerOption[BuildSiteCommand]
}

// WithImportHandlerOptions forwards options to the ImportPagesHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportPagesCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithBuildHandlerOptions forwards options to the BuildSiteHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// RegisterSiteCommands builds the site command handlers and registers them
// with reg when it is non-nil.
func RegisterSiteCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if deps.Pages == nil {
		return nil, errors.New("site command registration: page service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	importHandler := NewImportPagesHandler(deps.Source, deps.Pages, commands.CommandLogger(provider, "import"), cfg.importHandlerOpts...)
	buildHandler := NewBuildSiteHandler(deps.Generator, commands.CommandLogger(provider, "build"), cfg.buildHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(importHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Import: importHandler,
		Build:  buildHandler,
	}, nil
}

// RegisterBuildCron schedules handler through reg with msg as the payload.
// The handler runs with a background context.
func RegisterBuildCron(reg CronRegistrar, handler *BuildSiteHandler, cfg command.HandlerConfig, msg BuildSiteCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
