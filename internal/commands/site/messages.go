package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/internal/cmsdata"
	"github.com/goliatone/go-cms-site/internal/generator"
)

const (
	importPagesMessageType = "site.pages.import"
	buildSiteMessageType   = "site.build"
)

// ResultCallback receives the outcome of a site command. It is optional and
// invoked synchronously once a result is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope carries whichever result the command produced.
type ResultEnvelope struct {
	Import   *cmsdata.ImportResult
	Build    *generator.BuildResult
	Metadata map[string]any
}

// ImportPagesCommand loads a cmsdata directory into the page store.
type ImportPagesCommand struct {
	Directory      string         `json:"directory"`
	Locales        []string       `json:"locales,omitempty"`
	Strict         bool           `json:"strict,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ImportPagesCommand) Type() string { return importPagesMessageType }

// Validate ensures the directory is present and locales are non-empty.
func (m ImportPagesCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory,
			validation.By(func(any) error {
				if strings.TrimSpace(m.Directory) == "" {
					return validation.NewError("site.pages.import.directory_required", "directory is required")
				}
				return nil
			}),
		),
		validation.Field(&m.Locales, validation.Each(validation.By(nonEmptyLocale("site.pages.import.locale_invalid")))),
	)
}

// BuildSiteCommand renders every stored page to static HTML.
type BuildSiteCommand struct {
	OutputDir      string         `json:"output_dir,omitempty"`
	Locales        []string       `json:"locales,omitempty"`
	Workers        int            `json:"workers,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures locales are well-formed and the worker count is not negative.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, locale := range m.Locales {
		if strings.TrimSpace(locale) == "" {
			errs["locales"] = validation.NewError("site.build.locale_invalid", "locales must not contain empty values")
			break
		}
	}
	if m.Workers < 0 {
		errs["workers"] = validation.NewError("site.build.workers_invalid", "workers must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func nonEmptyLocale(code string) validation.RuleFunc {
	return func(value any) error {
		locale, _ := value.(string)
		if strings.TrimSpace(locale) == "" {
			return validation.NewError(code, "locales must not contain empty values")
		}
		return nil
	}
}

func normalizeLocales(locales []string) []string {
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func invokeCallback(cb ResultCallback, env ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(env)
}
