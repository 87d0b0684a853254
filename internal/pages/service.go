package pages

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/identity"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_/][a-z0-9]+)*$`)

// Service exposes page document operations.
type Service interface {
	Get(ctx context.Context, locale, slug string) (*Page, error)
	List(ctx context.Context, locale string) ([]*Page, error)
	Upsert(ctx context.Context, req UpsertPageRequest) (*Page, error)
	Delete(ctx context.Context, locale, slug string) error
}

// UpsertPageRequest captures the fields required to create or replace a page.
type UpsertPageRequest struct {
	Locale          string
	Slug            string
	Title           string
	Template        string
	Breadcrumbs     bool
	BreadcrumbsData []BreadcrumbRef
	PageLastUpdated bool
	GitLog          *GitLog
	Blocks          []blocks.Block
}

// Validate checks the request shape before it reaches storage.
func (req UpsertPageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Locale, validation.Required.ErrorObject(errorObject(ErrLocaleRequired))),
		validation.Field(&req.Slug,
			validation.Required.ErrorObject(errorObject(ErrSlugRequired)),
			validation.Match(slugPattern).ErrorObject(errorObject(ErrSlugInvalid)),
		),
		validation.Field(&req.Title, validation.Required.ErrorObject(errorObject(ErrTitleRequired))),
		validation.Field(&req.BreadcrumbsData, validation.Each(validation.By(func(value any) error {
			ref, _ := value.(BreadcrumbRef)
			if strings.TrimSpace(ref.Slug) == "" {
				return validation.NewError("pages.breadcrumb.slug_required", "breadcrumb slug is required")
			}
			return nil
		}))),
	)
}

func errorObject(err error) validation.Error {
	code := "pages." + strings.ReplaceAll(strings.TrimPrefix(err.Error(), "pages: "), " ", "_")
	return validation.NewError(code, err.Error())
}

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source (primarily for tests).
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLocales restricts the locales pages may be stored under.
func WithLocales(locales ...string) ServiceOption {
	return func(s *service) {
		s.locales = nil
		for _, locale := range locales {
			if trimmed := strings.TrimSpace(locale); trimmed != "" {
				s.locales = append(s.locales, trimmed)
			}
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	pages   PageRepository
	locales []string
	now     func() time.Time
	logger  interfaces.Logger
}

// NewService constructs a page service instance.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		pages:  repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, locale, slug string) (*Page, error) {
	locale = strings.TrimSpace(locale)
	slug = strings.TrimSpace(slug)
	if locale == "" {
		return nil, ErrLocaleRequired
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	page, err := s.pages.GetBySlug(ctx, locale, slug)
	if err != nil {
		return nil, err
	}
	return hydrate(page), nil
}

func (s *service) List(ctx context.Context, locale string) ([]*Page, error) {
	records, err := s.pages.List(ctx, strings.TrimSpace(locale))
	if err != nil {
		return nil, err
	}
	out := clonePages(records)
	for i, record := range out {
		out[i] = hydrate(record)
	}
	return out, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertPageRequest) (*Page, error) {
	req.Locale = strings.TrimSpace(req.Locale)
	req.Slug = strings.Trim(strings.TrimSpace(req.Slug), "/")
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(s.locales) > 0 && !slices.Contains(s.locales, req.Locale) {
		return nil, ErrUnknownLocale
	}

	logger := logging.WithPageContext(s.logger, req.Locale, req.Slug)
	now := s.now().UTC()

	existing, err := s.pages.GetBySlug(ctx, req.Locale, req.Slug)
	if err != nil {
		var nf *PageNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
		existing = nil
	}

	record := &Page{
		ID:              identity.PageUUID(req.Locale, req.Slug),
		Locale:          req.Locale,
		Slug:            req.Slug,
		Title:           req.Title,
		Template:        strings.TrimSpace(req.Template),
		Breadcrumbs:     req.Breadcrumbs,
		BreadcrumbsData: append([]BreadcrumbRef(nil), req.BreadcrumbsData...),
		PageLastUpdated: req.PageLastUpdated,
		RawBlocks:       blocks.Encode(req.Blocks),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.GitLog != nil {
		gitlog := *req.GitLog
		record.GitLog = &gitlog
	}

	var stored *Page
	if existing == nil {
		stored, err = s.pages.Create(ctx, record)
		if err != nil {
			logger.Error("pages.create_failed", "error", err)
			return nil, err
		}
		logger.Info("pages.created", "page_id", stored.ID)
	} else {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		stored, err = s.pages.Update(ctx, record)
		if err != nil {
			logger.Error("pages.update_failed", "error", err)
			return nil, err
		}
		logger.Info("pages.updated", "page_id", stored.ID)
	}
	return hydrate(clonePage(stored)), nil
}

func (s *service) Delete(ctx context.Context, locale, slug string) error {
	page, err := s.Get(ctx, locale, slug)
	if err != nil {
		return err
	}
	if err := s.pages.Delete(ctx, page.ID); err != nil {
		return err
	}
	logging.WithPageContext(s.logger, page.Locale, page.Slug).Info("pages.deleted", "page_id", page.ID)
	return nil
}

func hydrate(page *Page) *Page {
	if page == nil {
		return nil
	}
	if page.RawBlocks == nil {
		page.RawBlocks = []any{}
	}
	page.Blocks = blocks.Decode(page.RawBlocks)
	return page
}
