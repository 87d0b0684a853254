package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunPageRepository struct {
	repo repository.Repository[*Page]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a PageRepository backed by bun with optional caching.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	return &BunPageRepository{
		repo: wrapWithCache(NewPageRepository(db), cacheService, keySerializer),
	}
}

// RegisterModels creates the page table when it is missing.
func RegisterModels(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*Page)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create table site_pages: %w", err)
	}
	return nil
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.Locale, record.Slug)
	}
	return created, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, locale, slug string) (*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.locale = ?", locale).Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, locale, slug)
	}
	if len(records) == 0 {
		return nil, &PageNotFoundError{Locale: locale, Key: slug}
	}
	return records[0], nil
}

func (r *BunPageRepository) List(ctx context.Context, locale string) ([]*Page, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if locale != "" {
			q = q.Where("?TableAlias.locale = ?", locale)
		}
		return q.Order("locale ASC", "slug ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, locale, "")
	}
	return records, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"locale",
			"slug",
			"title",
			"template",
			"breadcrumbs",
			"breadcrumbs_data",
			"page_last_updated",
			"gitlog",
			"blocks",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.Locale, record.Slug)
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "", id.String())
	}
	return nil
}

func mapRepositoryError(err error, locale, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{
			Locale: locale,
			Key:    key,
		}
	}

	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
