package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestPageRepository_WithBunAndCache(t *testing.T) {
	ctx := context.Background()

	sqlDB := testsupport.NewSQLiteMemoryDB(t)

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := pages.RegisterModels(ctx, bunDB); err != nil {
		t.Fatalf("register models: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	repo := pages.NewBunPageRepositoryWithCache(bunDB, cacheSvc, keySerializer)
	svc := pages.NewService(repo, pages.WithClock(func() time.Time { return now }))

	created, err := svc.Upsert(ctx, pages.UpsertPageRequest{
		Locale:          "en",
		Slug:            "storage-faq",
		Title:           "Storage FAQ",
		Template:        "content",
		Breadcrumbs:     true,
		BreadcrumbsData: []pages.BreadcrumbRef{{Locale: "en", Slug: "docs", Title: "Docs"}},
		PageLastUpdated: true,
		GitLog:          &pages.GitLog{Date: now.Add(-time.Hour)},
		Blocks: []blocks.Block{
			blocks.Group{Heading: "Backups", Blocks: []blocks.Block{
				blocks.Markdown{Body: "# Snapshots\n\nDaily."},
			}},
			blocks.OrderedBlock{Items: []blocks.OrderedItem{{Title: "Restore"}, {Title: "Export"}}},
		},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	fetched, err := svc.Get(ctx, "en", "storage-faq")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, fetched.ID)
	}
	if len(fetched.BreadcrumbsData) != 1 || fetched.BreadcrumbsData[0].Title != "Docs" {
		t.Fatalf("expected breadcrumbs data to persist, got %#v", fetched.BreadcrumbsData)
	}
	if fetched.GitLog == nil || !fetched.GitLog.Date.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected git log to persist, got %#v", fetched.GitLog)
	}
	if len(fetched.Blocks) != 2 {
		t.Fatalf("expected two stored blocks, got %#v", fetched.Blocks)
	}
	group, ok := fetched.Blocks[0].(blocks.Group)
	if !ok || group.Heading != "Backups" || len(group.Blocks) != 1 {
		t.Fatalf("expected stored group to decode, got %#v", fetched.Blocks[0])
	}
	ordered, ok := fetched.Blocks[1].(blocks.OrderedBlock)
	if !ok || len(ordered.Items) != 2 || ordered.Items[0].Title != "Restore" {
		t.Fatalf("expected stored ordered block, got %#v", fetched.Blocks[1])
	}

	listed, err := svc.List(ctx, "en")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) == 0 {
		t.Fatal("expected listed pages")
	}

	if _, err := repo.GetBySlug(ctx, "en", "missing-page"); err == nil {
		t.Fatal("expected missing page error")
	} else {
		var nf *pages.PageNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected PageNotFoundError, got %v", err)
		}
	}
}
