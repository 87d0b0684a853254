package cmsdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cms-site/internal/pages"
)

var ErrServiceRequired = errors.New("cmsdata: page service is required")

// ImportResult summarises an import run.
type ImportResult struct {
	Imported int
	Warnings []Issue
	Failed   []string
}

// Importer loads page documents and stores them through the page service.
type Importer struct {
	loader *Loader
	pages  pages.Service
}

// NewImporter constructs an importer.
func NewImporter(loader *Loader, svc pages.Service) *Importer {
	return &Importer{loader: loader, pages: svc}
}

// Import loads root and upserts every document. Documents the page service
// rejects are listed in Failed and joined into the returned error; the rest
// are still stored. In strict mode a schema issue aborts before any write.
func (i *Importer) Import(ctx context.Context, root string) (*ImportResult, error) {
	if i.pages == nil {
		return nil, ErrServiceRequired
	}
	loaded, err := i.loader.Load(ctx, root)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Warnings: loaded.Warnings}
	var errs []error
	for _, doc := range loaded.Documents {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := i.pages.Upsert(ctx, doc.Request); err != nil {
			result.Failed = append(result.Failed, doc.Path)
			errs = append(errs, fmt.Errorf("%s: %w", doc.Path, err))
			i.loader.logger.Error("cmsdata.import_failed", "path", doc.Path, "error", err)
			continue
		}
		result.Imported++
	}
	return result, errors.Join(errs...)
}
