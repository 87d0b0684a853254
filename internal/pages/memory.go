package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory page store for scaffolding/tests.
type MemoryPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*Page
	slugIndex map[string]uuid.UUID
}

// NewMemoryPageRepository constructs the repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:     make(map[uuid.UUID]*Page),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied page.
func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := clonePage(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.pages[copied.ID] = copied
	m.slugIndex[slugKey(copied.Locale, copied.Slug)] = copied.ID
	return clonePage(copied), nil
}

// GetBySlug retrieves a page by locale and slug.
func (m *MemoryPageRepository) GetBySlug(_ context.Context, locale, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slugKey(locale, slug)]
	if !ok {
		return nil, &PageNotFoundError{Locale: locale, Key: slug}
	}
	return clonePage(m.pages[id]), nil
}

// List returns pages of the locale ordered by slug.
func (m *MemoryPageRepository) List(_ context.Context, locale string) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.pages))
	for _, page := range m.pages {
		if locale != "" && page.Locale != locale {
			continue
		}
		out = append(out, clonePage(page))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Locale != out[j].Locale {
			return out[i].Locale < out[j].Locale
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// Update replaces the stored page.
func (m *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Locale: record.Locale, Key: record.ID.String()}
	}
	delete(m.slugIndex, slugKey(existing.Locale, existing.Slug))
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[slugKey(copied.Locale, copied.Slug)] = copied.ID
	return clonePage(copied), nil
}

// Delete removes the page with the given id.
func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.slugIndex, slugKey(existing.Locale, existing.Slug))
	delete(m.pages, id)
	return nil
}

func slugKey(locale, slug string) string {
	return locale + "\x00" + slug
}
