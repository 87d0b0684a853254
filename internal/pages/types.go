package pages

import (
	"maps"
	"time"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a CMS page document addressed by locale and slug.
type Page struct {
	bun.BaseModel `bun:"table:site_pages,alias:sp"`

	ID              uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	Locale          string          `bun:"locale,notnull" json:"locale"`
	Slug            string          `bun:"slug,notnull" json:"slug"`
	Title           string          `bun:"title,notnull" json:"title"`
	Template        string          `bun:"template" json:"template,omitempty"`
	Breadcrumbs     bool            `bun:"breadcrumbs,notnull,default:false" json:"breadcrumbs"`
	BreadcrumbsData []BreadcrumbRef `bun:"breadcrumbs_data,type:jsonb" json:"breadcrumbs_data,omitempty"`
	PageLastUpdated bool            `bun:"page_last_updated,notnull,default:false" json:"page_last_updated"`
	GitLog          *GitLog         `bun:"gitlog,type:jsonb" json:"gitlog,omitempty"`
	RawBlocks       []any           `bun:"blocks,type:jsonb" json:"blocks"`
	CreatedAt       time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// Blocks is the typed view of RawBlocks, filled by the service.
	Blocks []blocks.Block `bun:"-" json:"-"`
}

// BreadcrumbRef points at a parent page shown in the breadcrumb trail.
type BreadcrumbRef struct {
	Locale string `json:"locale" yaml:"locale"`
	Slug   string `json:"slug" yaml:"slug"`
	Title  string `json:"title" yaml:"title"`
}

// GitLog carries the last commit information of the page source.
type GitLog struct {
	Date time.Time `json:"date" yaml:"date"`
}

func clonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	if p.BreadcrumbsData != nil {
		cloned.BreadcrumbsData = append([]BreadcrumbRef(nil), p.BreadcrumbsData...)
	}
	if p.GitLog != nil {
		gitlog := *p.GitLog
		cloned.GitLog = &gitlog
	}
	cloned.RawBlocks = cloneRaw(p.RawBlocks)
	if p.Blocks != nil {
		cloned.Blocks = append([]blocks.Block(nil), p.Blocks...)
	}
	return &cloned
}

func clonePages(records []*Page) []*Page {
	if len(records) == 0 {
		return nil
	}
	out := make([]*Page, 0, len(records))
	for _, record := range records {
		out = append(out, clonePage(record))
	}
	return out
}

func cloneRaw(raw []any) []any {
	if raw == nil {
		return nil
	}
	out := make([]any, len(raw))
	for i, value := range raw {
		out[i] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := maps.Clone(v)
		for key, nested := range out {
			out[key] = cloneValue(nested)
		}
		return out
	case []any:
		return cloneRaw(v)
	default:
		return v
	}
}
