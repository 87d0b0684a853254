package cmsdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/blocks"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/internal/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"gopkg.in/yaml.v3"
)

var (
	ErrFilesystemRequired = errors.New("cmsdata: filesystem is required")
	ErrNoLocales          = errors.New("cmsdata: no locale directories found")
)

var documentExtensions = []string{".yml", ".yaml", ".json", ".md"}

var gitlogLayouts = []string{time.RFC3339, "2006-01-02 15:04:05 -0700", "2006-01-02"}

// LoaderConfig configures how page documents are discovered.
type LoaderConfig struct {
	// Locales limits loading to these locale directories. Empty loads every
	// top-level directory.
	Locales []string
	// Strict turns schema issues into errors.
	Strict bool
}

// Document is a page document read from disk.
type Document struct {
	Path    string
	Request pages.UpsertPageRequest
}

// LoadResult lists the documents of a directory and the schema issues found
// while reading them in non-strict mode.
type LoadResult struct {
	Documents []Document
	Warnings  []Issue
}

// Loader reads page documents laid out as {locale}/{slug}.{yml,yaml,json,md}.
type Loader struct {
	fs      fs.FS
	locales []string
	strict  bool
	logger  interfaces.Logger
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithLogger attaches a logger to the loader.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig, opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      filesystem,
		locales: append([]string(nil), cfg.Locales...),
		strict:  cfg.Strict,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every page document under the locale directories of root.
func (l *Loader) Load(ctx context.Context, root string) (*LoadResult, error) {
	if l.fs == nil {
		return nil, ErrFilesystemRequired
	}
	root = path.Clean(strings.TrimPrefix(strings.TrimSpace(root), "/"))
	if root == "" {
		root = "."
	}

	locales, err := l.localeDirs(root)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for _, locale := range locales {
		localeRoot := path.Join(root, locale)
		walkErr := fs.WalkDir(l.fs, localeRoot, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !slices.Contains(documentExtensions, strings.ToLower(path.Ext(p))) {
				return nil
			}
			doc, issues, err := l.loadFile(p, localeRoot, locale)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				if l.strict {
					return &PayloadValidationError{Path: p, Issues: issues}
				}
				for _, issue := range issues {
					l.logger.Warn("cmsdata.schema_issue", "path", p, "location", issue.Location, "message", issue.Message)
				}
				result.Warnings = append(result.Warnings, issues...)
			}
			result.Documents = append(result.Documents, doc)
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	l.logger.Info("cmsdata.loaded", "root", root, "documents", len(result.Documents), "warnings", len(result.Warnings))
	return result, nil
}

func (l *Loader) localeDirs(root string) ([]string, error) {
	if len(l.locales) > 0 {
		return append([]string(nil), l.locales...), nil
	}
	entries, err := fs.ReadDir(l.fs, root)
	if err != nil {
		return nil, fmt.Errorf("cmsdata: read %s: %w", root, err)
	}
	var locales []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			locales = append(locales, entry.Name())
		}
	}
	if len(locales) == 0 {
		return nil, ErrNoLocales
	}
	sort.Strings(locales)
	return locales, nil
}

func (l *Loader) loadFile(p, localeRoot, locale string) (Document, []Issue, error) {
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return Document{}, nil, fmt.Errorf("cmsdata: read %s: %w", p, err)
	}

	req, issues, err := ParseDocument(p, data)
	if err != nil {
		return Document{}, nil, err
	}
	if req.Locale == "" {
		req.Locale = locale
	}
	if req.Slug == "" {
		rel := strings.TrimPrefix(p, localeRoot+"/")
		req.Slug = strings.TrimSuffix(rel, path.Ext(rel))
	}
	return Document{Path: p, Request: req}, issues, nil
}

// ParseDocument decodes a single page document. The format follows the
// extension of name. Locale and slug are left empty unless the document sets
// them.
func ParseDocument(name string, data []byte) (pages.UpsertPageRequest, []Issue, error) {
	payload, err := decodePayload(name, data)
	if err != nil {
		return pages.UpsertPageRequest{}, nil, err
	}
	issues, err := ValidatePage(name, payload)
	if err != nil {
		return pages.UpsertPageRequest{}, nil, err
	}
	req, decodeIssues, err := buildRequest(name, payload)
	if err != nil {
		return pages.UpsertPageRequest{}, nil, fmt.Errorf("cmsdata: %s: %w", name, err)
	}
	for _, issue := range decodeIssues {
		if !hasIssueAt(issues, issue.Location) {
			issues = append(issues, issue)
		}
	}
	return req, issues, nil
}

func hasIssueAt(issues []Issue, location string) bool {
	for _, issue := range issues {
		if issue.Location == location {
			return true
		}
	}
	return false
}

// decodePayload returns the document as JSON-shaped data so the schema
// validator and the block decoder see the same values for every format.
func decodePayload(p string, data []byte) (map[string]any, error) {
	var raw any
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("cmsdata: decode %s: %w", p, err)
		}
	case ".md":
		meta, body, err := markdown.SplitFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("cmsdata: %s: %w", p, err)
		}
		if strings.TrimSpace(string(body)) != "" {
			existing, _ := meta["blocks"].([]any)
			meta["blocks"] = append(existing, map[string]any{
				"type": string(blocks.KindMarkdown),
				"body": string(body),
			})
		}
		raw = meta
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("cmsdata: decode %s: %w", p, err)
		}
	}

	encoded, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("cmsdata: normalise %s: %w", p, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("cmsdata: %s: document must be an object: %w", p, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// normalize converts YAML-decoded values into JSON-encodable ones.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[key] = normalize(nested)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[fmt.Sprint(key)] = normalize(nested)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = normalize(nested)
		}
		return out
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

type pageDocument struct {
	Locale          string                `json:"locale"`
	Slug            string                `json:"slug"`
	Title           string                `json:"title"`
	Template        string                `json:"template"`
	Breadcrumbs     bool                  `json:"breadcrumbs"`
	BreadcrumbsData []pages.BreadcrumbRef `json:"breadcrumbs_data"`
	PageLastUpdated bool                  `json:"page_last_updated"`
	GitLog          *struct {
		Date string `json:"date"`
	} `json:"gitlog"`
	Blocks []any `json:"blocks"`
}

// buildRequest maps the payload onto a page request. Fields that do not
// decode and gitlog dates that do not parse are reported as issues and left
// unset.
func buildRequest(name string, payload map[string]any) (pages.UpsertPageRequest, []Issue, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return pages.UpsertPageRequest{}, nil, err
	}

	var issues []Issue
	var doc pageDocument
	if err := json.Unmarshal(encoded, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return pages.UpsertPageRequest{}, nil, err
		}
		issues = append(issues, Issue{
			Path:     name,
			Location: "/" + strings.ReplaceAll(typeErr.Field, ".", "/"),
			Message:  fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		})
	}

	req := pages.UpsertPageRequest{
		Locale:          strings.TrimSpace(doc.Locale),
		Slug:            strings.TrimSpace(doc.Slug),
		Title:           doc.Title,
		Template:        doc.Template,
		Breadcrumbs:     doc.Breadcrumbs,
		BreadcrumbsData: doc.BreadcrumbsData,
		PageLastUpdated: doc.PageLastUpdated,
		Blocks:          blocks.Decode(doc.Blocks),
	}
	if doc.GitLog != nil && strings.TrimSpace(doc.GitLog.Date) != "" {
		date, err := parseGitlogDate(doc.GitLog.Date)
		if err != nil {
			issues = append(issues, Issue{Path: name, Location: "/gitlog/date", Message: err.Error()})
		} else {
			req.GitLog = &pages.GitLog{Date: date}
		}
	}
	return req, issues, nil
}

func parseGitlogDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range gitlogLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("gitlog date %q is not a recognised timestamp", value)
}
