package cmsdata

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrSchemaValidation = errors.New("cmsdata: page payload failed schema validation")

// Issue captures a single schema violation of a page document.
type Issue struct {
	Path     string
	Location string
	Message  string
}

func (i Issue) String() string {
	location := strings.TrimSpace(i.Location)
	if location == "" {
		location = "#"
	} else if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", location, i.Message)
	}
	return fmt.Sprintf("%s%s: %s", i.Path, location, i.Message)
}

// PayloadValidationError surfaces the schema issues of one page document.
type PayloadValidationError struct {
	Path   string
	Issues []Issue
}

func (e *PayloadValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: %s", ErrSchemaValidation.Error(), e.Path)
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

const pageSchema = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "locale": {"type": "string"},
    "slug": {"type": "string"},
    "title": {"type": "string", "minLength": 1},
    "template": {"type": "string"},
    "breadcrumbs": {"type": "boolean"},
    "breadcrumbs_data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["slug", "title"],
        "properties": {
          "locale": {"type": "string"},
          "slug": {"type": "string", "minLength": 1},
          "title": {"type": "string"}
        }
      }
    },
    "page_last_updated": {"type": "boolean"},
    "gitlog": {
      "type": ["object", "null"],
      "properties": {"date": {"type": "string"}}
    },
    "blocks": {"type": "array", "items": {"$ref": "#/$defs/block"}}
  },
  "$defs": {
    "block": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"type": "string", "minLength": 1},
        "blocks": {"type": "array", "items": {"$ref": "#/$defs/block"}},
        "items": {"type": "array"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func pageSchemaValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("page.json", bytes.NewReader([]byte(pageSchema))); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("page.json")
	})
	return compiledSchema, schemaErr
}

// ValidatePage checks a JSON-shaped page payload against the page schema and
// returns the issues found.
func ValidatePage(path string, payload map[string]any) ([]Issue, error) {
	schema, err := pageSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("cmsdata: compile page schema: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if !errors.As(err, &validationErr) {
			return nil, err
		}
		return collectIssues(path, validationErr), nil
	}
	return nil, nil
}

func collectIssues(path string, err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Path:     path,
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
