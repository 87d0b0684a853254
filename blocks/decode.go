package blocks

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Decode builds a block tree from loosely typed CMS data such as the output of
// encoding/json or yaml.v3. Malformed entries degrade to empty values and
// non-object entries are skipped; Decode never fails.
func Decode(raw []any) []Block {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Block, 0, len(raw))
	for _, entry := range raw {
		payload, ok := asMap(entry)
		if !ok {
			continue
		}
		out = append(out, DecodeBlock(payload))
	}
	return out
}

// DecodeJSON decodes a JSON array of blocks. Only syntax errors are reported.
func DecodeJSON(data []byte) ([]Block, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("blocks: decode json: %w", err)
	}
	return Decode(raw), nil
}

// DecodeBlock converts a single block payload.
func DecodeBlock(payload map[string]any) Block {
	kind := Kind(stringOf(payload["type"]))

	switch kind {
	case KindPageHeader:
		return PageHeader{
			Title:       stringOf(payload["title"]),
			Description: stringOf(payload["description"]),
			Fields:      extraFields(payload, "title", "description"),
		}
	case KindContainer:
		return Container{Blocks: Decode(listOf(payload["blocks"]))}
	case KindFlexLayout:
		return FlexLayout{
			Heading: stringOf(payload["heading"]),
			Blocks:  Decode(listOf(payload["blocks"])),
			Fields:  extraFields(payload, "heading", "blocks"),
		}
	case KindGroup:
		return Group{
			Heading: stringOf(payload["heading"]),
			Blocks:  Decode(listOf(payload["blocks"])),
			Fields:  extraFields(payload, "heading", "blocks"),
		}
	case KindOrderedBlock:
		var items []OrderedItem
		for _, entry := range listOf(payload["blocks"]) {
			item, ok := asMap(entry)
			if !ok {
				continue
			}
			items = append(items, OrderedItem{
				Title:  stringOf(item["title"]),
				Blocks: Decode(listOf(item["blocks"])),
			})
		}
		return OrderedBlock{Items: items}
	case KindAccordion:
		var items []AccordionItem
		for _, entry := range listOf(payload["blocks"]) {
			item, ok := asMap(entry)
			if !ok {
				continue
			}
			items = append(items, AccordionItem{
				Question: stringOf(item["question"]),
				Answer:   stringOf(item["answer"]),
			})
		}
		return Accordion{Heading: optionalString(payload, "heading"), Items: items}
	case KindMarkdown:
		return Markdown{Body: stringOf(payload["body"])}
	}

	generic := Generic{
		Type:    kind,
		Heading: optionalString(payload, "heading"),
		Fields:  extraFields(payload, "title", "heading"),
	}
	if value, ok := payload["title"]; ok {
		title := stringOf(value)
		generic.Title = &title
	}
	return generic
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func listOf(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = typed[i]
		}
		return out
	default:
		return nil
	}
}

func stringOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case bool, int, int64, float64:
		return fmt.Sprint(typed)
	default:
		return ""
	}
}

func optionalString(payload map[string]any, key string) *string {
	value, ok := payload[key]
	if !ok || value == nil {
		return nil
	}
	s := stringOf(value)
	return &s
}

// extraFields keeps every key of payload except "type" and the keys the
// variant models itself.
func extraFields(payload map[string]any, modeled ...string) map[string]any {
	fields := maps.Clone(payload)
	delete(fields, "type")
	for _, key := range modeled {
		delete(fields, key)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
