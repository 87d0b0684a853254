package blocks

import (
	"encoding/json"
	"maps"
)

// Encode converts a block tree back into loosely typed CMS data. Keys a
// variant does not model are carried in its Fields and written back as-is;
// container, ordered, accordion and markdown blocks keep only their modeled
// keys.
func Encode(tree []Block) []any {
	if len(tree) == 0 {
		return nil
	}
	out := make([]any, 0, len(tree))
	for _, b := range tree {
		if payload := EncodeBlock(b); payload != nil {
			out = append(out, payload)
		}
	}
	return out
}

// EncodeJSON encodes a block tree as a JSON array.
func EncodeJSON(tree []Block) ([]byte, error) {
	encoded := Encode(tree)
	if encoded == nil {
		encoded = []any{}
	}
	return json.Marshal(encoded)
}

// EncodeBlock converts a single block. Nil blocks encode to nil.
func EncodeBlock(b Block) map[string]any {
	if b == nil {
		return nil
	}
	var payload map[string]any

	switch v := b.(type) {
	case PageHeader:
		payload = withFields(v.Fields)
		payload["title"] = v.Title
		if v.Description != "" {
			payload["description"] = v.Description
		}
	case Container:
		payload = map[string]any{"blocks": Encode(v.Blocks)}
	case FlexLayout:
		payload = withFields(v.Fields)
		setHeading(payload, v.Heading)
		payload["blocks"] = Encode(v.Blocks)
	case Group:
		payload = withFields(v.Fields)
		setHeading(payload, v.Heading)
		payload["blocks"] = Encode(v.Blocks)
	case OrderedBlock:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			entry := map[string]any{"title": item.Title}
			if len(item.Blocks) > 0 {
				entry["blocks"] = Encode(item.Blocks)
			}
			items = append(items, entry)
		}
		payload = map[string]any{"blocks": items}
	case Accordion:
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, map[string]any{"question": item.Question, "answer": item.Answer})
		}
		payload = map[string]any{"blocks": items}
		if v.Heading != nil {
			payload["heading"] = *v.Heading
		}
	case Markdown:
		payload = map[string]any{"body": v.Body}
	case Generic:
		payload = withFields(v.Fields)
		if v.Title != nil {
			payload["title"] = *v.Title
		}
		if v.Heading != nil {
			payload["heading"] = *v.Heading
		}
	default:
		payload = map[string]any{}
	}

	payload["type"] = string(b.Kind())
	return payload
}

func withFields(fields map[string]any) map[string]any {
	out := maps.Clone(fields)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func setHeading(payload map[string]any, heading string) {
	if heading != "" {
		payload["heading"] = heading
	}
}
