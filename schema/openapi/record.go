package openapi

import (
	cascade "github.com/goliatone/go-cascade"
)

// field is one FilterRecord key derived from a top-level category.
type field struct {
	key      string
	label    string
	enum     []any
	disabled []string
}

// fieldsFor lists the string-keyed categories of tree in catalog order. Each
// non-string leaf value is accepted both typed and in its stringified form,
// matching how records are resolved against the catalog. Disabled leaves
// follow policy.
func fieldsFor(tree cascade.Tree, policy DisabledPolicy) []field {
	var fields []field
	for _, category := range tree.Categories() {
		if category.Value.Kind() != cascade.KindString {
			continue
		}
		f := field{
			key:   category.Value.String(),
			label: category.Label,
			enum:  []any{},
		}
		seen := map[any]struct{}{}
		add := func(v any) {
			if _, ok := seen[v]; ok {
				return
			}
			seen[v] = struct{}{}
			f.enum = append(f.enum, v)
		}
		for _, child := range category.Children {
			if child.IsCategory() || !child.Value.IsValid() {
				continue
			}
			disabled := child.Disabled || category.Disabled
			if disabled && policy == DisabledReject {
				continue
			}
			add(child.Value.Interface())
			if child.Value.Kind() != cascade.KindString {
				add(child.Value.String())
			}
			if disabled {
				f.disabled = append(f.disabled, child.Value.String())
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func valueSchema(f field) map[string]any {
	schema := map[string]any{
		"enum": f.enum,
	}
	if f.label != "" {
		schema["title"] = f.label
	}
	if len(f.disabled) > 0 {
		schema["x-disabled"] = append([]string{}, f.disabled...)
	}
	return schema
}

func entrySchema(value map[string]any) map[string]any {
	return map[string]any{
		"oneOf": []any{
			value,
			map[string]any{
				"type":        "array",
				"items":       value,
				"uniqueItems": true,
			},
		},
	}
}

// RecordSchema returns a self-contained JSON Schema for the FilterRecord
// accepted by tree: one optional property per category holding a leaf value
// or a list of leaf values. Unknown keys are rejected. Only
// WithDisabledValues affects the result.
func RecordSchema(tree cascade.Tree, opts ...GeneratorOption) map[string]any {
	cfg := newGeneratorConfig(opts)
	properties := map[string]any{}
	for _, f := range fieldsFor(tree, cfg.record.disabled) {
		properties[f.key] = entrySchema(valueSchema(f))
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}
