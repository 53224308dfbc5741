package openapi

import (
	"fmt"
	"sort"
	"strings"
)

type openAPIDocumentBuilder struct {
	config   generatorConfig
	registry *componentRegistry
	fields   []field
}

func newOpenAPIDocumentBuilder(config generatorConfig, registry *componentRegistry, fields []field) *openAPIDocumentBuilder {
	return &openAPIDocumentBuilder{
		config:   config,
		registry: registry,
		fields:   fields,
	}
}

func (b *openAPIDocumentBuilder) build() (map[string]any, error) {
	valueRefs := make([]string, len(b.fields))
	properties := make(map[string]any, len(b.fields))
	for i, f := range b.fields {
		valueRefs[i] = b.registry.register(combineComponentName(b.config.record.component, f.key), valueSchema(f))
		properties[f.key] = entrySchema(map[string]any{"$ref": valueRefs[i]})
	}
	recordRef := b.registry.register(b.config.record.component, map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	})

	document := map[string]any{
		"openapi": b.config.openAPIVersion,
		"info":    b.buildInfo(),
		"paths":   b.buildPaths(valueRefs, recordRef),
	}

	if components := b.registry.componentsMap(); components != nil {
		document["components"] = map[string]any{
			"schemas": components,
		}
	}

	if err := validateDocument(document); err != nil {
		return nil, err
	}

	return document, nil
}

func (b *openAPIDocumentBuilder) buildInfo() map[string]any {
	info := map[string]any{
		"title":   b.config.info.Title,
		"version": b.config.info.Version,
	}
	if b.config.info.Description != "" {
		info["description"] = b.config.info.Description
	}
	return info
}

func (b *openAPIDocumentBuilder) method() string {
	if b.config.isQuery() {
		return "get"
	}
	return b.config.listing.Method
}

func (b *openAPIDocumentBuilder) buildPaths(valueRefs []string, recordRef string) map[string]any {
	method := b.method()

	responses := make(map[string]any, len(b.config.responses))
	statuses := make([]string, 0, len(b.config.responses))
	for status := range b.config.responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		responses[status] = map[string]any{
			"description": b.config.responses[status],
		}
	}

	operation := map[string]any{
		"operationId": b.operationID(),
		"responses":   responses,
	}
	if b.config.isQuery() {
		operation["parameters"] = b.queryParameters(valueRefs)
	} else {
		operation["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				b.config.listing.ContentType: map[string]any{
					"schema": map[string]any{"$ref": recordRef},
				},
			},
		}
	}
	if summary := strings.TrimSpace(b.config.listing.Summary); summary != "" {
		operation["summary"] = summary
	}

	return map[string]any{
		b.config.listing.Path: map[string]any{
			method: operation,
		},
	}
}

// queryParameters emits one query parameter per record key in catalog order.
// ListRepeated matches FilterRecord.Query; ListComma joins values.
func (b *openAPIDocumentBuilder) queryParameters(valueRefs []string) []any {
	explode := b.config.record.lists != ListComma
	params := make([]any, 0, len(b.fields))
	for i, f := range b.fields {
		param := map[string]any{
			"name":     f.key,
			"in":       "query",
			"required": false,
			"style":    "form",
			"explode":  explode,
			"schema": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": valueRefs[i]},
			},
		}
		if f.label != "" {
			param["description"] = f.label
		}
		params = append(params, param)
	}
	return params
}

func (b *openAPIDocumentBuilder) operationID() string {
	if b.config.listing.OperationID != "" {
		return b.config.listing.OperationID
	}
	return fmt.Sprintf("%s:%s", b.method(), b.config.listing.Path)
}

func combineComponentName(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	if len(filtered) == 0 {
		return "Schema"
	}
	return strings.Join(filtered, "_")
}

func validateDocument(document map[string]any) error {
	if document == nil {
		return fmt.Errorf("openapi: document cannot be nil")
	}
	openapi, _ := document["openapi"].(string)
	if openapi == "" {
		return fmt.Errorf("openapi: document missing version string")
	}
	info, _ := document["info"].(map[string]any)
	if info == nil {
		return fmt.Errorf("openapi: document missing info section")
	}
	if title, _ := info["title"].(string); title == "" {
		return fmt.Errorf("openapi: info.title must be set")
	}
	if version, _ := info["version"].(string); version == "" {
		return fmt.Errorf("openapi: info.version must be set")
	}
	paths, _ := document["paths"].(map[string]any)
	if len(paths) == 0 {
		return fmt.Errorf("openapi: document must define at least one path")
	}
	for pathKey, pathValue := range paths {
		if !strings.HasPrefix(pathKey, "/") {
			return fmt.Errorf("openapi: path %q must start with /", pathKey)
		}
		pathItem, _ := pathValue.(map[string]any)
		if len(pathItem) == 0 {
			return fmt.Errorf("openapi: path %q missing operations", pathKey)
		}
		for method, operationValue := range pathItem {
			operation, _ := operationValue.(map[string]any)
			if operation == nil {
				return fmt.Errorf("openapi: operation %s %s invalid payload", method, pathKey)
			}
			if _, ok := operation["operationId"].(string); !ok {
				return fmt.Errorf("openapi: operation %s %s missing operationId", method, pathKey)
			}
			_, hasParams := operation["parameters"]
			_, hasBody := operation["requestBody"]
			if !hasParams && !hasBody {
				return fmt.Errorf("openapi: operation %s %s takes no filter record", method, pathKey)
			}
			if responses, _ := operation["responses"].(map[string]any); len(responses) == 0 {
				return fmt.Errorf("openapi: operation %s %s missing responses", method, pathKey)
			}
		}
	}
	return nil
}
