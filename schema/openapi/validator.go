package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	cascade "github.com/goliatone/go-cascade"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const recordSchemaURL = "https://cascade.schemas.local/filter-record.schema.json"

// Validator checks FilterRecord payloads against the schema derived from a
// catalog.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles RecordSchema(tree, opts...). With
// WithDisabledValues(DisabledReject) records naming disabled leaves fail.
func NewValidator(tree cascade.Tree, opts ...GeneratorOption) (*Validator, error) {
	raw, err := json.Marshal(RecordSchema(tree, opts...))
	if err != nil {
		return nil, fmt.Errorf("openapi: encode record schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(recordSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("openapi: record schema load failed: %w", err)
	}
	compiled, err := c.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("openapi: record schema compile failed: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks record. A nil record is treated as empty.
func (v *Validator) Validate(record cascade.FilterRecord) error {
	if record == nil {
		record = cascade.FilterRecord{}
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("openapi: encode record: %w", err)
	}
	return v.ValidateJSON(raw)
}

// ValidateJSON checks a raw FilterRecord payload.
func (v *Validator) ValidateJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("openapi: decode record: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("openapi: filter record rejected: %w", err)
	}
	return nil
}
