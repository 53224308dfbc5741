package openapi

import (
	cascade "github.com/goliatone/go-cascade"
)

type generator struct {
	config generatorConfig
}

// NewGenerator constructs a schema generator that describes a catalog's
// FilterRecord as an OpenAPI document: one component per category value set,
// a FilterRecord component and a listing operation that accepts it.
func NewGenerator(opts ...GeneratorOption) cascade.SchemaGenerator {
	return generator{config: newGeneratorConfig(opts)}
}

func newGeneratorConfig(opts []GeneratorOption) generatorConfig {
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Option returns a cascade.Option that wires the OpenAPI schema generator into an Engine.
func Option(opts ...GeneratorOption) cascade.Option {
	return cascade.WithSchemaGenerator(NewGenerator(opts...))
}

func (g generator) Generate(tree cascade.Tree) (cascade.SchemaDocument, error) {
	builder := newOpenAPIDocumentBuilder(g.config, newComponentRegistry(), fieldsFor(tree, g.config.record.disabled))
	document, err := builder.build()
	if err != nil {
		return cascade.SchemaDocument{}, err
	}
	return cascade.SchemaDocument{
		Format:   cascade.SchemaFormatOpenAPI,
		Document: document,
	}, nil
}
