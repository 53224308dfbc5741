package cascade

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema alongside its format. Document
// must be JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator describes the FilterRecord a catalog accepts. Implementations
// must be safe for concurrent use and must not fail for an empty tree.
type SchemaGenerator interface {
	Generate(tree Tree) (SchemaDocument, error)
}

// FieldDescriptor describes one FilterRecord key.
type FieldDescriptor struct {
	Key      string   `json:"key"`
	Label    string   `json:"label,omitempty"`
	Type     string   `json:"type"`
	Values   []string `json:"values"`
	Disabled []string `json:"disabled,omitempty"`
}

// DefaultSchemaGenerator returns the built-in descriptor generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(tree Tree) (SchemaDocument, error) {
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: DescribeRecord(tree),
	}, nil
}

// DescribeRecord lists one descriptor per string-keyed category in catalog
// order. Type is the leaf value kind, or "mixed" when children disagree.
func DescribeRecord(tree Tree) []FieldDescriptor {
	fields := []FieldDescriptor{}
	for _, category := range tree.Categories() {
		if category.Value.Kind() != KindString {
			continue
		}
		field := FieldDescriptor{
			Key:    category.Value.String(),
			Label:  category.Label,
			Type:   leafKind(category.Children),
			Values: []string{},
		}
		for _, child := range category.Children {
			if child.IsCategory() {
				continue
			}
			field.Values = append(field.Values, child.Value.String())
			if child.Disabled || category.Disabled {
				field.Disabled = append(field.Disabled, child.Value.String())
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func leafKind(children []Node) string {
	kind := KindInvalid
	for _, child := range children {
		if child.IsCategory() {
			continue
		}
		switch {
		case kind == KindInvalid:
			kind = child.Value.Kind()
		case kind != child.Value.Kind():
			return "mixed"
		}
	}
	if kind == KindInvalid {
		return "any"
	}
	return kind.String()
}
