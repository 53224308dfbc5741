package openapi

import (
	"strings"
	"unicode"
)

// DisabledPolicy decides how disabled leaves appear in the record schema.
type DisabledPolicy int

const (
	// DisabledAnnotate keeps disabled values in the enum and lists them under
	// x-disabled so clients can grey them out.
	DisabledAnnotate DisabledPolicy = iota
	// DisabledReject leaves disabled values out of the enum, so records naming
	// them fail validation.
	DisabledReject
)

// ListStyle decides how a multi-valued key travels in the query string.
type ListStyle int

const (
	// ListRepeated repeats the parameter (type=a&type=b), matching
	// FilterRecord.Query.
	ListRepeated ListStyle = iota
	// ListComma joins the values (type=a,b).
	ListComma
)

type generatorConfig struct {
	openAPIVersion string
	info           openapiInfo
	listing        listingConfig
	responses      map[string]string
	record         recordConfig
}

type openapiInfo struct {
	Title       string
	Version     string
	Description string
}

// listingConfig is the operation that accepts the filter record.
type listingConfig struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	ContentType string
}

type recordConfig struct {
	component string
	disabled  DisabledPolicy
	lists     ListStyle
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		openAPIVersion: "3.0.3",
		info:           openapiInfo{Title: "Filter Schema", Version: "1.0.0"},
		listing:        listingConfig{Path: "/items", Method: "get", ContentType: "application/json"},
		responses:      map[string]string{"200": "OK"},
		record:         recordConfig{component: "FilterRecord"},
	}
}

func (cfg generatorConfig) isQuery() bool {
	return cfg.listing.Method == "" || cfg.listing.Method == "get"
}

// GeneratorOption configures the OpenAPI generator.
type GeneratorOption func(*generatorConfig)

// WithCatalog derives the document title, listing path and record component
// from a catalog name: "miner types" gives "miner types filters",
// "/miner-types" and "MinerTypesFilter". Later options still override each.
func WithCatalog(name string) GeneratorOption {
	return func(cfg *generatorConfig) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		words := strings.FieldsFunc(name, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(words) == 0 {
			return
		}
		var component strings.Builder
		for _, word := range words {
			runes := []rune(word)
			component.WriteString(strings.ToUpper(string(runes[0])) + string(runes[1:]))
		}
		cfg.info.Title = name + " filters"
		cfg.listing.Path = "/" + strings.ToLower(strings.Join(words, "-"))
		if sanitized := sanitizeComponentName(component.String() + "Filter"); sanitized != "" {
			cfg.record.component = sanitized
		}
	}
}

// WithOpenAPIVersion overrides the OpenAPI version string (default: 3.0.3).
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if version != "" {
			cfg.openAPIVersion = version
		}
	}
}

// InfoOption configures optional fields on the info section.
type InfoOption func(*openapiInfo)

// WithInfoDescription sets the info description.
func WithInfoDescription(description string) InfoOption {
	return func(info *openapiInfo) {
		info.Description = description
	}
}

// WithInfo sets the info title and version; empty strings keep the current
// values.
func WithInfo(title, version string, opts ...InfoOption) GeneratorOption {
	return func(cfg *generatorConfig) {
		if title != "" {
			cfg.info.Title = title
		}
		if version != "" {
			cfg.info.Version = version
		}
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.info)
			}
		}
	}
}

// OperationOption configures optional listing metadata.
type OperationOption func(*listingConfig)

// WithOperationSummary attaches a summary to the listing operation.
func WithOperationSummary(summary string) OperationOption {
	return func(listing *listingConfig) {
		listing.Summary = summary
	}
}

// WithOperation configures the listing path, method and operationId. GET
// takes the record as query parameters, any other method as a request body.
// Empty inputs keep the current values.
func WithOperation(path, method, operationID string, opts ...OperationOption) GeneratorOption {
	return func(cfg *generatorConfig) {
		if path != "" {
			cfg.listing.Path = path
		}
		if method != "" {
			cfg.listing.Method = strings.ToLower(method)
		}
		if operationID != "" {
			cfg.listing.OperationID = operationID
		}
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.listing)
			}
		}
	}
}

// WithContentType sets the request body media type for non-GET listings.
func WithContentType(contentType string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if contentType != "" {
			cfg.listing.ContentType = contentType
		}
	}
}

// WithResponse adds or relabels a listing response.
func WithResponse(status, description string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if status == "" {
			return
		}
		if cfg.responses == nil {
			cfg.responses = map[string]string{}
		}
		if description == "" {
			description = cfg.responses[status]
		}
		cfg.responses[status] = description
	}
}

// WithRecordComponent renames the FilterRecord component.
func WithRecordComponent(name string) GeneratorOption {
	return func(cfg *generatorConfig) {
		if strings.TrimSpace(name) != "" {
			cfg.record.component = name
		}
	}
}

// WithDisabledValues selects how disabled leaves are described.
func WithDisabledValues(policy DisabledPolicy) GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.record.disabled = policy
	}
}

// WithListStyle selects how multi-valued query parameters are encoded.
func WithListStyle(style ListStyle) GeneratorOption {
	return func(cfg *generatorConfig) {
		cfg.record.lists = style
	}
}
