// Package catalog loads option trees from JSON or YAML documents.
//
// A catalog document is an object with an optional name and selection mode
// and a list of nodes:
//
//	name: miners
//	mode: multiple
//	nodes:
//	  - value: type
//	    label: Type
//	    children:
//	      - {value: S19XP, label: Antminer S19XP}
//	      - {value: M30S, label: Whatsminer M30S, disabled: true}
//
// A bare list of nodes is accepted as well. Labels default to the node value.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cascade "github.com/goliatone/go-cascade"
	"github.com/goliatone/go-cascade/internal/hydrate"
	"gopkg.in/yaml.v3"
)

// Catalog is a decoded catalog document.
type Catalog struct {
	Name  string       `json:"name,omitempty"`
	Mode  string       `json:"mode,omitempty"`
	Nodes cascade.Tree `json:"nodes"`
}

// SelectionMode parses the document mode, defaulting to multiple.
func (c Catalog) SelectionMode() (cascade.Mode, error) {
	return cascade.ParseMode(c.Mode)
}

// Engine builds a validated engine for the catalog. The document mode is
// applied first so opts may override it.
func (c Catalog) Engine(opts ...cascade.Option) (*cascade.Engine, error) {
	mode, err := c.SelectionMode()
	if err != nil {
		return nil, err
	}
	all := append([]cascade.Option{cascade.WithMode(mode)}, opts...)
	return cascade.Load(c.Nodes, all...)
}

// Option configures decoding.
type Option func(*loader)

type loader struct {
	source string
	format string
	strict bool
}

// WithSource names the document in error messages.
func WithSource(source string) Option {
	return func(l *loader) {
		l.source = source
	}
}

// WithStrict rejects unknown top-level document fields.
func WithStrict() Option {
	return func(l *loader) {
		l.strict = true
	}
}

func newLoader(opts []Option) loader {
	l := loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	return l
}

func (l loader) decoder() *hydrate.Decoder[Catalog] {
	options := []hydrate.Option[Catalog]{
		hydrate.WithNormalizer[Catalog](aliasNodes),
		hydrate.WithNormalizer[Catalog](defaultLabels),
		hydrate.WithValidator[Catalog](validateCatalog),
	}
	if l.strict {
		options = append(options, hydrate.WithStrict[Catalog]())
	}
	return hydrate.NewDecoder[Catalog](options...)
}

// Decode converts an already parsed document into a validated Catalog.
func Decode(payload map[string]any, opts ...Option) (Catalog, error) {
	return newLoader(opts).decode(payload)
}

func (l loader) decode(payload map[string]any) (Catalog, error) {
	return l.decoder().Decode(hydrate.Context{Source: l.source, Format: l.format}, payload)
}

// LoadJSON reads a JSON catalog document.
func LoadJSON(r io.Reader, opts ...Option) (Catalog, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse json: %w", err)
	}
	return decodeRaw(raw, "json", opts)
}

// LoadYAML reads a YAML catalog document.
func LoadYAML(r io.Reader, opts ...Option) (Catalog, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	return decodeRaw(raw, "yaml", opts)
}

// LoadFile reads path as YAML when it ends in .yaml or .yml and as JSON otherwise.
func LoadFile(path string, opts ...Option) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	opts = append([]Option{WithSource(path)}, opts...)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f, opts...)
	default:
		return LoadJSON(f, opts...)
	}
}

func decodeRaw(raw any, format string, opts []Option) (Catalog, error) {
	l := newLoader(opts)
	l.format = format
	switch doc := raw.(type) {
	case map[string]any:
		return l.decode(doc)
	case []any:
		return l.decode(map[string]any{"nodes": doc})
	case nil:
		return Catalog{}, fmt.Errorf("catalog: document is empty")
	default:
		return Catalog{}, fmt.Errorf("catalog: document must be an object or a list, got %T", raw)
	}
}
