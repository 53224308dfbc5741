// Package hydrate turns loosely typed catalog documents (JSON or YAML decoded
// into maps) into typed values through a normalize, decode, validate pipeline.
package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Context identifies the document being decoded.
type Context struct {
	// Source is the file or URL the document was read from.
	Source string
	// Format is the document syntax, "json" or "yaml".
	Format string
}

func (c Context) String() string {
	source := c.Source
	if source == "" {
		source = "<inline>"
	}
	if c.Format == "" {
		return source
	}
	return source + " (" + c.Format + ")"
}

// Stage names the pipeline step an Error came from.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageDecode    Stage = "decode"
	StageValidate  Stage = "validate"
)

// Error reports a failed document with the stage and, for type mismatches,
// the offending field.
type Error struct {
	Document Context
	Stage    Stage
	Field    string
	Err      error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("hydrate: %s %s: field %q: %v", e.Stage, e.Document, e.Field, e.Err)
	}
	return fmt.Sprintf("hydrate: %s %s: %v", e.Stage, e.Document, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalizer rewrites the raw document before decoding. It receives a private
// copy and may mutate it in place.
type Normalizer func(Context, map[string]any) (map[string]any, error)

// Validator checks or completes the decoded value.
type Validator[T any] func(Context, *T) error

// Option configures a Decoder.
type Option[T any] func(*Decoder[T])

// Decoder runs the normalize, decode, validate pipeline for T.
type Decoder[T any] struct {
	normalizers []Normalizer
	validators  []Validator[T]
	strict      bool
}

// WithNormalizer appends a normalizer; normalizers run in order.
func WithNormalizer[T any](fn Normalizer) Option[T] {
	return func(d *Decoder[T]) {
		if fn != nil {
			d.normalizers = append(d.normalizers, fn)
		}
	}
}

// WithValidator appends a validator; validators run in order.
func WithValidator[T any](fn Validator[T]) Option[T] {
	return func(d *Decoder[T]) {
		if fn != nil {
			d.validators = append(d.validators, fn)
		}
	}
}

// WithStrict rejects document fields T does not declare.
func WithStrict[T any]() Option[T] {
	return func(d *Decoder[T]) {
		d.strict = true
	}
}

// NewDecoder builds a Decoder from opts.
func NewDecoder[T any](opts ...Option[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts document into T. The caller's map is never mutated.
func (d *Decoder[T]) Decode(doc Context, document map[string]any) (T, error) {
	var zero T
	if document == nil {
		return zero, &Error{Document: doc, Stage: StageNormalize, Err: errors.New("document is empty")}
	}

	current, _ := cloneTree(document).(map[string]any)
	for _, normalize := range d.normalizers {
		next, err := normalize(doc, current)
		if err != nil {
			return zero, &Error{Document: doc, Stage: StageNormalize, Err: err}
		}
		if next != nil {
			current = next
		}
	}

	result, err := d.decode(current)
	if err != nil {
		return zero, decodeError(doc, err)
	}

	for _, validate := range d.validators {
		if err := validate(doc, &result); err != nil {
			return zero, &Error{Document: doc, Stage: StageValidate, Err: err}
		}
	}
	return result, nil
}

func (d *Decoder[T]) decode(document map[string]any) (T, error) {
	var result T
	buffer, err := json.Marshal(document)
	if err != nil {
		return result, err
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	if d.strict {
		decoder.DisallowUnknownFields()
	}
	err = decoder.Decode(&result)
	return result, err
}

func decodeError(doc Context, err error) *Error {
	out := &Error{Document: doc, Stage: StageDecode, Err: err}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		out.Field = typeErr.Field
		out.Err = fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value)
	}
	return out
}

// cloneTree copies the map and slice structure of a decoded document. YAML
// documents may carry map[any]any for non-string keys; those keys are
// stringified so the result stays JSON-encodable.
func cloneTree(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[key] = cloneTree(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[fmt.Sprint(key)] = cloneTree(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = cloneTree(child)
		}
		return out
	default:
		return v
	}
}
