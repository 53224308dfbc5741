package state

import (
	"context"
	"fmt"

	cascade "github.com/goliatone/go-cascade"
)

// Presets stores FilterRecords for one catalog.
type Presets struct {
	Store Store[cascade.FilterRecord]
	// Engine, when set, normalizes saved records against its catalog: unknown
	// keys and values are dropped. Apply requires it.
	Engine *cascade.Engine
	// Validate, when set, rejects records before they are saved.
	Validate func(cascade.FilterRecord) error
}

// Load returns the stored record for ref.
func (p Presets) Load(ctx context.Context, ref Ref) (cascade.FilterRecord, Meta, bool, error) {
	if p.Store == nil {
		return nil, Meta{}, false, fmt.Errorf("state: store is required")
	}
	record, meta, ok, err := p.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, false, fmt.Errorf("state: load preset %q: %w", ref.Name, err)
	}
	return record.Clone(), meta, ok, nil
}

// Save writes record under ref. A non-empty meta.ETag must match the stored
// ETag.
func (p Presets) Save(ctx context.Context, ref Ref, record cascade.FilterRecord, meta Meta) (Meta, error) {
	return p.Mutate(ctx, ref, meta, func(current *cascade.FilterRecord) error {
		*current = record.Clone()
		return nil
	})
}

// Mutate loads the preset for ref (empty when missing), applies fn,
// normalizes and validates the result, then saves it.
func (p Presets) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator[cascade.FilterRecord]) (Meta, error) {
	if p.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	if ref.Domain == "" {
		return Meta{}, fmt.Errorf("state: domain is required")
	}
	if ref.Name == "" {
		return Meta{}, fmt.Errorf("state: preset name is required")
	}
	if fn == nil {
		return Meta{}, fmt.Errorf("state: mutator is required")
	}

	record, loadedMeta, ok, err := p.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load preset %q: %w", ref.Name, err)
	}
	if !ok {
		record = cascade.FilterRecord{}
		loadedMeta = Meta{}
	}
	record = record.Clone()

	if err := checkETag(meta, loadedMeta); err != nil {
		return loadedMeta, err
	}

	if err := fn(&record); err != nil {
		return loadedMeta, err
	}
	if record == nil {
		record = cascade.FilterRecord{}
	}
	if p.Engine != nil {
		record = cascade.PathsToRecord(cascade.RecordToPaths(record, p.Engine.Tree()))
	}
	if p.Validate != nil {
		if err := p.Validate(record); err != nil {
			return loadedMeta, err
		}
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	saveMeta.UpdatedAt = meta.UpdatedAt
	savedMeta, err := p.Store.Save(ctx, ref, record, saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("state: save preset %q: %w", ref.Name, err)
	}
	return savedMeta, nil
}

// Apply loads the preset for ref and replaces current with the selection it
// resolves to.
func (p Presets) Apply(ctx context.Context, ref Ref, current cascade.Selection) (cascade.Selection, Meta, error) {
	if p.Engine == nil {
		return current, Meta{}, fmt.Errorf("state: engine is required to apply presets")
	}
	record, meta, ok, err := p.Load(ctx, ref)
	if err != nil {
		return current, Meta{}, err
	}
	if !ok {
		return current, Meta{}, fmt.Errorf("%w: %q", ErrNotFound, ref.Name)
	}
	return p.Engine.ApplyRecord(ctx, current, record), meta, nil
}
