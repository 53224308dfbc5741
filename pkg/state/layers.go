package state

import (
	"context"
	"encoding/json"
	"fmt"

	cascade "github.com/goliatone/go-cascade"
)

// MergeRecords composes records ordered from strongest to weakest. A key set
// in a stronger record replaces the weaker entry for that key as a whole.
func MergeRecords(layers ...cascade.FilterRecord) cascade.FilterRecord {
	merged := cascade.FilterRecord{}
	for i := len(layers) - 1; i >= 0; i-- {
		for key, entry := range layers[i] {
			if len(entry.Values()) == 0 {
				continue
			}
			merged[key] = entry
		}
	}
	return merged.Clone()
}

// Resolution is the effective record for one preset name plus the layers
// that produced it, strongest first.
type Resolution struct {
	Record cascade.FilterRecord `json:"record"`
	Layers []Provenance         `json:"layers"`
}

// Provenance reports how one stored preset contributed to a Resolution.
type Provenance struct {
	Ref        Ref      `json:"ref"`
	SnapshotID string   `json:"snapshot_id,omitempty"`
	Found      bool     `json:"found"`
	Keys       []string `json:"keys,omitempty"`
}

// ToJSON serialises the resolution for logging or transport.
func (r Resolution) ToJSON() ([]byte, error) {
	type alias Resolution
	return json.Marshal(alias(r))
}

// Resolve layers the owner's preset over the shared preset of the same name.
// An empty owner resolves the shared preset alone. ErrNotFound is returned
// when no layer exists.
func (p Presets) Resolve(ctx context.Context, domain, owner, name string) (Resolution, error) {
	refs := []Ref{{Domain: domain, Name: name}}
	if owner != "" {
		refs = append([]Ref{{Domain: domain, Owner: owner, Name: name}}, refs...)
	}

	var (
		layers   []cascade.FilterRecord
		resolved = Resolution{Layers: make([]Provenance, 0, len(refs))}
	)
	for _, ref := range refs {
		record, meta, ok, err := p.Load(ctx, ref)
		if err != nil {
			return Resolution{}, err
		}
		layer := Provenance{Ref: ref, Found: ok}
		if ok {
			layer.SnapshotID = meta.SnapshotID
			layer.Keys = record.Keys()
			layers = append(layers, record)
		}
		resolved.Layers = append(resolved.Layers, layer)
	}
	if len(layers) == 0 {
		return Resolution{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	resolved.Record = MergeRecords(layers...)
	return resolved, nil
}
