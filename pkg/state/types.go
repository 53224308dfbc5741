package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

var ErrNotFound = errors.New("state: preset not found")

// Ref identifies one persisted preset. Domain names the catalog the preset
// belongs to, Owner the user it is private to (empty for shared presets).
type Ref struct {
	Domain string
	Owner  string
	Name   string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Mutator edits a loaded snapshot in place.
type Mutator[T any] func(*T) error

// Identifier returns the canonical storage key for r.
func (r Ref) Identifier() (string, error) {
	domain := strings.TrimSpace(r.Domain)
	name := strings.TrimSpace(r.Name)
	if domain == "" {
		return "", fmt.Errorf("state: domain is required")
	}
	if name == "" {
		return "", fmt.Errorf("state: preset name is required")
	}
	for _, part := range []string{domain, name, r.Owner} {
		if strings.Contains(part, "/") {
			return "", fmt.Errorf("state: %q must not contain '/'", part)
		}
	}
	owner := strings.TrimSpace(r.Owner)
	if owner == "" {
		return fmt.Sprintf("shared/%s/%s", domain, name), nil
	}
	return fmt.Sprintf("owner/%s/%s/%s", owner, domain, name), nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}

func checkETag(expected, loaded Meta) error {
	if expected.ETag != "" && loaded.ETag != "" && expected.ETag != loaded.ETag {
		return fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, expected.ETag, loaded.ETag)
	}
	return nil
}
