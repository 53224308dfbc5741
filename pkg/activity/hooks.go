package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event describes a selection change fanned out to hooks. IDs are strings so
// call sites are not tied to a UUID type.
type Event struct {
	Verb       string
	ActorID    string
	UserID     string
	TenantID   string
	ObjectType string
	ObjectID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// pathKeys are the metadata entries holding "category/leaf" path lists.
var pathKeys = []string{"added", "removed", "selection"}

// ActivityHook receives normalized activity events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a plain function to ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []ActivityHook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes event once and hands every hook its own copy. Events
// without a verb or object are dropped; hook errors are joined.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := NormalizeEvent(event)
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		copied := normalized
		copied.Metadata = cloneMap(normalized.Metadata)
		if err := hook.Notify(ctx, copied); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Valid reports whether the event names a verb and an object.
func (e Event) Valid() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// Paths returns the path list stored under key ("added", "removed" or
// "selection").
func (e Event) Paths(key string) []string {
	switch paths := e.Metadata[key].(type) {
	case []string:
		return append([]string(nil), paths...)
	case []any:
		out := make([]string, 0, len(paths))
		for _, p := range paths {
			if s, ok := p.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// NormalizeEvent canonicalizes a selection event:
//   - verbs are lower-cased and a bare action such as "Select" gains the
//     "selection." namespace;
//   - selection verbs default ObjectType to "selection";
//   - path lists in metadata are trimmed with blank entries dropped;
//   - metadata is deep-copied and OccurredAt stamped when zero.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Verb = normalizeVerb(event.Verb)
	normalized.ActorID = strings.TrimSpace(event.ActorID)
	normalized.UserID = strings.TrimSpace(event.UserID)
	normalized.TenantID = strings.TrimSpace(event.TenantID)
	normalized.ObjectType = strings.TrimSpace(event.ObjectType)
	normalized.ObjectID = strings.TrimSpace(event.ObjectID)
	normalized.Channel = strings.TrimSpace(event.Channel)
	if strings.HasPrefix(normalized.Verb, ObjectTypeSelection+".") && normalized.ObjectType == "" {
		normalized.ObjectType = ObjectTypeSelection
	}
	normalized.Metadata = cloneMap(event.Metadata)
	for _, key := range pathKeys {
		if _, ok := normalized.Metadata[key]; ok {
			normalized.Metadata[key] = cleanPaths(normalized.Paths(key))
		}
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func normalizeVerb(verb string) string {
	verb = strings.ToLower(strings.TrimSpace(verb))
	if verb == "" || strings.Contains(verb, ".") {
		return verb
	}
	return ObjectTypeSelection + "." + verb
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cloneMap deep-copies metadata maps and slices so hooks cannot alias the
// caller's path lists.
func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = cloneValue(value)
	}
	return dst
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return cloneMap(value)
	case []string:
		return append([]string(nil), value...)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
