package activity

import (
	"strings"
	"time"
)

const (
	VerbSelect         = "selection.select"
	VerbDeselect       = "selection.deselect"
	VerbToggleCategory = "selection.toggle_category"
	VerbRemoveTag      = "selection.remove_tag"
	VerbApplyRecord    = "selection.apply_record"

	// ObjectTypeSelection is the object type of every selection event.
	ObjectTypeSelection = "selection"
)

// SelectionEventInput describes the fields shared by selection events. Paths
// are rendered as "category/leaf" strings so this package stays independent
// of the engine types.
type SelectionEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ObjectID   string
	Channel    string
	Mode       string
	Target     string
	Before     []string
	After      []string
	Record     map[string]any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildSelectionEvent constructs an event for verb, deriving added/removed
// path lists from Before and After.
func BuildSelectionEvent(verb string, input SelectionEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Mode != "" {
		metadata = ensureMetadata(metadata)
		metadata["mode"] = input.Mode
	}
	if input.Target != "" {
		metadata = ensureMetadata(metadata)
		metadata["target"] = input.Target
	}
	if added := difference(input.After, input.Before); len(added) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["added"] = added
	}
	if removed := difference(input.Before, input.After); len(removed) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["removed"] = removed
	}
	if input.After != nil {
		metadata = ensureMetadata(metadata)
		metadata["selection"] = append([]string{}, input.After...)
	}
	if len(input.Record) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["record"] = cloneMap(input.Record)
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = ObjectTypeSelection
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeSelection,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func difference(from, minus []string) []string {
	if len(from) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(minus))
	for _, item := range minus {
		skip[item] = struct{}{}
	}
	var out []string
	for _, item := range from {
		if _, ok := skip[item]; ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
