package cascade

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects between single- and multi-select behaviour.
type Mode int

const (
	ModeMultiple Mode = iota
	ModeSingle
)

func (m Mode) String() string {
	if m == ModeSingle {
		return "single"
	}
	return "multiple"
}

// ParseMode converts "single"/"multiple" (any case) into a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "single":
		return ModeSingle, nil
	case "multiple", "multi", "":
		return ModeMultiple, nil
	default:
		return ModeMultiple, fmt.Errorf("cascade: unknown mode %q", value)
	}
}

// Selection is the controlled value handed in by the host and returned by
// every mutation. It is never edited in place; the zero value is empty.
type Selection struct {
	paths []Path
}

// Empty returns the "nothing selected" value.
func Empty() Selection {
	return Selection{}
}

// FromPath wraps a single path. An empty path yields an empty selection.
func FromPath(p Path) Selection {
	if len(p) == 0 {
		return Selection{}
	}
	return Selection{paths: []Path{p.clone()}}
}

// FromPaths wraps a list of paths, dropping structural duplicates.
func FromPaths(paths []Path) Selection {
	return Selection{paths: Dedupe(paths)}
}

// Paths returns a copy of the selected paths in insertion order.
func (s Selection) Paths() []Path {
	return clonePaths(s.paths)
}

// Path returns the first selected path, which is the whole value in single mode.
func (s Selection) Path() (Path, bool) {
	if len(s.paths) == 0 {
		return nil, false
	}
	return s.paths[0].clone(), true
}

// Len reports the number of selected paths.
func (s Selection) Len() int {
	return len(s.paths)
}

// IsEmpty treats nil and [] alike.
func (s Selection) IsEmpty() bool {
	return len(s.paths) == 0
}

// Equal compares selections as sets; emission order carries no meaning.
func (s Selection) Equal(other Selection) bool {
	if len(s.paths) != len(other.paths) {
		return false
	}
	for _, p := range s.paths {
		if !ContainsPath(other.paths, p) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes null when empty and an array of paths otherwise. Use
// MarshalSelection to get the single-mode shape.
func (s Selection) MarshalJSON() ([]byte, error) {
	return MarshalSelection(ModeMultiple, s)
}

// UnmarshalJSON accepts null, a single path or an array of paths.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items, ok := raw.([]any)
	if raw == nil || (ok && len(items) == 0) {
		*s = Selection{}
		return nil
	}
	if !ok {
		return fmt.Errorf("cascade: selection must be an array or null")
	}
	if _, nested := items[0].([]any); !nested {
		var p Path
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*s = FromPath(p)
		return nil
	}
	var paths []Path
	if err := json.Unmarshal(data, &paths); err != nil {
		return err
	}
	*s = FromPaths(paths)
	return nil
}

// MarshalSelection encodes s in the shape mode expects: a bare path in
// single mode, a list of paths in multiple mode, null when empty.
func MarshalSelection(mode Mode, s Selection) ([]byte, error) {
	if s.IsEmpty() {
		return []byte("null"), nil
	}
	if mode == ModeSingle {
		return json.Marshal(s.paths[0])
	}
	return json.Marshal(s.paths)
}

// Store answers membership queries and computes mutations for one snapshot of
// the controlled value. It is rebuilt from the host value on every call.
type Store struct {
	tree    Tree
	mode    Mode
	current []Path
}

// NewStore normalizes current for mode against tree.
func NewStore(tree Tree, mode Mode, current Selection) Store {
	return Store{
		tree:    tree,
		mode:    mode,
		current: normalize(mode, current.paths),
	}
}

func normalize(mode Mode, paths []Path) []Path {
	paths = Dedupe(paths)
	if mode == ModeSingle && len(paths) > 1 {
		return paths[:1]
	}
	return paths
}

// Mode reports the store's selection mode.
func (s Store) Mode() Mode {
	return s.mode
}

// Tree returns the catalog the store resolves against.
func (s Store) Tree() Tree {
	return s.tree
}

// Normalize returns the current value as a list: one element in single mode,
// empty when nothing is selected.
func (s Store) Normalize() []Path {
	out := clonePaths(s.current)
	if out == nil {
		return []Path{}
	}
	return out
}

// Selection returns the current value.
func (s Store) Selection() Selection {
	return Selection{paths: clonePaths(s.current)}
}

// IsSelected reports whether path is part of the current value.
func (s Store) IsSelected(path Path) bool {
	return ContainsPath(s.current, path)
}

// Select applies a leaf click. In single mode checked is ignored and path
// replaces the value. Paths that cross a disabled node or end on a category
// leave the value as is.
func (s Store) Select(path Path, checked bool) Selection {
	if len(path) == 0 {
		return s.Selection()
	}
	node, found, disabled := s.tree.Resolve(path)
	if disabled || (found && node.IsCategory()) {
		return s.Selection()
	}
	if s.mode == ModeSingle {
		return FromPath(path)
	}
	if checked {
		if s.IsSelected(path) {
			return s.Selection()
		}
		next := append(clonePaths(s.current), path.clone())
		return Selection{paths: next}
	}
	next := make([]Path, 0, len(s.current))
	for _, p := range s.current {
		if !EqualPaths(p, path) {
			next = append(next, p.clone())
		}
	}
	return Selection{paths: next}
}

// ToggleCategory checks or clears a whole category in multiple mode. Checking
// adds every enabled child not yet selected; clearing removes every path under
// the category, including disabled or stale ones.
func (s Store) ToggleCategory(value Value, checked bool) Selection {
	if s.mode != ModeMultiple {
		return s.Selection()
	}
	category, found := s.tree.Category(value)
	if found && category.Disabled {
		return s.Selection()
	}
	if !checked {
		next := make([]Path, 0, len(s.current))
		for _, p := range s.current {
			if first, ok := p.First(); ok && first.Equal(value) {
				continue
			}
			next = append(next, p.clone())
		}
		return Selection{paths: next}
	}
	next := clonePaths(s.current)
	if !found {
		return Selection{paths: next}
	}
	for _, child := range category.Children {
		if child.Disabled {
			continue
		}
		p := Path{category.Value, child.Value}
		if ContainsPath(next, p) {
			continue
		}
		next = append(next, p)
	}
	return Selection{paths: next}
}
