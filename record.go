package cascade

import (
	"bytes"
	"encoding/json"
	"net/url"
	"sort"
)

// FilterValue holds the selected leaf value(s) for one record key: either a
// single scalar or a list.
type FilterValue struct {
	values []Value
	list   bool
}

// One builds a scalar entry.
func One(v Value) FilterValue {
	return FilterValue{values: []Value{v}}
}

// Many builds a list entry.
func Many(values ...Value) FilterValue {
	return FilterValue{values: append([]Value{}, values...), list: true}
}

// Values returns the entry as a list; a scalar yields one element.
func (f FilterValue) Values() []Value {
	return append([]Value(nil), f.values...)
}

// IsList reports whether the entry is a list.
func (f FilterValue) IsList() bool {
	return f.list
}

func (f FilterValue) contains(v Value) bool {
	for _, existing := range f.values {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes a bare scalar or an array.
func (f FilterValue) MarshalJSON() ([]byte, error) {
	if f.list {
		values := f.values
		if values == nil {
			values = []Value{}
		}
		return json.Marshal(values)
	}
	if len(f.values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(f.values[0])
}

// UnmarshalJSON decodes a scalar or an array of scalars.
func (f *FilterValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var values []Value
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*f = Many(values...)
		return nil
	}
	var v Value
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	if !v.IsValid() {
		*f = FilterValue{}
		return nil
	}
	*f = One(v)
	return nil
}

// FilterRecord is the flat "category key → leaf value(s)" form used by
// filter buttons and URL query strings.
type FilterRecord map[string]FilterValue

// RecordToPaths converts a record into selection paths. Keys are matched
// against string category values, values against the stringified value of
// each child. Unknown keys and values are dropped. Output follows catalog
// order.
func RecordToPaths(record FilterRecord, tree Tree) []Path {
	paths, _ := recordToPaths(record, tree)
	return paths
}

// recordToPaths also reports how many record values could not be resolved.
func recordToPaths(record FilterRecord, tree Tree) ([]Path, int) {
	if len(record) == 0 {
		return []Path{}, 0
	}
	total := 0
	for _, entry := range record {
		total += len(entry.values)
	}
	out := make([]Path, 0, total)
	for _, category := range tree {
		if !category.IsCategory() || category.Value.Kind() != KindString {
			continue
		}
		key := category.Value.String()
		entry, ok := record[key]
		if !ok {
			continue
		}
		for _, want := range entry.values {
			for _, child := range category.Children {
				if child.Value.String() == want.String() {
					out = append(out, Path{String(key), child.Value})
					break
				}
			}
		}
	}
	out = Dedupe(out)
	if out == nil {
		out = []Path{}
	}
	return out, total - len(out)
}

// PathsToRecord groups paths by their first element. The first value of a
// key stays scalar, a second distinct value turns it into a list, and
// repeated values are not added again.
func PathsToRecord(paths []Path) FilterRecord {
	record := FilterRecord{}
	for _, p := range paths {
		if len(p) < 2 {
			continue
		}
		key := p[0].String()
		value := p[len(p)-1]
		entry, exists := record[key]
		switch {
		case !exists:
			record[key] = One(value)
		case entry.contains(value):
		case entry.list:
			entry.values = append(entry.values, value)
			record[key] = entry
		default:
			record[key] = Many(entry.values[0], value)
		}
	}
	return record
}

// ActiveFilters counts the paths a record resolves to, for badge display.
func ActiveFilters(record FilterRecord, tree Tree) int {
	return len(RecordToPaths(record, tree))
}

// Keys returns the record keys sorted.
func (r FilterRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Equivalent compares the key → set of values grouping, ignoring the order
// of list elements and whether a single value is stored as a scalar or a
// one-element list.
func (r FilterRecord) Equivalent(other FilterRecord) bool {
	if len(r) != len(other) {
		return false
	}
	for key, entry := range r {
		match, ok := other[key]
		if !ok {
			return false
		}
		if !sameValueSet(entry.values, match.values) {
			return false
		}
	}
	return true
}

func sameValueSet(a, b []Value) bool {
	left := map[string]struct{}{}
	for _, v := range a {
		left[v.key()] = struct{}{}
	}
	right := map[string]struct{}{}
	for _, v := range b {
		right[v.key()] = struct{}{}
	}
	if len(left) != len(right) {
		return false
	}
	for key := range left {
		if _, ok := right[key]; !ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the record.
func (r FilterRecord) Clone() FilterRecord {
	if r == nil {
		return nil
	}
	out := make(FilterRecord, len(r))
	for key, entry := range r {
		out[key] = FilterValue{values: entry.Values(), list: entry.list}
	}
	return out
}

// Query renders the record as URL query values, one parameter per value.
func (r FilterRecord) Query() url.Values {
	out := url.Values{}
	for _, key := range r.Keys() {
		for _, v := range r[key].values {
			out.Add(key, v.String())
		}
	}
	return out
}

// RecordFromQuery parses URL query values: a key seen once becomes a scalar,
// a repeated key a list. Values stay strings; RecordToPaths matches them by
// their stringified form.
func RecordFromQuery(values url.Values) FilterRecord {
	record := FilterRecord{}
	for key, raw := range values {
		if len(raw) == 0 {
			continue
		}
		if len(raw) == 1 {
			record[key] = One(String(raw[0]))
			continue
		}
		list := make([]Value, 0, len(raw))
		for _, item := range raw {
			list = append(list, String(item))
		}
		record[key] = Many(list...)
	}
	return record
}
