package cascade

import "strings"

// Path identifies one leaf from the root, e.g. [category, leaf].
type Path []Value

// NewPath builds a Path from Go scalars, skipping anything that is not one.
func NewPath(values ...any) Path {
	out := make(Path, 0, len(values))
	for _, raw := range values {
		if v, ok := ValueOf(raw); ok {
			out = append(out, v)
		}
	}
	return out
}

// ParsePath splits a "category/leaf" string into string elements. Empty
// segments are dropped.
func ParsePath(s string) Path {
	var out Path
	for _, segment := range strings.Split(s, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		out = append(out, String(segment))
	}
	return out
}

// Equal reports structural equality with other.
func (p Path) Equal(other Path) bool {
	return EqualPaths(p, other)
}

// Key returns a canonical encoding usable as a map key.
func (p Path) Key() string {
	var b strings.Builder
	for i, v := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(v.key())
	}
	return b.String()
}

// String joins the stringified elements with "/".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.String()
	}
	return strings.Join(parts, "/")
}

// First returns the category element.
func (p Path) First() (Value, bool) {
	if len(p) == 0 {
		return Value{}, false
	}
	return p[0], true
}

// Last returns the leaf element.
func (p Path) Last() (Value, bool) {
	if len(p) == 0 {
		return Value{}, false
	}
	return p[len(p)-1], true
}

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// EqualPaths is true when a and b have the same length and pairwise equal
// elements. Empty paths never match.
func EqualPaths(a, b Path) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ContainsPath reports whether any member of set equals p.
func ContainsPath(set []Path, p Path) bool {
	for _, candidate := range set {
		if EqualPaths(candidate, p) {
			return true
		}
	}
	return false
}

// Dedupe drops structural duplicates and empty paths, keeping first
// occurrences in order.
func Dedupe(paths []Path) []Path {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(paths))
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		key := p.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.clone())
	}
	return out
}

func clonePaths(paths []Path) []Path {
	if len(paths) == 0 {
		return nil
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = p.clone()
	}
	return out
}
