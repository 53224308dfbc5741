package cascade

import (
	"github.com/RoaringBitmap/roaring"
	"golang.org/x/text/cases"
)

// Index is a precomputed search structure over a flattened catalog. Labels
// are folded once and every category keeps a bitmap of its entry positions,
// so scoped searches never rescan unrelated entries.
type Index struct {
	entries    []Entry
	folded     [][3]string
	categories map[string]*roaring.Bitmap
	disabled   *roaring.Bitmap
	all        *roaring.Bitmap
}

// SearchOption narrows an Index search.
type SearchOption func(*searchConfig)

type searchConfig struct {
	category    *Value
	enabledOnly bool
}

// InCategory restricts results to the category with the given value.
func InCategory(value Value) SearchOption {
	return func(cfg *searchConfig) {
		v := value
		cfg.category = &v
	}
}

// EnabledOnly drops entries whose leaf or category is disabled.
func EnabledOnly() SearchOption {
	return func(cfg *searchConfig) {
		cfg.enabledOnly = true
	}
}

// NewIndex flattens tree and indexes the result.
func NewIndex(tree Tree) *Index {
	return NewEntryIndex(Flatten(tree))
}

// NewEntryIndex indexes already flattened entries.
func NewEntryIndex(entries []Entry) *Index {
	idx := &Index{
		entries:    append([]Entry(nil), entries...),
		folded:     make([][3]string, len(entries)),
		categories: map[string]*roaring.Bitmap{},
		disabled:   roaring.New(),
		all:        roaring.New(),
	}
	caser := cases.Fold()
	for i, entry := range idx.entries {
		pos := uint32(i)
		idx.folded[i] = haystacks(caser, entry)
		idx.all.Add(pos)
		if entry.Disabled {
			idx.disabled.Add(pos)
		}
		first, ok := entry.Path.First()
		if !ok {
			continue
		}
		key := first.key()
		bm, exists := idx.categories[key]
		if !exists {
			bm = roaring.New()
			idx.categories[key] = bm
		}
		bm.Add(pos)
	}
	return idx
}

// Len reports the number of indexed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entries returns every indexed entry in catalog order.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	return append([]Entry(nil), idx.entries...)
}

// Match returns the positions of entries matching query after scoping.
func (idx *Index) Match(query string, opts ...SearchOption) *roaring.Bitmap {
	if idx == nil {
		return roaring.New()
	}
	cfg := searchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	candidates := idx.all.Clone()
	if cfg.category != nil {
		scope, ok := idx.categories[cfg.category.key()]
		if !ok {
			return roaring.New()
		}
		candidates.And(scope)
	}
	if cfg.enabledOnly {
		candidates.AndNot(idx.disabled)
	}

	needle, ok := foldQuery(query)
	if !ok {
		return candidates
	}
	matched := roaring.New()
	it := candidates.Iterator()
	for it.HasNext() {
		pos := it.Next()
		if entryMatches(idx.folded[pos], needle) {
			matched.Add(pos)
		}
	}
	return matched
}

// Search returns the entries matching query in catalog order.
func (idx *Index) Search(query string, opts ...SearchOption) []Entry {
	if idx == nil {
		return nil
	}
	positions := idx.Match(query, opts...)
	out := make([]Entry, 0, positions.GetCardinality())
	it := positions.Iterator()
	for it.HasNext() {
		out = append(out, idx.entries[it.Next()])
	}
	return out
}
