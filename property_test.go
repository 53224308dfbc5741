package cascade

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyTree() Tree {
	return Tree{
		Category("type", "Type",
			Leaf("S19XP", "Antminer S19XP"),
			Leaf("S19", "Antminer S19"),
			Leaf("M30S", "Whatsminer M30S").WithDisabled(true),
		),
		Category("status", "Status",
			Leaf("active", "Active"),
			Leaf("pending", "Pending"),
		),
		Category("rating", "Rating",
			Leaf(1, "One"),
			Leaf(2, "Two"),
		),
	}
}

func selectionFrom(entries []Entry, picks []int) Selection {
	paths := make([]Path, 0, len(picks))
	for _, i := range picks {
		paths = append(paths, entries[i%len(entries)].Path)
	}
	return FromPaths(paths)
}

func TestSelectionProperties(t *testing.T) {
	tree := propertyTree()
	entries := Flatten(tree)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	picks := gen.SliceOf(gen.IntRange(0, len(entries)-1))
	pick := gen.IntRange(0, len(entries)-1)

	properties.Property("checking a path twice equals checking it once", prop.ForAll(
		func(current []int, target int) bool {
			store := NewStore(tree, ModeMultiple, selectionFrom(entries, current))
			path := entries[target].Path
			once := store.Select(path, true)
			twice := NewStore(tree, ModeMultiple, once).Select(path, true)
			return once.Equal(twice)
		},
		picks, pick,
	))

	properties.Property("check then uncheck restores an unselected path", prop.ForAll(
		func(current []int, target int) bool {
			before := selectionFrom(entries, current)
			path := entries[target].Path
			store := NewStore(tree, ModeMultiple, before)
			if store.IsSelected(path) {
				return true
			}
			checked := store.Select(path, true)
			after := NewStore(tree, ModeMultiple, checked).Select(path, false)
			return after.Equal(before)
		},
		picks, pick,
	))

	properties.Property("a category is never both full and indeterminate", prop.ForAll(
		func(current []int) bool {
			store := NewStore(tree, ModeMultiple, selectionFrom(entries, current))
			for _, category := range tree.Categories() {
				if store.IsCategorySelected(category) && store.IsCategoryIndeterminate(category) {
					return false
				}
			}
			return true
		},
		picks,
	))

	properties.Property("single mode holds at most one path", prop.ForAll(
		func(current []int, targets []int) bool {
			value := selectionFrom(entries, current)
			for _, target := range targets {
				value = NewStore(tree, ModeSingle, value).Select(entries[target].Path, true)
				if len(NewStore(tree, ModeSingle, value).Normalize()) > 1 {
					return false
				}
			}
			return true
		},
		picks, picks,
	))

	properties.Property("record conversion round-trips catalog paths", prop.ForAll(
		func(current []int) bool {
			selection := selectionFrom(entries, current)
			back := RecordToPaths(PathsToRecord(selection.Paths()), tree)
			return FromPaths(back).Equal(selection)
		},
		picks,
	))

	properties.TestingRun(t)
}

func TestSearchProperties(t *testing.T) {
	entries := Flatten(propertyTree())
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("filter returns a subset in catalog order", prop.ForAll(
		func(query string) bool {
			result := Filter(entries, query)
			cursor := 0
			for _, entry := range result {
				for cursor < len(entries) && !EqualPaths(entries[cursor].Path, entry.Path) {
					cursor++
				}
				if cursor == len(entries) {
					return false
				}
				cursor++
			}
			return true
		},
		gen.AlphaString(),
	))

	properties.Property("every leaf label finds its own entry", prop.ForAll(
		func(i int) bool {
			entry := entries[i]
			for _, found := range Filter(entries, entry.LeafLabel) {
				if EqualPaths(found.Path, entry.Path) {
					return true
				}
			}
			return false
		},
		gen.IntRange(0, len(entries)-1),
	))

	properties.Property("highlight segments rebuild the text", prop.ForAll(
		func(text, query string) bool {
			rebuilt := ""
			for _, segment := range Highlight(text, query) {
				rebuilt += segment.Text
			}
			return rebuilt == text
		},
		gen.AlphaString(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
