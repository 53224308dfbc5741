package cascade

// Tag is a display chip for one selected path. Carrying the path keeps
// removal unambiguous when two leaves share a label.
type Tag struct {
	Label string
	Path  Path
}

// ToTags projects the selection into leaf labels, falling back to the
// stringified leaf value for paths the catalog no longer knows.
func ToTags(selection []Path, tree Tree) []string {
	out := make([]string, 0, len(selection))
	for _, p := range selection {
		if len(p) == 0 {
			continue
		}
		out = append(out, tree.Label(p))
	}
	return out
}

// TagsFor is ToTags with the originating path attached to each label.
func TagsFor(selection []Path, tree Tree) []Tag {
	out := make([]Tag, 0, len(selection))
	for _, p := range selection {
		if len(p) == 0 {
			continue
		}
		out = append(out, Tag{Label: tree.Label(p), Path: p.clone()})
	}
	return out
}

// RemoveTags applies a label-based tag removal: every path whose label is no
// longer present once removed is taken out of current survives. Leaves that
// share a removed label are all dropped; use RemoveTag to target one path.
func RemoveTags(current, removed []string, selection []Path, tree Tree) []Path {
	drop := make(map[string]struct{}, len(removed))
	for _, label := range removed {
		drop[label] = struct{}{}
	}
	remaining := make(map[string]struct{}, len(current))
	for _, label := range current {
		if _, gone := drop[label]; gone {
			continue
		}
		remaining[label] = struct{}{}
	}
	out := make([]Path, 0, len(selection))
	for _, p := range selection {
		if len(p) == 0 {
			continue
		}
		if _, keep := remaining[tree.Label(p)]; keep {
			out = append(out, p.clone())
		}
	}
	return out
}

// RemoveTag drops exactly the given path from the selection.
func RemoveTag(selection []Path, path Path) []Path {
	out := make([]Path, 0, len(selection))
	for _, p := range selection {
		if EqualPaths(p, path) {
			continue
		}
		out = append(out, p.clone())
	}
	return out
}
