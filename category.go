package cascade

// CheckState is the three-state value of a category control.
type CheckState int

const (
	CheckNone CheckState = iota
	CheckPartial
	CheckFull
)

func (c CheckState) String() string {
	switch c {
	case CheckFull:
		return "full"
	case CheckPartial:
		return "partial"
	default:
		return "none"
	}
}

// CategoryStatus summarises one category for rendering.
type CategoryStatus struct {
	Value    Value
	Label    string
	State    CheckState
	Selected int
	Total    int
	Disabled bool
}

// IsCategorySelected is true when the category has children and every one of
// them is selected. Disabled children count like any other.
func (s Store) IsCategorySelected(category Node) bool {
	selected, total := s.countSelected(category)
	return total > 0 && selected == total
}

// IsCategoryIndeterminate is true when some but not all children are
// selected. It is always false for a fully selected category.
func (s Store) IsCategoryIndeterminate(category Node) bool {
	selected, total := s.countSelected(category)
	return selected > 0 && selected < total
}

// CategoryState folds the two predicates into a CheckState, full first.
func (s Store) CategoryState(category Node) CheckState {
	selected, total := s.countSelected(category)
	switch {
	case total > 0 && selected == total:
		return CheckFull
	case selected > 0:
		return CheckPartial
	default:
		return CheckNone
	}
}

// Categories reports the status of every top-level category in catalog order.
func (s Store) Categories() []CategoryStatus {
	categories := s.tree.Categories()
	out := make([]CategoryStatus, 0, len(categories))
	for _, category := range categories {
		selected, total := s.countSelected(category)
		out = append(out, CategoryStatus{
			Value:    category.Value,
			Label:    category.Label,
			State:    s.CategoryState(category),
			Selected: selected,
			Total:    total,
			Disabled: category.Disabled,
		})
	}
	return out
}

func (s Store) countSelected(category Node) (selected, total int) {
	total = len(category.Children)
	for _, child := range category.Children {
		if s.IsSelected(Path{category.Value, child.Value}) {
			selected++
		}
	}
	return selected, total
}
