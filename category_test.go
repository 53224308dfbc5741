package cascade

import "testing"

func TestCategoryStates(t *testing.T) {
	tree := Tree{
		Category("a", "A", Leaf("x", "X"), Leaf("y", "Y").WithDisabled(true)),
		Category("b", "B", Leaf("w", "W")),
		Category("empty", "Empty"),
	}
	a, _ := tree.Category(String("a"))
	empty, _ := tree.Category(String("empty"))

	cases := []struct {
		name     string
		current  Selection
		full     bool
		partial  bool
		expected CheckState
	}{
		{"none", Empty(), false, false, CheckNone},
		{"partial", FromPath(p("a", "x")), false, true, CheckPartial},
		{"disabled child counts toward total", FromPaths([]Path{p("a", "x"), p("a", "y")}), true, false, CheckFull},
		{"other category only", FromPath(p("b", "w")), false, false, CheckNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(tree, ModeMultiple, tc.current)
			if got := store.IsCategorySelected(a); got != tc.full {
				t.Fatalf("IsCategorySelected = %v, want %v", got, tc.full)
			}
			if got := store.IsCategoryIndeterminate(a); got != tc.partial {
				t.Fatalf("IsCategoryIndeterminate = %v, want %v", got, tc.partial)
			}
			if got := store.CategoryState(a); got != tc.expected {
				t.Fatalf("CategoryState = %s, want %s", got, tc.expected)
			}
		})
	}

	store := NewStore(tree, ModeMultiple, Empty())
	if store.IsCategorySelected(empty) || store.IsCategoryIndeterminate(empty) {
		t.Fatalf("empty category must be neither selected nor indeterminate")
	}
}

func TestCategoriesSummary(t *testing.T) {
	tree := shopTree()
	current := FromPaths([]Path{p("electronics", "phones"), p("electronics", "laptops"), p("clothing", "mens")})
	statuses := NewStore(tree, ModeMultiple, current).Categories()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(statuses))
	}
	if statuses[0].State != CheckFull || statuses[0].Selected != 2 || statuses[0].Total != 2 {
		t.Fatalf("electronics = %+v", statuses[0])
	}
	if statuses[1].State != CheckPartial || statuses[1].Selected != 1 {
		t.Fatalf("clothing = %+v", statuses[1])
	}
}
