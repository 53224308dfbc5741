package cascade

import (
	"encoding/json"
	"testing"
)

func TestSelectMultipleAddsAndRemoves(t *testing.T) {
	tree := shopTree()
	store := NewStore(tree, ModeMultiple, Empty())

	next := store.Select(p("electronics", "phones"), true)
	if next.Len() != 1 || !NewStore(tree, ModeMultiple, next).IsSelected(p("electronics", "phones")) {
		t.Fatalf("expected phones selected, got %v", next.Paths())
	}

	again := NewStore(tree, ModeMultiple, next).Select(p("electronics", "phones"), true)
	if again.Len() != 1 {
		t.Fatalf("checking an already selected path must not duplicate it, got %v", again.Paths())
	}

	cleared := NewStore(tree, ModeMultiple, again).Select(p("electronics", "phones"), false)
	if !cleared.IsEmpty() {
		t.Fatalf("expected empty selection, got %v", cleared.Paths())
	}
}

func TestSelectSingleReplaces(t *testing.T) {
	tree := shopTree()
	current := FromPath(p("electronics", "phones"))
	next := NewStore(tree, ModeSingle, current).Select(p("clothing", "mens"), false)
	got, ok := next.Path()
	if !ok || !EqualPaths(got, p("clothing", "mens")) {
		t.Fatalf("expected clothing/mens, got %v", next.Paths())
	}
	if next.Len() != 1 {
		t.Fatalf("single mode must hold one path, got %d", next.Len())
	}
}

func TestSelectIgnoresDisabledPaths(t *testing.T) {
	tree := Tree{
		Category("a", "A", Leaf("x", "X"), Leaf("y", "Y").WithDisabled(true)),
		Category("b", "B", Leaf("z", "Z")).WithDisabled(true),
	}
	for _, mode := range []Mode{ModeMultiple, ModeSingle} {
		current := FromPath(p("a", "x"))
		store := NewStore(tree, mode, current)
		if next := store.Select(p("a", "y"), true); !next.Equal(current) {
			t.Fatalf("%s: disabled leaf changed selection to %v", mode, next.Paths())
		}
		if next := store.Select(p("b", "z"), true); !next.Equal(current) {
			t.Fatalf("%s: leaf under disabled category changed selection to %v", mode, next.Paths())
		}
	}
}

func TestSelectIgnoresCategoryPaths(t *testing.T) {
	tree := append(shopTree(), Category("empty", "Empty"))
	for _, mode := range []Mode{ModeMultiple, ModeSingle} {
		current := FromPath(p("clothing", "mens"))
		store := NewStore(tree, mode, current)
		for _, path := range []Path{p("electronics"), p("empty")} {
			if next := store.Select(path, true); !next.Equal(current) {
				t.Fatalf("%s: selecting category %s changed selection to %v", mode, path, next.Paths())
			}
		}
		if next := NewStore(tree, mode, Empty()).Select(p("electronics"), true); !next.IsEmpty() {
			t.Fatalf("%s: category selected from empty: %v", mode, next.Paths())
		}
		if next := store.Select(p("electronics", "phones"), true); !ContainsPath(next.Paths(), p("electronics", "phones")) {
			t.Fatalf("%s: leaf under category not selected: %v", mode, next.Paths())
		}
	}
}

func TestToggleCategory(t *testing.T) {
	tree := Tree{
		Category("a", "A", Leaf("x", "X"), Leaf("y", "Y").WithDisabled(true), Leaf("z", "Z")),
		Category("b", "B", Leaf("w", "W")),
	}
	current := FromPaths([]Path{p("a", "x"), p("b", "w")})
	store := NewStore(tree, ModeMultiple, current)

	checked := store.ToggleCategory(String("a"), true)
	want := FromPaths([]Path{p("a", "x"), p("b", "w"), p("a", "z")})
	if !checked.Equal(want) {
		t.Fatalf("check: got %v, want %v", checked.Paths(), want.Paths())
	}

	withStale := FromPaths(append(checked.Paths(), p("a", "y"), p("a", "gone")))
	unchecked := NewStore(tree, ModeMultiple, withStale).ToggleCategory(String("a"), false)
	if !unchecked.Equal(FromPath(p("b", "w"))) {
		t.Fatalf("uncheck: got %v", unchecked.Paths())
	}

	single := NewStore(tree, ModeSingle, FromPath(p("a", "x"))).ToggleCategory(String("b"), true)
	if !single.Equal(FromPath(p("a", "x"))) {
		t.Fatalf("single mode must ignore category toggles, got %v", single.Paths())
	}
}

func TestToggleDisabledCategoryIsNoop(t *testing.T) {
	tree := Tree{Category("a", "A", Leaf("x", "X")).WithDisabled(true)}
	current := FromPath(p("a", "x"))
	store := NewStore(tree, ModeMultiple, current)
	if next := store.ToggleCategory(String("a"), false); !next.Equal(current) {
		t.Fatalf("expected no change, got %v", next.Paths())
	}
}

func TestNormalizeByMode(t *testing.T) {
	tree := shopTree()
	if got := NewStore(tree, ModeMultiple, Empty()).Normalize(); got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", got)
	}
	current := FromPaths([]Path{p("electronics", "phones"), p("clothing", "mens")})
	got := NewStore(tree, ModeSingle, current).Normalize()
	if len(got) != 1 || !EqualPaths(got[0], p("electronics", "phones")) {
		t.Fatalf("single mode should keep the first path, got %v", got)
	}
}

func TestSelectionJSONShapes(t *testing.T) {
	var single Selection
	if err := json.Unmarshal([]byte(`["type","S19XP"]`), &single); err != nil {
		t.Fatalf("unmarshal single: %v", err)
	}
	if !single.Equal(FromPath(p("type", "S19XP"))) {
		t.Fatalf("single = %v", single.Paths())
	}

	var multi Selection
	if err := json.Unmarshal([]byte(`[["a","x"],["b",1],["a","x"]]`), &multi); err != nil {
		t.Fatalf("unmarshal multiple: %v", err)
	}
	if multi.Len() != 2 {
		t.Fatalf("expected duplicates to collapse, got %v", multi.Paths())
	}

	var null Selection
	if err := json.Unmarshal([]byte(`null`), &null); err != nil || !null.IsEmpty() {
		t.Fatalf("expected null to decode as empty, got %v %v", null.Paths(), err)
	}

	out, err := MarshalSelection(ModeSingle, single)
	if err != nil || string(out) != `["type","S19XP"]` {
		t.Fatalf("MarshalSelection single = %s, %v", out, err)
	}
	out, err = json.Marshal(multi)
	if err != nil || string(out) != `[["a","x"],["b",1]]` {
		t.Fatalf("Marshal multiple = %s, %v", out, err)
	}
	out, err = json.Marshal(Empty())
	if err != nil || string(out) != "null" {
		t.Fatalf("Marshal empty = %s, %v", out, err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Single"); err != nil || m != ModeSingle {
		t.Fatalf("ParseMode(Single) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeMultiple {
		t.Fatalf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("many"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
