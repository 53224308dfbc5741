package cascade

import "testing"

func TestEqualPaths(t *testing.T) {
	cases := []struct {
		name string
		a, b Path
		want bool
	}{
		{"equal", p("a", "b"), p("a", "b"), true},
		{"different length", p("a"), p("a", "b"), false},
		{"different element", p("a", "b"), p("a", "c"), false},
		{"kind mismatch", p("a", true), p("a", "true"), false},
		{"numeric", p("n", 1), p("n", 1.0), true},
		{"empty never matches", Path{}, Path{}, false},
		{"nil never matches", nil, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EqualPaths(tc.a, tc.b); got != tc.want {
				t.Fatalf("EqualPaths(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestContainsPathUsesValueEquality(t *testing.T) {
	set := []Path{p("a", "b"), p("c", 1)}
	if !ContainsPath(set, NewPath("c", 1)) {
		t.Fatalf("expected structurally equal path to be found")
	}
	if ContainsPath(set, p("c", "1")) {
		t.Fatalf("expected string 1 not to match number 1")
	}
	if ContainsPath(set, Path{}) {
		t.Fatalf("expected empty path never to match")
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []Path{p("a", "1"), p("b", "2"), p("a", "1"), {}, p("a", 1), p("b", "2")}
	got := Dedupe(in)
	want := []Path{p("a", "1"), p("b", "2"), p("a", 1)}
	if len(got) != len(want) {
		t.Fatalf("Dedupe returned %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !EqualPaths(got[i], want[i]) {
			t.Fatalf("path %d = %v, want %v", i, got[i], want[i])
		}
	}
	got[0][0] = String("mutated")
	if !in[0][0].Equal(String("a")) {
		t.Fatalf("Dedupe must not share backing arrays with its input")
	}
}

func TestParsePath(t *testing.T) {
	got := ParsePath(" type / S19XP /")
	if !EqualPaths(got, p("type", "S19XP")) {
		t.Fatalf("ParsePath = %v", got)
	}
	if got.String() != "type/S19XP" {
		t.Fatalf("String() = %q", got.String())
	}
}
