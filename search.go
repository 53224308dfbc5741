package cascade

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// compositeSeparator joins category and leaf labels in search results.
const compositeSeparator = " / "

// Entry is one category → leaf pair of the flattened catalog.
type Entry struct {
	Path          Path
	Label         string
	CategoryLabel string
	LeafLabel     string
	Disabled      bool
}

// Segment is one run of highlighted text.
type Segment struct {
	Text  string
	Match bool
}

// Flatten lists every category → leaf pair in catalog order. Only one level
// of categorisation is indexed; top-level leaves and deeper nodes are skipped.
func Flatten(tree Tree) []Entry {
	var out []Entry
	for _, category := range tree {
		if !category.IsCategory() {
			continue
		}
		for _, leaf := range category.Children {
			if leaf.IsCategory() {
				continue
			}
			out = append(out, Entry{
				Path:          Path{category.Value, leaf.Value},
				Label:         category.Label + compositeSeparator + leaf.Label,
				CategoryLabel: category.Label,
				LeafLabel:     leaf.Label,
				Disabled:      category.Disabled || leaf.Disabled,
			})
		}
	}
	return out
}

// Filter keeps entries whose category, leaf or composite label contains query,
// ignoring case. A blank query returns every entry in order.
func Filter(entries []Entry, query string) []Entry {
	needle, ok := foldQuery(query)
	if !ok {
		return append([]Entry(nil), entries...)
	}
	caser := cases.Fold()
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entryMatches(haystacks(caser, entry), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// Highlight splits text around occurrences of query under the same folding
// Filter uses, so every Filter hit on a label marks at least one span. The
// query is trimmed and matched literally: "XP " highlights "XP". A match is
// the shortest run of whole runes whose folded form contains the query, so
// "ss" marks the "ß" in "Straße".
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	needle, ok := foldQuery(query)
	if !ok {
		return []Segment{{Text: text}}
	}
	caser := cases.Fold()
	var segments []Segment
	last := 0
	for last < len(text) {
		start, end, found := nextMatch(caser, text, last, needle)
		if !found {
			break
		}
		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Match: true})
		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// nextMatch finds the earliest end offset after from whose folded prefix
// contains needle, then drops leading runes while the span still does.
func nextMatch(caser cases.Caser, text string, from int, needle string) (int, int, bool) {
	end := -1
	for j := from; j < len(text); {
		_, size := utf8.DecodeRuneInString(text[j:])
		j += size
		if strings.Contains(foldText(caser, text[from:j]), needle) {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, 0, false
	}
	start := from
	for start < end {
		_, size := utf8.DecodeRuneInString(text[start:])
		if !strings.Contains(foldText(caser, text[start+size:end]), needle) {
			break
		}
		start += size
	}
	return start, end, true
}

func foldQuery(query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", false
	}
	return foldText(cases.Fold(), trimmed), true
}

func foldText(caser cases.Caser, s string) string {
	return caser.String(norm.NFC.String(s))
}

func haystacks(caser cases.Caser, entry Entry) [3]string {
	return [3]string{
		foldText(caser, entry.CategoryLabel),
		foldText(caser, entry.LeafLabel),
		foldText(caser, entry.Label),
	}
}

func entryMatches(folded [3]string, needle string) bool {
	for _, hay := range folded {
		if strings.Contains(hay, needle) {
			return true
		}
	}
	return false
}
