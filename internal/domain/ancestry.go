package domain

import "sort"

// Relationship is the typed parent edge label.
type Relationship string

const (
	RelHasFather Relationship = "HAS_FATHER"
	RelHasMother Relationship = "HAS_MOTHER"
)

// AncestryTriple is one traversal result row: an ancestor, the hop count at
// which it was first discovered, and the edge label on the final hop of the
// discovering path.
type AncestryTriple struct {
	AncestorID   int64
	Depth        int
	Relationship Relationship
}

// SortTriples orders triples by (depth, ancestor id, relationship), the
// canonical result order shared by every traversal backend.
func SortTriples(triples []AncestryTriple) {
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].Depth != triples[j].Depth {
			return triples[i].Depth < triples[j].Depth
		}
		if triples[i].AncestorID != triples[j].AncestorID {
			return triples[i].AncestorID < triples[j].AncestorID
		}
		return triples[i].Relationship < triples[j].Relationship
	})
}
