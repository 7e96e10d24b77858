package ancestry

import (
	"context"
	"reflect"
	"testing"

	"pedigraph/internal/domain"
)

func cat(id, fatherID, motherID int64) domain.Cat {
	return domain.Cat{
		ID:     id,
		Father: domain.RefFromStorage(fatherID),
		Mother: domain.RefFromStorage(motherID),
	}
}

// threeGenerations: 1 has father 2 and mother 3; 2 has father 4 and
// mother 5; 3 has father 6; 4, 5, 6 are founders.
func threeGenerations() []domain.Cat {
	return []domain.Cat{
		cat(1, 2, 3),
		cat(2, 4, 5),
		cat(3, 6, -1),
		cat(4, -1, -1),
		cat(5, -1, -1),
		cat(6, -1, -1),
	}
}

func TestAncestorsDepthZeroIsEmpty(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	triples, err := trav.Ancestors(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(triples) != 0 {
		t.Fatalf("expected empty result at depth 0, got %v", triples)
	}
}

func TestAncestorsDepthOne(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	triples, err := trav.Ancestors(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}

	want := []domain.AncestryTriple{
		{AncestorID: 2, Depth: 1, Relationship: domain.RelHasFather},
		{AncestorID: 3, Depth: 1, Relationship: domain.RelHasMother},
	}
	if !reflect.DeepEqual(triples, want) {
		t.Fatalf("got %v, want %v", triples, want)
	}
}

func TestAncestorsFullClosure(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	triples, err := trav.Ancestors(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}

	want := []domain.AncestryTriple{
		{AncestorID: 2, Depth: 1, Relationship: domain.RelHasFather},
		{AncestorID: 3, Depth: 1, Relationship: domain.RelHasMother},
		{AncestorID: 4, Depth: 2, Relationship: domain.RelHasFather},
		{AncestorID: 6, Depth: 2, Relationship: domain.RelHasFather},
		{AncestorID: 5, Depth: 2, Relationship: domain.RelHasMother},
	}
	if !reflect.DeepEqual(triples, want) {
		t.Fatalf("got %v, want %v", triples, want)
	}
}

func TestAncestorsDepthBound(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	triples, err := trav.Ancestors(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	for _, triple := range triples {
		if triple.Depth > 1 {
			t.Fatalf("depth bound violated: %v", triple)
		}
	}
}

func TestAncestorsRediscoveryKeepsSmallestDepth(t *testing.T) {
	// 10's father is 20; 10's mother is 30; 30's father is also 20.
	// Pair (20, HAS_FATHER) is reachable at depth 1 and depth 2 and must
	// be reported once, at depth 1.
	pedigree := []domain.Cat{
		cat(10, 20, 30),
		cat(30, 20, -1),
		cat(20, -1, -1),
	}
	trav := NewMemoryTraverser(pedigree)

	triples, err := trav.Ancestors(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}

	want := []domain.AncestryTriple{
		{AncestorID: 20, Depth: 1, Relationship: domain.RelHasFather},
		{AncestorID: 30, Depth: 1, Relationship: domain.RelHasMother},
	}
	if !reflect.DeepEqual(triples, want) {
		t.Fatalf("got %v, want %v", triples, want)
	}
}

func TestAncestorsSameAncestorBothRelationships(t *testing.T) {
	// 2 is both father and mother of 1: two distinct pairs, one per
	// relationship.
	pedigree := []domain.Cat{
		cat(1, 2, 2),
		cat(2, -1, -1),
	}
	trav := NewMemoryTraverser(pedigree)

	triples, err := trav.Ancestors(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}

	want := []domain.AncestryTriple{
		{AncestorID: 2, Depth: 1, Relationship: domain.RelHasFather},
		{AncestorID: 2, Depth: 1, Relationship: domain.RelHasMother},
	}
	if !reflect.DeepEqual(triples, want) {
		t.Fatalf("got %v, want %v", triples, want)
	}
}

func TestAncestorsUnknownRootIsEmpty(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	triples, err := trav.Ancestors(context.Background(), 999, 5)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(triples) != 0 {
		t.Fatalf("expected empty result for unknown root, got %v", triples)
	}
}

func TestAncestorsCancelledContext(t *testing.T) {
	trav := NewMemoryTraverser(threeGenerations())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := trav.Ancestors(ctx, 1, 5); err == nil {
		t.Fatalf("expected context error")
	}
}
