package ancestry

import (
	"context"

	"pedigraph/internal/domain"
)

type parents struct {
	father domain.DimensionRef
	mother domain.DimensionRef
}

// MemoryTraverser walks the pedigree held in process. It serves as the
// reference implementation the database-backed traversers are checked
// against, and as the fallback when no database is around.
type MemoryTraverser struct {
	byID map[int64]parents
}

// NewMemoryTraverser indexes the linked cats by id.
func NewMemoryTraverser(cats []domain.Cat) *MemoryTraverser {
	byID := make(map[int64]parents, len(cats))
	for _, cat := range cats {
		byID[cat.ID] = parents{father: cat.Father, mother: cat.Mother}
	}
	return &MemoryTraverser{byID: byID}
}

// Ancestors runs a breadth-first walk from rootID. Each cat's subtree is
// expanded only on first visit; a (ancestor, relationship) pair is
// recorded at the first depth it appears, which breadth-first order
// guarantees is the smallest.
func (m *MemoryTraverser) Ancestors(ctx context.Context, rootID int64, maxDepth int) ([]domain.AncestryTriple, error) {
	if maxDepth <= 0 {
		return []domain.AncestryTriple{}, nil
	}

	type discovery struct {
		ancestorID   int64
		relationship domain.Relationship
	}

	expanded := map[int64]bool{rootID: true}
	recorded := map[discovery]bool{}
	triples := []domain.AncestryTriple{}

	frontier := []int64{rootID}
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var next []int64
		for _, id := range frontier {
			p, ok := m.byID[id]
			if !ok {
				continue
			}

			links := []struct {
				ref domain.DimensionRef
				rel domain.Relationship
			}{
				{p.father, domain.RelHasFather},
				{p.mother, domain.RelHasMother},
			}

			for _, link := range links {
				ancestorID, known := link.ref.Known()
				if !known {
					continue
				}

				d := discovery{ancestorID: ancestorID, relationship: link.rel}
				if !recorded[d] {
					recorded[d] = true
					triples = append(triples, domain.AncestryTriple{
						AncestorID:   ancestorID,
						Depth:        depth,
						Relationship: link.rel,
					})
				}

				if !expanded[ancestorID] {
					expanded[ancestorID] = true
					next = append(next, ancestorID)
				}
			}
		}
		frontier = next
	}

	domain.SortTriples(triples)
	return triples, nil
}
