package ancestry

import (
	"context"

	"pedigraph/internal/domain"
)

// Traverser walks a cat's ancestor closure up to maxDepth generations.
//
// All implementations return the same result set for the same pedigree:
// one triple per distinct (ancestor id, relationship) pair, carrying the
// smallest depth at which that pair is reachable, sorted by depth, then
// ancestor id, then relationship. A maxDepth of zero or less, or a root
// that has no ancestors, yields an empty slice, not an error.
type Traverser interface {
	Ancestors(ctx context.Context, rootID int64, maxDepth int) ([]domain.AncestryTriple, error)
}
