package ancestry

import (
	"context"
	"fmt"

	"pedigraph/internal/db"
	"pedigraph/internal/domain"
)

// ancestryQuery enumerates every parent path from the root up to the depth
// bound, then collapses it to one row per (ancestor, relationship) pair at
// the smallest depth. Sentinel parents (-1) terminate recursion instead of
// joining back into the table.
const ancestryQuery = `
WITH RECURSIVE ancestry(ancestor_id, depth, relationship) AS (
    SELECT p.ancestor_id, 1, p.relationship
    FROM (
        SELECT father_id AS ancestor_id, 'HAS_FATHER' AS relationship FROM cats WHERE id = $1
        UNION ALL
        SELECT mother_id AS ancestor_id, 'HAS_MOTHER' AS relationship FROM cats WHERE id = $1
    ) p
    WHERE p.ancestor_id <> -1
    UNION ALL
    SELECT step.ancestor_id, a.depth + 1, step.relationship
    FROM ancestry a
    JOIN cats c ON c.id = a.ancestor_id
    CROSS JOIN LATERAL (
        SELECT c.father_id AS ancestor_id, 'HAS_FATHER' AS relationship
        UNION ALL
        SELECT c.mother_id AS ancestor_id, 'HAS_MOTHER' AS relationship
    ) step
    WHERE step.ancestor_id <> -1 AND a.depth < $2
)
SELECT ancestor_id, MIN(depth) AS depth, relationship
FROM ancestry
GROUP BY ancestor_id, relationship
ORDER BY depth, ancestor_id, relationship`

// PostgresTraverser answers ancestry queries with a recursive join over
// the cats fact table.
type PostgresTraverser struct {
	conn *db.Connection
}

// NewPostgresTraverser creates a traverser over conn.
func NewPostgresTraverser(conn *db.Connection) *PostgresTraverser {
	return &PostgresTraverser{conn: conn}
}

// Ancestors implements Traverser.
func (p *PostgresTraverser) Ancestors(ctx context.Context, rootID int64, maxDepth int) ([]domain.AncestryTriple, error) {
	if maxDepth <= 0 {
		return []domain.AncestryTriple{}, nil
	}

	rows, err := p.conn.Pool.Query(ctx, ancestryQuery, rootID, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("query ancestry: %w", err)
	}
	defer rows.Close()

	triples := []domain.AncestryTriple{}
	for rows.Next() {
		var (
			ancestorID   int64
			depth        int
			relationship string
		)
		if err := rows.Scan(&ancestorID, &depth, &relationship); err != nil {
			return nil, fmt.Errorf("scan ancestry row: %w", err)
		}
		triples = append(triples, domain.AncestryTriple{
			AncestorID:   ancestorID,
			Depth:        depth,
			Relationship: domain.Relationship(relationship),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ancestry rows: %w", err)
	}

	return triples, nil
}
