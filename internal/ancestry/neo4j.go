package ancestry

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pedigraph/internal/domain"
	"pedigraph/internal/graphstore"
)

// Neo4jTraverser answers ancestry queries with a variable-length pattern
// match over the seeded graph.
type Neo4jTraverser struct {
	client *graphstore.Client
}

// NewNeo4jTraverser creates a traverser over client.
func NewNeo4jTraverser(client *graphstore.Client) *Neo4jTraverser {
	return &Neo4jTraverser{client: client}
}

// ancestryCypher matches every parent path up to the depth bound and
// collapses it to one row per (ancestor, relationship) pair at the
// smallest depth. The upper bound must be spliced into the pattern: the
// variable-length quantifier does not accept query parameters.
func ancestryCypher(maxDepth int) string {
	return fmt.Sprintf(`MATCH path = (c:Cat {id: $root_id})-[:HAS_FATHER|HAS_MOTHER*1..%d]->(ancestor:Cat)
WITH ancestor.id AS ancestor_id, length(path) AS depth, type(last(relationships(path))) AS relationship
WITH ancestor_id, relationship, min(depth) AS depth
RETURN ancestor_id, depth, relationship
ORDER BY depth, ancestor_id, relationship`, maxDepth)
}

// Ancestors implements Traverser.
func (n *Neo4jTraverser) Ancestors(ctx context.Context, rootID int64, maxDepth int) ([]domain.AncestryTriple, error) {
	if maxDepth <= 0 {
		return []domain.AncestryTriple{}, nil
	}

	session := n.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: n.client.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, ancestryCypher(maxDepth), map[string]any{"root_id": rootID})
		if err != nil {
			return nil, err
		}

		triples := []domain.AncestryTriple{}
		for res.Next(ctx) {
			record := res.Record()

			ancestorID, ok := record.Values[0].(int64)
			if !ok {
				return nil, fmt.Errorf("unexpected ancestor id type %T", record.Values[0])
			}
			depth, ok := record.Values[1].(int64)
			if !ok {
				return nil, fmt.Errorf("unexpected depth type %T", record.Values[1])
			}
			relationship, ok := record.Values[2].(string)
			if !ok {
				return nil, fmt.Errorf("unexpected relationship type %T", record.Values[2])
			}

			triples = append(triples, domain.AncestryTriple{
				AncestorID:   ancestorID,
				Depth:        int(depth),
				Relationship: domain.Relationship(relationship),
			})
		}
		return triples, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query graph ancestry: %w", err)
	}

	return result.([]domain.AncestryTriple), nil
}
