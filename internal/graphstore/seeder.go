package graphstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"pedigraph/internal/projection"
)

// DefaultBatchSize is the number of rows sent per UNWIND statement.
const DefaultBatchSize = 25000

// Seeder loads a projected graph model into the graph database. Node and
// relationship statements use MERGE keyed on (label, id), so re-running a
// seed against existing data is a no-op rather than a duplication.
type Seeder struct {
	client    *Client
	batchSize int
	log       *zap.Logger
}

// NewSeeder creates a seeder. A batchSize of zero or less falls back to
// DefaultBatchSize.
func NewSeeder(client *Client, batchSize int, log *zap.Logger) *Seeder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Seeder{client: client, batchSize: batchSize, log: log}
}

// Seed writes all nodes, creates indexes, then writes all relationships.
// Nodes go first so every MATCH in the relationship statements finds its
// endpoints; indexes go before relationships so those lookups are cheap.
func (s *Seeder) Seed(ctx context.Context, model projection.Model) error {
	session := s.client.session(ctx)
	defer session.Close(ctx)

	if err := s.seedNodes(ctx, session, model.Nodes); err != nil {
		return err
	}
	if err := s.createIndexes(ctx, session); err != nil {
		return err
	}
	if err := s.seedEdges(ctx, session, model.Edges); err != nil {
		return err
	}

	s.log.Info("graph database seeded",
		zap.Int("nodes", len(model.Nodes)),
		zap.Int("edges", len(model.Edges)))
	return nil
}

func (s *Seeder) seedNodes(ctx context.Context, session neo4j.SessionWithContext, nodes []projection.Node) error {
	grouped := make(map[string][]map[string]any)
	for _, node := range nodes {
		grouped[node.Label] = append(grouped[node.Label], node.Props)
	}

	for _, label := range sortedKeys(grouped) {
		rows := grouped[label]
		statement := nodeStatement(label)

		for start := 0; start < len(rows); start += s.batchSize {
			batch := rows[start:min(start+s.batchSize, len(rows))]
			if err := runWrite(ctx, session, statement, map[string]any{"rows": batch}); err != nil {
				return fmt.Errorf("seed %s nodes: %w", label, err)
			}
		}

		s.log.Info("nodes created", zap.String("label", label), zap.Int("count", len(rows)))
	}
	return nil
}

func (s *Seeder) seedEdges(ctx context.Context, session neo4j.SessionWithContext, edges []projection.Edge) error {
	type edgeKind struct {
		relType   string
		fromLabel string
		toLabel   string
	}

	grouped := make(map[edgeKind][]map[string]any)
	for _, edge := range edges {
		kind := edgeKind{relType: edge.Type, fromLabel: edge.FromLabel, toLabel: edge.ToLabel}
		grouped[kind] = append(grouped[kind], map[string]any{
			"from": edge.FromID,
			"to":   edge.ToID,
		})
	}

	kinds := make([]edgeKind, 0, len(grouped))
	for kind := range grouped {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].relType < kinds[j].relType })

	for _, kind := range kinds {
		rows := grouped[kind]
		statement := edgeStatement(kind.relType, kind.fromLabel, kind.toLabel)

		for start := 0; start < len(rows); start += s.batchSize {
			batch := rows[start:min(start+s.batchSize, len(rows))]
			if err := runWrite(ctx, session, statement, map[string]any{"rows": batch}); err != nil {
				return fmt.Errorf("seed %s relationships: %w", kind.relType, err)
			}
		}

		s.log.Info("relationships created", zap.String("type", kind.relType), zap.Int("count", len(rows)))
	}
	return nil
}

func (s *Seeder) createIndexes(ctx context.Context, session neo4j.SessionWithContext) error {
	for _, statement := range indexStatements() {
		if err := runWrite(ctx, session, statement, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	s.log.Info("graph indexes created")
	return nil
}

func runWrite(ctx context.Context, session neo4j.SessionWithContext, statement string, params map[string]any) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, statement, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

// nodeStatement merges one node per row, keyed on id, and copies all row
// properties onto the node.
func nodeStatement(label string) string {
	return fmt.Sprintf(`UNWIND $rows AS row
MERGE (n:%s {id: row.id})
SET n += row`, label)
}

// edgeStatement merges one relationship per row between already-seeded
// endpoints.
func edgeStatement(relType, fromLabel, toLabel string) string {
	return fmt.Sprintf(`UNWIND $rows AS row
MATCH (a:%s {id: row.from}), (b:%s {id: row.to})
MERGE (a)-[:%s]->(b)`, fromLabel, toLabel, relType)
}

// indexStatements covers the id lookup per label plus fulltext search on
// cat names.
func indexStatements() []string {
	idIndexes := []struct {
		name  string
		label string
	}{
		{"cat_id_index", "Cat"},
		{"breed_id_index", "Breed"},
		{"color_id_index", "Color"},
		{"country_id_index", "Country"},
		{"cattery_id_index", "Cattery"},
		{"src_db_id_index", "SourceDB"},
	}

	statements := make([]string, 0, len(idIndexes)+1)
	for _, idx := range idIndexes {
		statements = append(statements,
			fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.id)", idx.name, idx.label))
	}
	statements = append(statements,
		"CREATE FULLTEXT INDEX cat_name_fulltext IF NOT EXISTS FOR (n:Cat) ON EACH [n.name]")
	return statements
}

func sortedKeys(m map[string][]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
