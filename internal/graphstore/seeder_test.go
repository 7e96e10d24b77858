package graphstore

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNodeStatement(t *testing.T) {
	stmt := nodeStatement("Breed")

	if !strings.Contains(stmt, "UNWIND $rows AS row") {
		t.Fatalf("statement must unwind row batches: %s", stmt)
	}
	if !strings.Contains(stmt, "MERGE (n:Breed {id: row.id})") {
		t.Fatalf("statement must merge on label and id: %s", stmt)
	}
	if !strings.Contains(stmt, "SET n += row") {
		t.Fatalf("statement must copy row properties: %s", stmt)
	}
}

func TestEdgeStatement(t *testing.T) {
	stmt := edgeStatement("HAS_FATHER", "Cat", "Cat")

	if !strings.Contains(stmt, "MATCH (a:Cat {id: row.from}), (b:Cat {id: row.to})") {
		t.Fatalf("statement must match both endpoints: %s", stmt)
	}
	if !strings.Contains(stmt, "MERGE (a)-[:HAS_FATHER]->(b)") {
		t.Fatalf("statement must merge the relationship: %s", stmt)
	}
}

func TestIndexStatementsAreIdempotent(t *testing.T) {
	statements := indexStatements()

	if len(statements) != 7 {
		t.Fatalf("expected 6 id indexes + 1 fulltext index, got %d", len(statements))
	}
	for _, stmt := range statements {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Fatalf("index statement not idempotent: %s", stmt)
		}
	}
	last := statements[len(statements)-1]
	if !strings.Contains(last, "FULLTEXT") || !strings.Contains(last, "n.name") {
		t.Fatalf("expected fulltext name index last, got %s", last)
	}
}

func TestMarkerLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final", ".seeded")
	marker := NewMarker(path)

	exists, err := marker.Exists()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("marker should not exist before write")
	}

	if err := marker.Write(); err != nil {
		t.Fatalf("write: %v", err)
	}

	exists, err = marker.Exists()
	if err != nil {
		t.Fatalf("exists after write: %v", err)
	}
	if !exists {
		t.Fatalf("marker should exist after write")
	}

	if err := marker.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := marker.Clear(); err != nil {
		t.Fatalf("clear must tolerate a missing marker: %v", err)
	}

	exists, _ = marker.Exists()
	if exists {
		t.Fatalf("marker should be gone after clear")
	}
}
