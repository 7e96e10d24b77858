package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pedigraph/internal/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	return rows
}

func TestWriteDimension(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	table := domain.DimensionTable{
		Spec: domain.BreedSpec,
		Rows: []domain.DimensionRow{
			{ID: domain.UnknownID, Key: []string{domain.UnknownKey}, Attributes: []string{domain.UnknownKey}},
			{ID: 1, Key: []string{"BEN"}, Attributes: []string{"Bengal"}},
			{ID: 2, Key: []string{"MCO"}, Attributes: []string{"Maine Coon"}},
		},
	}

	path, err := svc.WriteDimension(table)
	if err != nil {
		t.Fatalf("write dimension: %v", err)
	}
	if filepath.Base(path) != "breeds.csv" {
		t.Fatalf("expected breeds.csv, got %s", path)
	}

	rows := readCSV(t, path)
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "id,breed_code,breed_full_name" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "-1" || rows[1][1] != domain.UnknownKey {
		t.Fatalf("expected sentinel row first, got %v", rows[1])
	}
	if rows[2][0] != "1" || rows[2][1] != "BEN" {
		t.Fatalf("unexpected first data row: %v", rows[2])
	}
}

func TestWriteCats(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	cats := []domain.Cat{
		{
			ID:     7,
			Name:   "Luna",
			Gender: "female",
			Breed:  domain.KnownRef(2),
			Color:  domain.UnknownRef(),
			Father: domain.KnownRef(3),
			Mother: domain.UnknownRef(),
		},
	}

	path, err := svc.WriteCats(cats)
	if err != nil {
		t.Fatalf("write cats: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if len(rows[0]) != len(domain.CatColumns) {
		t.Fatalf("header width mismatch: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "7" || row[1] != "Luna" {
		t.Fatalf("unexpected identity columns: %v", row)
	}
	// breed_id, color_id, father_id, mother_id positions follow CatColumns.
	if row[8] != "2" || row[9] != "-1" {
		t.Fatalf("unexpected dimension ids: %v", row)
	}
	if row[14] != "3" || row[15] != "-1" {
		t.Fatalf("unexpected parent ids: %v", row)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	if _, err := svc.WriteCats(nil); err != nil {
		t.Fatalf("write cats: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "cats.csv" {
		t.Fatalf("expected a single promoted file, got %v", entries)
	}
}
