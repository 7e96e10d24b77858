package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pedigraph/internal/domain"
)

// Service writes the finished dimensional model as CSV files. Files are
// written to a temp path and promoted by rename so a failed write never
// leaves a partial table behind.
type Service struct {
	outDir string
}

// NewService creates a new export service targeting outDir.
func NewService(outDir string) *Service {
	return &Service{outDir: filepath.Clean(outDir)}
}

// WriteDimension persists one dimension table as <name>.csv: header, the
// sentinel row, then rows in ascending natural-key order.
func (s *Service) WriteDimension(table domain.DimensionTable) (string, error) {
	fileName := table.Spec.Name + ".csv"

	return s.writeFile(fileName, func(w *csv.Writer) error {
		if err := w.Write(table.Spec.Columns()); err != nil {
			return fmt.Errorf("write header: %w", err)
		}

		row := make([]string, 0, 1+len(table.Spec.KeyColumns)+len(table.Spec.AttributeColumns))
		for _, dim := range table.Rows {
			row = row[:0]
			row = append(row, strconv.FormatInt(dim.ID, 10))
			row = append(row, dim.Key...)
			row = append(row, dim.Attributes...)
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write dimension row: %w", err)
			}
		}
		return nil
	})
}

// WriteCats persists the linked fact table as cats.csv.
func (s *Service) WriteCats(cats []domain.Cat) (string, error) {
	return s.writeFile("cats.csv", func(w *csv.Writer) error {
		if err := w.Write(domain.CatColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}

		for _, cat := range cats {
			row := []string{
				strconv.FormatInt(cat.ID, 10),
				cat.Name,
				cat.DateOfBirth,
				cat.Gender,
				cat.RegistrationNumber,
				cat.TitleBefore,
				cat.TitleAfter,
				cat.Chip,
				strconv.FormatInt(cat.Breed.StorageID(), 10),
				strconv.FormatInt(cat.Color.StorageID(), 10),
				strconv.FormatInt(cat.CountryOrigin.StorageID(), 10),
				strconv.FormatInt(cat.CountryCurrent.StorageID(), 10),
				strconv.FormatInt(cat.Cattery.StorageID(), 10),
				strconv.FormatInt(cat.SourceDB.StorageID(), 10),
				strconv.FormatInt(cat.Father.StorageID(), 10),
				strconv.FormatInt(cat.Mother.StorageID(), 10),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write cat row: %w", err)
			}
		}
		return nil
	})
}

func (s *Service) writeFile(fileName string, write func(*csv.Writer) error) (string, error) {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure export directory: %w", err)
	}

	tempFile, err := os.CreateTemp(s.outDir, fileName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp export file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	buffered := bufio.NewWriterSize(tempFile, 1<<20) // 1 MiB buffer for streaming writes
	csvWriter := csv.NewWriter(buffered)

	if err := write(csvWriter); err != nil {
		return "", err
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return "", fmt.Errorf("flush rows: %w", err)
	}
	if err := buffered.Flush(); err != nil {
		return "", fmt.Errorf("flush buffered rows: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return "", fmt.Errorf("sync export file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}

	finalPath := filepath.Join(s.outDir, fileName)
	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("promote export file: %w", err)
	}
	cleanup = false

	return finalPath, nil
}
