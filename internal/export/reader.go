package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"pedigraph/internal/domain"
)

// ReadDimension loads a previously exported dimension CSV back into a
// table. The header must match the spec's column layout exactly.
func ReadDimension(path string, spec domain.DimensionSpec) (domain.DimensionTable, error) {
	rows, err := readAll(path)
	if err != nil {
		return domain.DimensionTable{}, err
	}
	if err := checkHeader(rows[0], spec.Columns()); err != nil {
		return domain.DimensionTable{}, fmt.Errorf("%s: %w", path, err)
	}

	table := domain.DimensionTable{Spec: spec}
	for i, row := range rows[1:] {
		if len(row) != len(spec.Columns()) {
			return domain.DimensionTable{}, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i+1, len(spec.Columns()), len(row))
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return domain.DimensionTable{}, fmt.Errorf("%s row %d: invalid id %q: %w", path, i+1, row[0], err)
		}

		keyEnd := 1 + len(spec.KeyColumns)
		table.Rows = append(table.Rows, domain.DimensionRow{
			ID:         id,
			Key:        append([]string(nil), row[1:keyEnd]...),
			Attributes: append([]string(nil), row[keyEnd:]...),
		})
	}
	return table, nil
}

// ReadCats loads a previously exported fact CSV back into linked cats.
func ReadCats(path string) ([]domain.Cat, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := checkHeader(rows[0], domain.CatColumns); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cats := make([]domain.Cat, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(domain.CatColumns) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i+1, len(domain.CatColumns), len(row))
		}

		ids := make([]int64, 9)
		for j, col := range []int{0, 8, 9, 10, 11, 12, 13, 14, 15} {
			id, err := strconv.ParseInt(row[col], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", path, i+1, domain.CatColumns[col], err)
			}
			ids[j] = id
		}

		cats = append(cats, domain.Cat{
			ID:                 ids[0],
			Name:               row[1],
			DateOfBirth:        row[2],
			Gender:             row[3],
			RegistrationNumber: row[4],
			TitleBefore:        row[5],
			TitleAfter:         row[6],
			Chip:               row[7],
			Breed:              domain.RefFromStorage(ids[1]),
			Color:              domain.RefFromStorage(ids[2]),
			CountryOrigin:      domain.RefFromStorage(ids[3]),
			CountryCurrent:     domain.RefFromStorage(ids[4]),
			Cattery:            domain.RefFromStorage(ids[5]),
			SourceDB:           domain.RefFromStorage(ids[6]),
			Father:             domain.RefFromStorage(ids[7]),
			Mother:             domain.RefFromStorage(ids[8]),
		})
	}
	return cats, nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	return rows, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("header has %d columns, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("header column %d is %q, expected %q", i, got[i], want[i])
		}
	}
	return nil
}
