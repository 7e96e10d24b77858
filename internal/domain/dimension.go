package domain

import "strings"

const (
	// UnknownID is the reserved surrogate id for the sentinel dimension row.
	UnknownID int64 = -1

	// UnknownKey is the canonical natural key of the sentinel row.
	UnknownKey = "unknown"

	keySeparator = "\x1f"
)

// DimensionRef is the result of a dimension lookup: either a known surrogate
// id or the unknown sentinel. Code compares refs, not raw -1 values; the
// numeric sentinel appears only at storage boundaries.
type DimensionRef struct {
	id    int64
	known bool
}

// KnownRef returns a reference to an existing dimension row.
func KnownRef(id int64) DimensionRef {
	return DimensionRef{id: id, known: true}
}

// UnknownRef returns the sentinel reference.
func UnknownRef() DimensionRef {
	return DimensionRef{}
}

// Known reports the surrogate id and whether the reference is resolved.
func (r DimensionRef) Known() (int64, bool) {
	return r.id, r.known
}

// IsUnknown reports whether the reference is the sentinel.
func (r DimensionRef) IsUnknown() bool {
	return !r.known
}

// StorageID renders the reference for persistence: the surrogate id, or -1.
func (r DimensionRef) StorageID() int64 {
	if !r.known {
		return UnknownID
	}
	return r.id
}

// RefFromStorage converts a persisted id back into a reference.
func RefFromStorage(id int64) DimensionRef {
	if id == UnknownID {
		return UnknownRef()
	}
	return KnownRef(id)
}

// DimensionSpec describes one dimension table: its storage name, graph node
// label, and column layout. KeyColumns form the natural key tuple; the
// remaining descriptive columns carry first-seen attribute values.
type DimensionSpec struct {
	Name             string
	Label            string
	KeyColumns       []string
	AttributeColumns []string
}

// Columns returns the CSV header: id, key columns, attribute columns.
func (s DimensionSpec) Columns() []string {
	cols := make([]string, 0, 1+len(s.KeyColumns)+len(s.AttributeColumns))
	cols = append(cols, "id")
	cols = append(cols, s.KeyColumns...)
	cols = append(cols, s.AttributeColumns...)
	return cols
}

// DimensionRow is one row of a dimension table. Key and Attributes align
// with the spec's KeyColumns and AttributeColumns.
type DimensionRow struct {
	ID         int64
	Key        []string
	Attributes []string
}

// DimensionTable is a fully built dimension: the sentinel row first, then
// real rows in ascending natural-key order with consecutive ids from 1.
type DimensionTable struct {
	Spec DimensionSpec
	Rows []DimensionRow
}

// Mapping resolves natural keys to surrogate references.
type Mapping map[string]DimensionRef

// JoinKey canonicalizes a natural key tuple for mapping lookups.
func JoinKey(key []string) string {
	return strings.Join(key, keySeparator)
}

// Lookup resolves a natural key tuple. Blank tuples, the unknown token, and
// unseen keys all resolve to the sentinel; the lookup is total.
func (m Mapping) Lookup(key ...string) DimensionRef {
	if len(key) == 0 {
		return UnknownRef()
	}
	if ref, ok := m[JoinKey(key)]; ok {
		return ref
	}
	return UnknownRef()
}

// Pedigree dimension specs, matching the final CSV schemas.
var (
	BreedSpec = DimensionSpec{
		Name:             "breeds",
		Label:            "Breed",
		KeyColumns:       []string{"breed_code"},
		AttributeColumns: []string{"breed_full_name"},
	}

	ColorSpec = DimensionSpec{
		Name:             "colors",
		Label:            "Color",
		KeyColumns:       []string{"breed_code", "color_code"},
		AttributeColumns: []string{"color_definition", "full_breed_name", "breed_group", "breed_category"},
	}

	CountrySpec = DimensionSpec{
		Name:             "countries",
		Label:            "Country",
		KeyColumns:       []string{"country_name"},
		AttributeColumns: []string{"alpha_2", "alpha_3", "iso_numeric"},
	}

	CatterySpec = DimensionSpec{
		Name:             "catteries",
		Label:            "Cattery",
		KeyColumns:       []string{"cattery_name"},
		AttributeColumns: []string{},
	}

	SourceDBSpec = DimensionSpec{
		Name:             "source_dbs",
		Label:            "SourceDB",
		KeyColumns:       []string{"source_db_name"},
		AttributeColumns: []string{},
	}
)
