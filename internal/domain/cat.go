package domain

// Record is one raw source row keyed by sanitized column name, with values
// already passed through natural-key normalization. Columns absent from the
// source read as empty strings.
type Record map[string]string

// Get returns the value of a column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return r[column]
}

// Cat is the linked fact row: every descriptive value replaced by a
// surrogate dimension reference. All references are total; unresolved
// lookups carry the sentinel, never a null.
type Cat struct {
	ID                 int64
	Name               string
	DateOfBirth        string
	Gender             string
	RegistrationNumber string
	TitleBefore        string
	TitleAfter         string
	Chip               string

	Breed          DimensionRef
	Color          DimensionRef
	CountryOrigin  DimensionRef
	CountryCurrent DimensionRef
	Cattery        DimensionRef
	SourceDB       DimensionRef

	Father DimensionRef
	Mother DimensionRef
}

// CatColumns is the fact CSV header, id first, foreign keys last.
var CatColumns = []string{
	"id",
	"name",
	"date_of_birth",
	"gender",
	"registration_number_current",
	"title_before",
	"title_after",
	"chip",
	"breed_id",
	"color_id",
	"country_origin_id",
	"country_current_id",
	"cattery_id",
	"source_db_id",
	"father_id",
	"mother_id",
}
