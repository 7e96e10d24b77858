package dimension

import (
	"fmt"
	"strconv"

	"pedigraph/internal/domain"
)

// Mappings bundles one lookup mapping per fact foreign key.
type Mappings struct {
	Breed    domain.Mapping
	Color    domain.Mapping
	Country  domain.Mapping
	Cattery  domain.Mapping
	SourceDB domain.Mapping
}

// Link rewrites raw fact records into fully linked cat rows. Every foreign
// key lookup is total: keys absent from a mapping (blank values, the unknown
// token, unseen values) resolve to the sentinel, never to a null. Only a
// record without a parseable primary id fails the stage.
func Link(records []domain.Record, maps Mappings) ([]domain.Cat, error) {
	cats := make([]domain.Cat, 0, len(records))

	for idx, record := range records {
		id, err := strconv.ParseInt(record.Get("id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid cat id %q: %w", idx, record.Get("id"), err)
		}

		cats = append(cats, domain.Cat{
			ID:                 id,
			Name:               record.Get("name"),
			DateOfBirth:        record.Get("date_of_birth"),
			Gender:             record.Get("gender"),
			RegistrationNumber: record.Get("registration_number_current"),
			TitleBefore:        record.Get("title_before"),
			TitleAfter:         record.Get("title_after"),
			Chip:               record.Get("chip"),

			Breed:          maps.Breed.Lookup(record.Get("breed_code")),
			Color:          maps.Color.Lookup(record.Get("breed_code"), record.Get("color_code")),
			CountryOrigin:  maps.Country.Lookup(record.Get("country_origin")),
			CountryCurrent: maps.Country.Lookup(record.Get("country_current")),
			Cattery:        maps.Cattery.Lookup(record.Get("cattery_name")),
			SourceDB:       maps.SourceDB.Lookup(record.Get("source_db_name")),

			Father: parentRef(record.Get("father_id")),
			Mother: parentRef(record.Get("mother_id")),
		})
	}

	return cats, nil
}

// parentRef parses a self-reference column. Blank, unknown, unparseable,
// and explicit -1 values all terminate in the sentinel.
func parentRef(raw string) domain.DimensionRef {
	if raw == "" || raw == domain.UnknownKey {
		return domain.UnknownRef()
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.UnknownRef()
	}
	return domain.RefFromStorage(id)
}
