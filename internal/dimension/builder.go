package dimension

import (
	"sort"

	"pedigraph/internal/domain"
)

// Build produces a dimension table from raw fact records plus the mapping
// used to rewrite fact rows against it.
//
// Distinct natural keys are collected (sentinel keys excluded), sorted
// lexicographically on the full key tuple, and assigned consecutive ids
// from 1. The sentinel row (id -1, key "unknown") is prepended so every
// table has it, even when no records match the selector. The same input
// always yields the same table: id assignment is a correctness property,
// not an optimization.
func Build(spec domain.DimensionSpec, records []domain.Record) (domain.DimensionTable, domain.Mapping) {
	type entry struct {
		key        []string
		attributes []string
	}

	seen := make(map[string]entry)
	order := make([]string, 0, len(records))

	for _, record := range records {
		key := make([]string, len(spec.KeyColumns))
		for i, column := range spec.KeyColumns {
			key[i] = record.Get(column)
		}
		if isSentinelKey(key) {
			continue
		}

		joined := domain.JoinKey(key)
		if _, ok := seen[joined]; ok {
			// Duplicate natural key: first-seen attributes win.
			continue
		}

		attributes := make([]string, len(spec.AttributeColumns))
		for i, column := range spec.AttributeColumns {
			attributes[i] = record.Get(column)
		}

		seen[joined] = entry{key: key, attributes: attributes}
		order = append(order, joined)
	}

	sort.Slice(order, func(i, j int) bool {
		return lessKey(seen[order[i]].key, seen[order[j]].key)
	})

	rows := make([]domain.DimensionRow, 0, len(order)+1)
	rows = append(rows, sentinelRow(spec))

	mapping := make(domain.Mapping, len(order)+1)
	mapping[domain.UnknownKey] = domain.UnknownRef()

	for idx, joined := range order {
		e := seen[joined]
		id := int64(idx + 1)
		rows = append(rows, domain.DimensionRow{
			ID:         id,
			Key:        e.key,
			Attributes: e.attributes,
		})
		mapping[joined] = domain.KnownRef(id)
	}

	return domain.DimensionTable{Spec: spec, Rows: rows}, mapping
}

// isSentinelKey reports whether every component of the tuple is the
// normalized unknown token.
func isSentinelKey(key []string) bool {
	if len(key) == 0 {
		return true
	}
	for _, component := range key {
		if component != domain.UnknownKey {
			return false
		}
	}
	return true
}

func lessKey(a, b []string) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func sentinelRow(spec domain.DimensionSpec) domain.DimensionRow {
	key := make([]string, len(spec.KeyColumns))
	for i := range key {
		key[i] = domain.UnknownKey
	}
	attributes := make([]string, len(spec.AttributeColumns))
	for i := range attributes {
		attributes[i] = domain.UnknownKey
	}
	return domain.DimensionRow{
		ID:         domain.UnknownID,
		Key:        key,
		Attributes: attributes,
	}
}
