package projection

import (
	"pedigraph/internal/domain"
)

// Relationship types between cat nodes and dimension nodes.
const (
	EdgeBelongsToBreed = "BELONGS_TO_BREED"
	EdgeHasColor       = "HAS_COLOR"
	EdgeBornIn         = "BORN_IN"
	EdgeLivesIn        = "LIVES_IN"
	EdgeBredBy         = "BRED_BY"
	EdgeFromDatabase   = "FROM_DATABASE"
)

// CatLabel is the node label for fact rows.
const CatLabel = "Cat"

// Node is one labeled graph node with its property bag.
type Node struct {
	Label string
	Props map[string]any
}

// Edge is one directed relationship between two nodes, addressed by label
// and id property.
type Edge struct {
	Type      string
	FromLabel string
	FromID    int64
	ToLabel   string
	ToID      int64
}

// Model is the full graph projection of the dimensional model.
type Model struct {
	Nodes []Node
	Edges []Edge
}

// Project maps dimension tables and linked cats onto a property graph.
// Every dimension row (sentinel included) and every cat becomes a node.
// Edges are emitted only for known references: the sentinel is a node so
// lookups against it still resolve, but nothing ever points at it.
func Project(tables []domain.DimensionTable, cats []domain.Cat) Model {
	var model Model

	for _, table := range tables {
		for _, row := range table.Rows {
			model.Nodes = append(model.Nodes, dimensionNode(table.Spec, row))
		}
	}

	for _, cat := range cats {
		model.Nodes = append(model.Nodes, catNode(cat))
	}

	for _, cat := range cats {
		model.Edges = append(model.Edges, catEdges(cat)...)
	}

	return model
}

func dimensionNode(spec domain.DimensionSpec, row domain.DimensionRow) Node {
	props := make(map[string]any, 1+len(spec.KeyColumns)+len(spec.AttributeColumns))
	props["id"] = row.ID
	for i, column := range spec.KeyColumns {
		props[column] = row.Key[i]
	}
	for i, column := range spec.AttributeColumns {
		props[column] = row.Attributes[i]
	}
	return Node{Label: spec.Label, Props: props}
}

func catNode(cat domain.Cat) Node {
	return Node{
		Label: CatLabel,
		Props: map[string]any{
			"id":                          cat.ID,
			"name":                        cat.Name,
			"date_of_birth":               cat.DateOfBirth,
			"gender":                      cat.Gender,
			"registration_number_current": cat.RegistrationNumber,
			"title_before":                cat.TitleBefore,
			"title_after":                 cat.TitleAfter,
			"chip":                        cat.Chip,
		},
	}
}

func catEdges(cat domain.Cat) []Edge {
	candidates := []struct {
		ref     domain.DimensionRef
		edge    string
		toLabel string
	}{
		{cat.Breed, EdgeBelongsToBreed, domain.BreedSpec.Label},
		{cat.Color, EdgeHasColor, domain.ColorSpec.Label},
		{cat.CountryOrigin, EdgeBornIn, domain.CountrySpec.Label},
		{cat.CountryCurrent, EdgeLivesIn, domain.CountrySpec.Label},
		{cat.Cattery, EdgeBredBy, domain.CatterySpec.Label},
		{cat.SourceDB, EdgeFromDatabase, domain.SourceDBSpec.Label},
		{cat.Father, string(domain.RelHasFather), CatLabel},
		{cat.Mother, string(domain.RelHasMother), CatLabel},
	}

	edges := make([]Edge, 0, len(candidates))
	for _, c := range candidates {
		id, known := c.ref.Known()
		if !known {
			continue
		}
		edges = append(edges, Edge{
			Type:      c.edge,
			FromLabel: CatLabel,
			FromID:    cat.ID,
			ToLabel:   c.toLabel,
			ToID:      id,
		})
	}
	return edges
}
