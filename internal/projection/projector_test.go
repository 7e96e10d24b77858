package projection

import (
	"testing"

	"pedigraph/internal/domain"
)

func sampleTables() []domain.DimensionTable {
	return []domain.DimensionTable{
		{
			Spec: domain.BreedSpec,
			Rows: []domain.DimensionRow{
				{ID: domain.UnknownID, Key: []string{domain.UnknownKey}, Attributes: []string{domain.UnknownKey}},
				{ID: 1, Key: []string{"MCO"}, Attributes: []string{"Maine Coon"}},
			},
		},
		{
			Spec: domain.CatterySpec,
			Rows: []domain.DimensionRow{
				{ID: domain.UnknownID, Key: []string{domain.UnknownKey}},
				{ID: 1, Key: []string{"Silver Paw"}},
			},
		},
	}
}

func TestProjectEmitsNodePerRow(t *testing.T) {
	cats := []domain.Cat{
		{ID: 1, Name: "Luna"},
		{ID: 2, Name: "Milo"},
	}

	model := Project(sampleTables(), cats)

	if len(model.Nodes) != 6 {
		t.Fatalf("expected 6 nodes (4 dimension rows + 2 cats), got %d", len(model.Nodes))
	}

	labels := map[string]int{}
	for _, node := range model.Nodes {
		labels[node.Label]++
	}
	if labels[CatLabel] != 2 || labels["Breed"] != 2 || labels["Cattery"] != 2 {
		t.Fatalf("unexpected label counts: %v", labels)
	}
}

func TestProjectDimensionNodeProps(t *testing.T) {
	model := Project(sampleTables(), nil)

	var breed *Node
	for i := range model.Nodes {
		if model.Nodes[i].Label == "Breed" && model.Nodes[i].Props["id"] == int64(1) {
			breed = &model.Nodes[i]
		}
	}
	if breed == nil {
		t.Fatalf("breed node missing")
	}
	if breed.Props["breed_code"] != "MCO" || breed.Props["breed_full_name"] != "Maine Coon" {
		t.Fatalf("unexpected breed props: %v", breed.Props)
	}
}

func TestProjectEdgesForKnownRefsOnly(t *testing.T) {
	cats := []domain.Cat{
		{
			ID:      1,
			Breed:   domain.KnownRef(1),
			Cattery: domain.UnknownRef(),
			Father:  domain.KnownRef(2),
			Mother:  domain.UnknownRef(),
		},
		{ID: 2},
	}

	model := Project(sampleTables(), cats)

	if len(model.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d: %v", len(model.Edges), model.Edges)
	}
	for _, edge := range model.Edges {
		if edge.ToID == domain.UnknownID {
			t.Fatalf("edge points at sentinel: %+v", edge)
		}
	}

	want := map[string]Edge{
		EdgeBelongsToBreed: {Type: EdgeBelongsToBreed, FromLabel: CatLabel, FromID: 1, ToLabel: "Breed", ToID: 1},
		"HAS_FATHER":       {Type: "HAS_FATHER", FromLabel: CatLabel, FromID: 1, ToLabel: CatLabel, ToID: 2},
	}
	for _, edge := range model.Edges {
		expected, ok := want[edge.Type]
		if !ok {
			t.Fatalf("unexpected edge type %s", edge.Type)
		}
		if edge != expected {
			t.Fatalf("edge mismatch: got %+v want %+v", edge, expected)
		}
	}
}

func TestProjectParentEdgeDirection(t *testing.T) {
	cats := []domain.Cat{
		{ID: 10, Father: domain.KnownRef(20)},
		{ID: 20},
	}

	model := Project(nil, cats)

	if len(model.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(model.Edges))
	}
	edge := model.Edges[0]
	if edge.FromID != 10 || edge.ToID != 20 {
		t.Fatalf("parent edge must run child to parent, got %+v", edge)
	}
}
