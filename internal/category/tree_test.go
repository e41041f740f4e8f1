package category

import (
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func node(id, parent, name string, sort int) *model.Category {
	c := &model.Category{BaseModel: model.BaseModel{ID: id}, Slug: id, Name: name, SortOrder: sort}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

// shape renders a forest as nested ids for comparison.
type shape struct {
	ID       string
	Children []shape
}

func shapeOf(nodes []*model.Category) []shape {
	var out []shape
	for _, n := range nodes {
		out = append(out, shape{ID: n.ID, Children: shapeOf(n.Children)})
	}
	return out
}

func fixture() []*model.Category {
	return []*model.Category{
		node("imaging", "", "Imagerie", 2),
		node("cardio", "", "Cardiologie", 1),
		node("ecg", "cardio", "ECG", 0),
		node("defib", "cardio", "Défibrillateurs", 0),
		node("ultrasound", "imaging", "Échographie", 0),
		node("portable-us", "ultrasound", "Portable", 0),
		node("orphan", "deleted-parent", "Orphelin", 5),
	}
}

func TestBuildTree(t *testing.T) {
	got := shapeOf(BuildTree(fixture()))
	want := []shape{
		{ID: "cardio", Children: []shape{{ID: "defib"}, {ID: "ecg"}}},
		{ID: "imaging", Children: []shape{
			{ID: "ultrasound", Children: []shape{{ID: "portable-us"}}},
		}},
		{ID: "orphan"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildTree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTreeResetsChildren(t *testing.T) {
	flat := fixture()
	BuildTree(flat)
	roots := BuildTree(flat)
	assert.Len(t, FindNode(roots, "cardio").Children, 2)
}

func TestDescendants(t *testing.T) {
	flat := fixture()

	got := Descendants(flat, "imaging")
	if diff := cmp.Diff([]string{"imaging", "ultrasound", "portable-us"}, got); diff != "" {
		t.Errorf("Descendants mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"ecg"}, Descendants(flat, "ecg"))
	assert.Nil(t, Descendants(flat, "missing"))
}

func TestBreadcrumb(t *testing.T) {
	got := Breadcrumb(fixture(), "portable-us")
	want := []model.Crumb{
		{ID: "imaging", Slug: "imaging", Name: "Imagerie"},
		{ID: "ultrasound", Slug: "ultrasound", Name: "Échographie"},
		{ID: "portable-us", Slug: "portable-us", Name: "Portable"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Breadcrumb mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Breadcrumb(fixture(), "missing"))
}

func TestBreadcrumbStopsOnCycle(t *testing.T) {
	flat := []*model.Category{node("a", "b", "A", 0), node("b", "a", "B", 0)}
	assert.Len(t, Breadcrumb(flat, "a"), 2)
}

func TestCreatesCycle(t *testing.T) {
	flat := fixture()
	tests := []struct {
		name   string
		id     string
		parent string
		want   bool
	}{
		{name: "self", id: "cardio", parent: "cardio", want: true},
		{name: "under own child", id: "imaging", parent: "ultrasound", want: true},
		{name: "under grandchild", id: "imaging", parent: "portable-us", want: true},
		{name: "sibling subtree", id: "ecg", parent: "imaging", want: false},
		{name: "move up", id: "portable-us", parent: "cardio", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreatesCycle(flat, tt.id, tt.parent))
		})
	}
}
