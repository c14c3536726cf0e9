package builder

import (
	"fmt"
	"testing"

	"github.com/matzehuels/c4dgml/pkg/dgml"
)

type item struct {
	id     string
	parent string
}

type edge struct{ from, to string }

func testBuilder(workers int) *Builder[item, edge] {
	return &Builder[item, edge]{
		Title: "test",
		NodeBuilders: []NodeFunc[item]{
			func(it item) dgml.Node {
				n := dgml.Node{ID: it.id, Label: it.id}
				if it.parent != "" {
					n.Category = it.parent
					n.CategoryRefs = dgml.Refs(it.parent)
				}
				return n
			},
		},
		LinkBuilders: []LinkFunc[edge]{
			func(e edge) dgml.Link { return dgml.Link{Source: e.from, Target: e.to} },
		},
		CategoryBuilders: []CategoryFunc[item]{
			func(it item) *dgml.Category {
				if it.parent == "" {
					return nil
				}
				return &dgml.Category{ID: it.parent, Label: "group " + it.parent}
			},
		},
		StyleBuilders: []StyleFunc{
			func(n dgml.Node) *dgml.Style {
				if n.Category == "" {
					return nil
				}
				return &dgml.Style{
					TargetType: dgml.TargetTypeNode,
					GroupLabel: n.Category,
					Conditions: []dgml.Condition{dgml.HasCategory(n.Category)},
				}
			},
		},
		Workers: workers,
	}
}

func TestBuild(t *testing.T) {
	items := []item{{id: "a", parent: "p"}, {id: "b", parent: "p"}, {id: "a", parent: "q"}, {id: "c"}}
	edges := []edge{{"a", "b"}, {"a", "b"}, {"b", "c"}}

	for _, workers := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			g := testBuilder(workers).Build(items, edges)

			if g.Title != "test" {
				t.Errorf("Title = %q", g.Title)
			}
			if len(g.Nodes) != 3 {
				t.Fatalf("Nodes = %d, want 3 (dedup by id)", len(g.Nodes))
			}
			if g.Nodes[0].ID != "a" || g.Nodes[0].Category != "p" {
				t.Errorf("first node = %+v, want first-wins a/p", g.Nodes[0])
			}
			if len(g.Links) != 2 {
				t.Errorf("Links = %d, want 2 (dedup by value)", len(g.Links))
			}
			if len(g.Categories) != 1 || g.Categories[0].ID != "p" {
				t.Errorf("Categories = %+v, want only p", g.Categories)
			}
			// a and b share category p and produce identical rules.
			if len(g.Styles) != 1 || g.Styles[0].GroupLabel != "p" {
				t.Errorf("Styles = %+v, want one rule for p", g.Styles)
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	var b Builder[item, edge]
	g := b.Build([]item{{id: "a"}}, []edge{{"a", "a"}})
	if len(g.Nodes) != 0 || len(g.Links) != 0 || len(g.Categories) != 0 || len(g.Styles) != 0 {
		t.Errorf("zero Builder should build an empty document, got %+v", g)
	}
}

func TestBuildStyleOrder(t *testing.T) {
	items := make([]item, 50)
	for i := range items {
		items[i] = item{id: fmt.Sprintf("n%02d", i), parent: fmt.Sprintf("p%02d", i)}
	}
	g := testBuilder(8).Build(items, nil)

	if len(g.Styles) != len(items) {
		t.Fatalf("Styles = %d, want %d", len(g.Styles), len(items))
	}
	for i, s := range g.Styles {
		if s.GroupLabel != items[i].parent {
			t.Fatalf("Styles[%d].GroupLabel = %q, want %q", i, s.GroupLabel, items[i].parent)
		}
	}
}
