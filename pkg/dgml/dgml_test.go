package dgml

import (
	"path/filepath"
	"strings"
	"testing"
)

func sampleGraph() DirectedGraph {
	return DirectedGraph{
		Title: "Shop",
		Nodes: []Node{
			{ID: "c1", Label: "API", Group: GroupExpanded, Category: "s1", CategoryRefs: Refs("s1", "Container", "Element")},
			{ID: "k1", Label: "Orders", Description: "Handles orders", Category: "c1", CategoryRefs: Refs("c1", "Component", "Element")},
		},
		Links: []Link{
			{Source: "k1", Target: "c1", Label: "Reads", Description: "Reads"},
		},
		Categories: []Category{{ID: "c1", Label: "API"}, {ID: "s1", Label: "Shop"}},
		Styles: []Style{{
			TargetType: TargetTypeNode,
			GroupLabel: "Component",
			Conditions: []Condition{HasCategory("Component")},
			Setters:    []Setter{{Property: PropertyBackground, Value: "#85bbf0"}},
		}},
	}
}

func TestMarshalXML(t *testing.T) {
	data, err := MarshalXML(sampleGraph())
	if err != nil {
		t.Fatalf("MarshalXML() error: %v", err)
	}
	out := string(data)

	wants := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<DirectedGraph xmlns="http://schemas.microsoft.com/vs/2009/dgml" Title="Shop">`,
		`<Node Id="k1" Label="Orders" Description="Handles orders" Category="c1">`,
		`<Category Ref="Component"></Category>`,
		`Group="Expanded"`,
		`<Link Source="k1" Target="c1" Label="Reads" Description="Reads"></Link>`,
		`<Category Id="s1" Label="Shop"></Category>`,
		`<Style TargetType="Node" GroupLabel="Component">`,
		`<Condition Expression="HasCategory(&#39;Component&#39;)"></Condition>`,
		`<Setter Property="Background" Value="#85bbf0"></Setter>`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("MarshalXML() missing %s\n%s", want, out)
		}
	}
	if strings.Contains(out, `Reference=`) {
		t.Error("MarshalXML() should omit empty Reference")
	}
}

func TestReadXML(t *testing.T) {
	data, err := MarshalXML(sampleGraph())
	if err != nil {
		t.Fatal(err)
	}
	g, err := ReadXML(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("ReadXML() error: %v", err)
	}
	n, ok := g.Node("k1")
	if !ok {
		t.Fatal("node k1 missing after decode")
	}
	if n.Category != "c1" || len(n.CategoryRefs) != 3 || n.CategoryRefs[1].Ref != "Component" {
		t.Errorf("decoded node = %+v", n)
	}
	if len(g.Styles) != 1 || len(g.Styles[0].Setters) != 1 {
		t.Errorf("decoded styles = %+v", g.Styles)
	}
}

func TestReadXMLInvalid(t *testing.T) {
	if _, err := ReadXML(strings.NewReader("<DirectedGraph")); err == nil {
		t.Error("ReadXML() should fail on truncated input")
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"graph.dgml", "graph.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(sampleGraph(), path); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			g, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if g.Stats() != sampleGraph().Stats() {
				t.Errorf("Stats() = %+v, want %+v", g.Stats(), sampleGraph().Stats())
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var sb strings.Builder
	if err := Encode(sampleGraph(), &sb, "svg"); err == nil {
		t.Error("Encode(svg) should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json":   FormatJSON,
		"a.JSON":   FormatJSON,
		"a.dgml":   FormatXML,
		"a.xml":    FormatXML,
		"noext":    FormatXML,
		"dir/x.js": FormatXML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestStats(t *testing.T) {
	s := sampleGraph().Stats()
	want := Stats{Nodes: 2, Links: 1, Categories: 2, Styles: 1, Groups: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestNodeHelpers(t *testing.T) {
	n := sampleGraph().Nodes[1]
	if !n.HasCategory("Element") || n.HasCategory("Person") {
		t.Errorf("HasCategory() wrong for %v", n.CategoryIDs())
	}
	if n.DisplayLabel() != "Orders" {
		t.Errorf("DisplayLabel() = %q", n.DisplayLabel())
	}
	if (Node{ID: "x"}).DisplayLabel() != "x" {
		t.Error("DisplayLabel() should fall back to ID")
	}
	if Refs() != nil {
		t.Error("Refs() with no ids should be nil")
	}
}

func TestStyleFor(t *testing.T) {
	g := sampleGraph()
	s, ok := g.StyleFor(g.Nodes[1])
	if !ok || s.GroupLabel != "Component" {
		t.Errorf("StyleFor(k1) = %+v, %v", s, ok)
	}
	if v, ok := s.Setter(PropertyBackground); !ok || v != "#85bbf0" {
		t.Errorf("Setter(Background) = %q, %v", v, ok)
	}
	if _, ok := s.Setter(PropertyIcon); ok {
		t.Error("Setter(Icon) should be absent")
	}
	if _, ok := g.StyleFor(Node{ID: "x"}); ok {
		t.Error("StyleFor() without categories should not match")
	}
}

func TestStyleEqual(t *testing.T) {
	a := sampleGraph().Styles[0]
	b := sampleGraph().Styles[0]
	if !a.Equal(b) {
		t.Error("identical styles should be equal")
	}
	b.Setters = append(b.Setters, Setter{Property: PropertyForeground, Value: "#000"})
	if a.Equal(b) {
		t.Error("styles with different setters should differ")
	}
}
