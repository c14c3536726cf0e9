package dgml

import (
	"encoding/xml"
	"fmt"
	"slices"
)

// Namespace is the DGML XML namespace.
const Namespace = "http://schemas.microsoft.com/vs/2009/dgml"

// GroupExpanded marks a node as an expanded group in the viewer.
const GroupExpanded = "Expanded"

// TargetTypeNode is the style target for node styles.
const TargetTypeNode = "Node"

// Setter property names.
const (
	PropertyForeground = "Foreground"
	PropertyBackground = "Background"
	PropertyShape      = "Shape"
	PropertyIcon       = "Icon"
)

// ShapeNone hides the node outline so that the icon carries the shape.
const ShapeNone = "None"

// DirectedGraph is a DGML document.
type DirectedGraph struct {
	XMLName    xml.Name   `xml:"http://schemas.microsoft.com/vs/2009/dgml DirectedGraph" json:"-"`
	Title      string     `xml:"Title,attr,omitempty" json:"title,omitempty"`
	Nodes      []Node     `xml:"Nodes>Node" json:"nodes"`
	Links      []Link     `xml:"Links>Link" json:"links"`
	Categories []Category `xml:"Categories>Category" json:"categories"`
	Styles     []Style    `xml:"Styles>Style" json:"styles"`
}

// Node is a graph vertex projected from a model element.
type Node struct {
	ID          string `xml:"Id,attr" json:"id"`
	Label       string `xml:"Label,attr,omitempty" json:"label,omitempty"`
	Description string `xml:"Description,attr,omitempty" json:"description,omitempty"`
	Reference   string `xml:"Reference,attr,omitempty" json:"reference,omitempty"`
	Group       string `xml:"Group,attr,omitempty" json:"group,omitempty"`
	// Category is the primary category used for style lookup.
	Category string `xml:"Category,attr,omitempty" json:"category,omitempty"`
	// CategoryRefs is the full category chain, most specific first.
	CategoryRefs []CategoryRef `xml:"Category" json:"categoryRefs,omitempty"`
}

// IsExpanded reports whether the node renders as an expanded group.
func (n Node) IsExpanded() bool { return n.Group == GroupExpanded }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// CategoryIDs returns the ids of CategoryRefs in order.
func (n Node) CategoryIDs() []string {
	ids := make([]string, len(n.CategoryRefs))
	for i, r := range n.CategoryRefs {
		ids[i] = r.Ref
	}
	return ids
}

// HasCategory reports whether id appears in the node's category chain.
func (n Node) HasCategory(id string) bool {
	return slices.ContainsFunc(n.CategoryRefs, func(r CategoryRef) bool { return r.Ref == id })
}

// CategoryRef references a category by id.
type CategoryRef struct {
	Ref string `xml:"Ref,attr" json:"ref"`
}

// Refs wraps ids as category references.
func Refs(ids ...string) []CategoryRef {
	if len(ids) == 0 {
		return nil
	}
	refs := make([]CategoryRef, len(ids))
	for i, id := range ids {
		refs[i] = CategoryRef{Ref: id}
	}
	return refs
}

// Link is a directed edge projected from a model relationship.
type Link struct {
	Source      string `xml:"Source,attr" json:"source"`
	Target      string `xml:"Target,attr" json:"target"`
	Label       string `xml:"Label,attr,omitempty" json:"label,omitempty"`
	Description string `xml:"Description,attr,omitempty" json:"description,omitempty"`
}

// Category groups nodes owned by the same parent element.
type Category struct {
	ID    string `xml:"Id,attr" json:"id"`
	Label string `xml:"Label,attr,omitempty" json:"label,omitempty"`
}

// Style is a conditional visual rule applied to nodes.
type Style struct {
	TargetType string      `xml:"TargetType,attr" json:"targetType"`
	GroupLabel string      `xml:"GroupLabel,attr,omitempty" json:"groupLabel,omitempty"`
	Conditions []Condition `xml:"Condition" json:"conditions,omitempty"`
	Setters    []Setter    `xml:"Setter" json:"setters,omitempty"`
}

// Setter returns the value of the named property and true, or "" and false.
func (s Style) Setter(property string) (string, bool) {
	for _, st := range s.Setters {
		if st.Property == property {
			return st.Value, true
		}
	}
	return "", false
}

// Equal reports whether two styles are identical rules.
func (s Style) Equal(o Style) bool {
	return s.TargetType == o.TargetType &&
		s.GroupLabel == o.GroupLabel &&
		slices.Equal(s.Conditions, o.Conditions) &&
		slices.Equal(s.Setters, o.Setters)
}

// Condition is a boolean expression over node properties.
type Condition struct {
	Expression string `xml:"Expression,attr" json:"expression"`
}

// HasCategory builds the condition matching nodes in category id.
func HasCategory(id string) Condition {
	return Condition{Expression: fmt.Sprintf("HasCategory('%s')", id)}
}

// Setter assigns Value to Property when the style applies.
type Setter struct {
	Property string `xml:"Property,attr" json:"property"`
	Value    string `xml:"Value,attr" json:"value"`
}

// Stats summarizes a document.
type Stats struct {
	Nodes      int `json:"nodes"`
	Links      int `json:"links"`
	Categories int `json:"categories"`
	Styles     int `json:"styles"`
	Groups     int `json:"groups"`
}

// Stats counts the entities of g.
func (g DirectedGraph) Stats() Stats {
	s := Stats{
		Nodes:      len(g.Nodes),
		Links:      len(g.Links),
		Categories: len(g.Categories),
		Styles:     len(g.Styles),
	}
	for _, n := range g.Nodes {
		if n.IsExpanded() {
			s.Groups++
		}
	}
	return s
}

// Node returns the node with the given id and true, or the zero value and false.
func (g DirectedGraph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Category returns the category with the given id and true, or the zero value
// and false.
func (g DirectedGraph) Category(id string) (Category, bool) {
	for _, c := range g.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// StyleFor returns the first style whose GroupLabel appears in n's category
// chain, searching the chain most specific first.
func (g DirectedGraph) StyleFor(n Node) (Style, bool) {
	for _, id := range n.CategoryIDs() {
		for _, s := range g.Styles {
			if s.GroupLabel == id {
				return s, true
			}
		}
	}
	return Style{}, false
}
