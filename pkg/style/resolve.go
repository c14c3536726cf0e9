package style

import (
	"fmt"
	"strings"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/model"
)

// DefaultShapesURI hosts one PNG per shape name, used for node icons.
const DefaultShapesURI = "https://raw.githubusercontent.com/merijndejonge/Structurizr.Dgml/master/src/Structurizr.Dgml/Shapes"

// Option configures a [Resolver].
type Option func(*Resolver)

// WithShapesURI sets the base URI for shape icons.
func WithShapesURI(uri string) Option {
	return func(r *Resolver) {
		if uri != "" {
			r.shapesURI = strings.TrimRight(uri, "/")
		}
	}
}

// WithDefaultBackground makes every style carry a Background setter, falling
// back to bg when no matching rule sets one.
func WithDefaultBackground(bg string) Option {
	return func(r *Resolver) { r.defaultBackground = bg }
}

// Resolver computes node styles against a read-only style catalog and
// relationship list. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	catalog           []model.ElementStyle
	sources           map[string]bool
	shapesURI         string
	defaultBackground string
}

// NewResolver indexes relationships by source and returns a resolver.
func NewResolver(catalog []model.ElementStyle, relationships []model.Relationship, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:   catalog,
		sources:   distinctSources(relationships),
		shapesURI: DefaultShapesURI,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve is a convenience wrapper around NewResolver(...).Resolve(n).
func Resolve(catalog []model.ElementStyle, relationships []model.Relationship, n dgml.Node, opts ...Option) *dgml.Style {
	return NewResolver(catalog, relationships, opts...).Resolve(n)
}

// Resolve returns the effective style of n, or nil when n has no category.
//
// The category chain is adjusted first: when exactly one distinct element is
// the source of relationships whose source id equals the primary category,
// that category is dropped and the next entry becomes primary. The remaining
// chain selects catalog rules by tag, which are merged with [Merge].
func (r *Resolver) Resolve(n dgml.Node) *dgml.Style {
	if n.Category == "" {
		return nil
	}

	categories := n.CategoryIDs()
	if len(categories) == 0 {
		categories = []string{n.Category}
	}
	if r.sources[n.Category] {
		categories = categories[1:]
	}
	if len(categories) == 0 {
		return nil
	}

	merged := Merge(Matching(r.catalog, categories))
	label := categories[0]
	return &dgml.Style{
		TargetType: dgml.TargetTypeNode,
		GroupLabel: label,
		Conditions: []dgml.Condition{dgml.HasCategory(label)},
		Setters:    r.setters(merged),
	}
}

// IconURI returns the icon location for shape.
func (r *Resolver) IconURI(shape model.Shape) string {
	return fmt.Sprintf("%s/%s.png", r.shapesURI, shape)
}

func (r *Resolver) setters(s model.ElementStyle) []dgml.Setter {
	var out []dgml.Setter
	if s.Color != nil {
		out = append(out, dgml.Setter{Property: dgml.PropertyForeground, Value: *s.Color})
	}
	switch {
	case s.Background != nil:
		out = append(out, dgml.Setter{Property: dgml.PropertyBackground, Value: *s.Background})
	case r.defaultBackground != "":
		out = append(out, dgml.Setter{Property: dgml.PropertyBackground, Value: r.defaultBackground})
	}
	if s.Shape != model.ShapeBox {
		out = append(out,
			dgml.Setter{Property: dgml.PropertyShape, Value: dgml.ShapeNone},
			dgml.Setter{Property: dgml.PropertyIcon, Value: r.IconURI(s.Shape)},
		)
	}
	return out
}

// distinctSources indexes the ids of relationship sources. Sources are
// identified by id, so a category that is a source at all has exactly one
// distinct source element; the ambiguous case cannot arise.
func distinctSources(relationships []model.Relationship) map[string]bool {
	sources := make(map[string]bool, len(relationships))
	for _, rel := range relationships {
		sources[rel.SourceID] = true
	}
	return sources
}
