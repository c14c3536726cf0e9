package projection

import (
	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/dgml/builder"
	"github.com/matzehuels/c4dgml/pkg/model"
	"github.com/matzehuels/c4dgml/pkg/style"
)

// Options configures [ToDGML]. The zero value projects every view kind with
// default label length and shapes URI.
type Options struct {
	// Views restricts the projected view kinds. Empty means all kinds.
	Views []model.ViewKind

	// MaxLabelLength overrides the link label length (default 20).
	MaxLabelLength int

	// ShapesURI overrides the base URI of shape icons.
	ShapesURI string

	// DefaultBackground, when set, gives every style a Background setter.
	DefaultBackground string

	// Workers bounds concurrent style resolution (<= 1 is sequential).
	Workers int
}

func (o Options) viewKinds() []model.ViewKind {
	if len(o.Views) == 0 {
		return model.AllViewKinds
	}
	return o.Views
}

// Collect gathers the distinct element and relationship references of the
// selected views. Elements are identified by ID and relationships by value;
// first-seen order is preserved.
func Collect(ws *model.Workspace, kinds ...model.ViewKind) ([]model.ElementView, []model.RelationshipView) {
	if len(kinds) == 0 {
		kinds = model.AllViewKinds
	}

	var (
		elements      []model.ElementView
		relationships []model.RelationshipView
		seenElements  = make(map[string]bool)
		seenRels      = make(map[model.Relationship]bool)
	)
	for _, k := range kinds {
		for _, v := range ws.Views.ByKind(k) {
			for _, ev := range v.Elements {
				if ev.Element == nil || seenElements[ev.Element.ID] {
					continue
				}
				seenElements[ev.Element.ID] = true
				elements = append(elements, ev)
			}
			for _, rv := range v.Relationships {
				if seenRels[rv.Relationship] {
					continue
				}
				seenRels[rv.Relationship] = true
				relationships = append(relationships, rv)
			}
		}
	}
	return elements, relationships
}

// NewBuilder returns the document builder wiring the projection functions and
// the style resolver for ws.
func NewBuilder(ws *model.Workspace, opts Options) *builder.Builder[model.ElementView, model.RelationshipView] {
	var relationships []model.Relationship
	if ws.Model != nil {
		relationships = ws.Model.Relationships
	}
	resolver := style.NewResolver(
		ws.Views.Configuration.Styles,
		relationships,
		style.WithShapesURI(opts.ShapesURI),
		style.WithDefaultBackground(opts.DefaultBackground),
	)

	maxLen := opts.MaxLabelLength
	if maxLen == 0 {
		maxLen = MaxLabelLength
	}

	return &builder.Builder[model.ElementView, model.RelationshipView]{
		Title:            ws.Name,
		NodeBuilders:     []builder.NodeFunc[model.ElementView]{CreateNode},
		LinkBuilders:     []builder.LinkFunc[model.RelationshipView]{LinkBuilder(maxLen)},
		CategoryBuilders: []builder.CategoryFunc[model.ElementView]{CreateCategory},
		StyleBuilders:    []builder.StyleFunc{resolver.Resolve},
		Workers:          opts.Workers,
	}
}

// ToDGML projects the views of ws into a DGML document.
func ToDGML(ws *model.Workspace, opts Options) dgml.DirectedGraph {
	elements, relationships := Collect(ws, opts.viewKinds()...)
	return NewBuilder(ws, opts).Build(elements, relationships)
}
