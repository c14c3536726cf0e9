// Package style resolves the effective visual style of projected nodes.
//
// # Overview
//
// A workspace carries an ordered catalog of partial [model.ElementStyle]
// rules keyed by tag. A node matches every rule whose tag appears in its
// category chain. [Merge] folds the matching rules into one style, and
// [Resolver.Resolve] turns that style into a DGML conditional style.
//
// # Precedence
//
// Matching rules are overlaid in reverse catalog order, so for every field
// the earliest rule in the catalog that sets it wins. Shape only overrides
// when it differs from Box:
//
//	catalog := []model.ElementStyle{
//	    {Tag: "Database", Background: model.String("#438dd5"), Shape: model.ShapeCylinder},
//	    {Tag: "Container", Background: model.String("#85bbf0"), Color: model.String("#000000")},
//	}
//	s := style.Merge(catalog)
//	// s.Background = "#438dd5", s.Color = "#000000", s.Shape = Cylinder
//
// # Topology Adjustment
//
// When a node's primary category is itself the source of a relationship, the
// category is dropped and the next entry of the chain becomes primary. This
// preserves long-standing behavior of the DGML export and is a heuristic: it
// treats "the parent also appears as a relationship endpoint" as the signal
// that the parent is modeled as a node of its own.
//
// # Setters
//
// Foreground and Background are emitted when set; a non-Box shape emits
// Shape=None plus an Icon setter pointing at "<shapes URI>/<Shape>.png".
package style
