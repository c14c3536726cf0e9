// Package projection maps C4 model views onto a DGML directed graph.
//
// # Overview
//
// Every element referenced by a view becomes a [dgml.Node], every
// relationship a [dgml.Link], and every distinct parent element a
// [dgml.Category]. Styles come from [style.Resolver] against the workspace
// style catalog.
//
//	ws, _ := workspace.Load("workspace.json")
//	g := projection.ToDGML(ws, projection.Options{})
//	_ = dgml.WriteXML(g, os.Stdout)
//
// # Category Chains
//
// A node's categories are its parent id followed by its own tags in reverse
// storage order, so "Element,Container" becomes [parent, Container, Element].
// The first entry is the primary category and drives style selection.
//
// # Labels
//
// Link labels are truncated to [MaxLabelLength] characters, the last three
// of which are "...". The full text is kept in the link description.
package projection
