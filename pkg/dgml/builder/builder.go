// Package builder assembles DGML documents from per-entity builder functions.
//
// A [Builder] is configured with node, link, category and style builder
// functions. [Builder.Build] applies the node, link and category builders to
// every source entity, deduplicates the results and, once the node set is
// complete, applies the style builders to every node:
//
//	b := builder.Builder[model.ElementView, model.RelationshipView]{
//	    NodeBuilders:     []builder.NodeFunc[model.ElementView]{projection.CreateNode},
//	    LinkBuilders:     []builder.LinkFunc[model.RelationshipView]{projection.CreateLink},
//	    CategoryBuilders: []builder.CategoryFunc[model.ElementView]{projection.CreateCategory},
//	    StyleBuilders:    []builder.StyleFunc{resolver.Resolve},
//	}
//	g := b.Build(elements, relationships)
//
// Builder functions must be pure: style builders may run concurrently on a
// bounded worker pool when Workers > 1.
package builder

import (
	"github.com/matzehuels/c4dgml/pkg/dgml"
	"golang.org/x/sync/errgroup"
)

// NodeFunc maps a source entity to a node.
type NodeFunc[E any] func(E) dgml.Node

// LinkFunc maps a source relationship to a link.
type LinkFunc[R any] func(R) dgml.Link

// CategoryFunc maps a source entity to a category, or nil for none.
type CategoryFunc[E any] func(E) *dgml.Category

// StyleFunc maps a projected node to a style, or nil for none.
type StyleFunc func(dgml.Node) *dgml.Style

// Builder is a generic DGML document assembler over element type E and
// relationship type R. The zero value builds an empty document.
type Builder[E, R any] struct {
	NodeBuilders     []NodeFunc[E]
	LinkBuilders     []LinkFunc[R]
	CategoryBuilders []CategoryFunc[E]
	StyleBuilders    []StyleFunc

	// Title is copied to the document.
	Title string

	// Workers bounds style-builder concurrency. Values <= 1 build styles
	// sequentially.
	Workers int
}

// Build runs all builders and returns the assembled document.
//
// Nodes are deduplicated by ID and categories by ID (first wins), links by
// value. Nil categories and styles are dropped, and identical style rules are
// emitted once. Output order follows input order.
func (b *Builder[E, R]) Build(elements []E, relationships []R) dgml.DirectedGraph {
	g := dgml.DirectedGraph{Title: b.Title}
	g.Nodes = b.buildNodes(elements)
	g.Links = b.buildLinks(relationships)
	g.Categories = b.buildCategories(elements)
	g.Styles = b.buildStyles(g.Nodes)
	return g
}

func (b *Builder[E, R]) buildNodes(elements []E) []dgml.Node {
	var nodes []dgml.Node
	seen := make(map[string]bool)
	for _, e := range elements {
		for _, fn := range b.NodeBuilders {
			n := fn(e)
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (b *Builder[E, R]) buildLinks(relationships []R) []dgml.Link {
	var links []dgml.Link
	seen := make(map[dgml.Link]bool)
	for _, r := range relationships {
		for _, fn := range b.LinkBuilders {
			l := fn(r)
			if seen[l] {
				continue
			}
			seen[l] = true
			links = append(links, l)
		}
	}
	return links
}

func (b *Builder[E, R]) buildCategories(elements []E) []dgml.Category {
	var categories []dgml.Category
	seen := make(map[string]bool)
	for _, e := range elements {
		for _, fn := range b.CategoryBuilders {
			c := fn(e)
			if c == nil || seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			categories = append(categories, *c)
		}
	}
	return categories
}

func (b *Builder[E, R]) buildStyles(nodes []dgml.Node) []dgml.Style {
	if len(b.StyleBuilders) == 0 || len(nodes) == 0 {
		return nil
	}

	// One slot per (node, builder) so results keep node order.
	results := make([]*dgml.Style, len(nodes)*len(b.StyleBuilders))

	var eg errgroup.Group
	if b.Workers > 1 {
		eg.SetLimit(b.Workers)
	} else {
		eg.SetLimit(1)
	}
	for i, n := range nodes {
		for j, fn := range b.StyleBuilders {
			slot := i*len(b.StyleBuilders) + j
			eg.Go(func() error {
				results[slot] = fn(n)
				return nil
			})
		}
	}
	_ = eg.Wait()

	var styles []dgml.Style
	for _, s := range results {
		if s == nil || containsStyle(styles, *s) {
			continue
		}
		styles = append(styles, *s)
	}
	return styles
}

func containsStyle(styles []dgml.Style, s dgml.Style) bool {
	for _, existing := range styles {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}
