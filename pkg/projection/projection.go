package projection

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/model"
)

// MaxLabelLength is the maximum length of a link label, ellipsis included.
const MaxLabelLength = 20

const ellipsis = "..."

// CategoryChain returns the ordered category ids of e: the parent id first,
// when e has a parent, followed by e's tags in reverse storage order.
// A parentless, tagless element yields nil.
func CategoryChain(e *model.Element) []string {
	chain := e.TagList()
	slices.Reverse(chain)
	if e.Parent != nil {
		chain = append([]string{e.Parent.ID}, chain...)
	}
	return chain
}

// CreateNode projects an element into a node.
func CreateNode(ev model.ElementView) dgml.Node {
	e := ev.Element
	chain := CategoryChain(e)

	n := dgml.Node{
		ID:           e.ID,
		Label:        e.Name,
		Description:  e.Description,
		Reference:    e.URL,
		CategoryRefs: dgml.Refs(chain...),
	}
	if len(chain) > 0 {
		n.Category = chain[0]
	}
	if model.IsContainerLike(e) {
		n.Group = dgml.GroupExpanded
	}
	return n
}

// CreateLink projects a relationship into a link with labels truncated to
// MaxLabelLength.
func CreateLink(rv model.RelationshipView) dgml.Link {
	return LinkBuilder(MaxLabelLength)(rv)
}

// LinkBuilder returns a link projection truncating labels to maxLen.
// Values below len("...")+1 fall back to MaxLabelLength.
func LinkBuilder(maxLen int) func(model.RelationshipView) dgml.Link {
	if maxLen <= len(ellipsis) {
		maxLen = MaxLabelLength
	}
	return func(rv model.RelationshipView) dgml.Link {
		r := rv.Relationship
		l := dgml.Link{Source: r.SourceID, Target: r.DestinationID}
		if strings.TrimSpace(r.Description) != "" {
			l.Description = r.Description
			l.Label = MakeLabel(r.Description, maxLen)
		}
		return l
	}
}

// MakeLabel shortens s for display. Strings shorter than maxLen are returned
// unchanged; longer ones keep their first maxLen-3 characters followed by
// "...", so the result is exactly maxLen characters. Length is counted in
// runes.
func MakeLabel(s string, maxLen int) string {
	if utf8.RuneCountInString(s) < maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// CreateCategory returns the category of e's parent, or nil without parent.
func CreateCategory(ev model.ElementView) *dgml.Category {
	e := ev.Element
	if e.Parent == nil {
		return nil
	}
	return &dgml.Category{ID: e.Parent.ID, Label: e.Parent.Name}
}
