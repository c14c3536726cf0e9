package model

// Relationship is a directed, described dependency between two elements.
//
// Relationship is a comparable value: two relationships are the same
// relationship when all their fields are equal, which is how views are
// deduplicated during projection.
type Relationship struct {
	ID            string
	SourceID      string
	DestinationID string
	Description   string
	Technology    string
	Tags          string
}

// TagList splits Tags into an ordered list, see [SplitTags].
func (r Relationship) TagList() []string {
	return SplitTags(r.Tags)
}
