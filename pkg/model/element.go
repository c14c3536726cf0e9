package model

import "strings"

// Default tags assigned by the Add* constructors, least specific first.
const (
	TagElement        = "Element"
	TagPerson         = "Person"
	TagSoftwareSystem = "Software System"
	TagContainer      = "Container"
	TagComponent      = "Component"
	TagRelationship   = "Relationship"
)

// Kind is the structural variant of an [Element]. The set of variants is
// closed: only [*Person], [*SoftwareSystem], [*Container] and [*Component]
// implement it.
type Kind interface {
	kind()
	// Name returns a human-readable name of the variant.
	Name() string
}

// Person is a user of the modeled systems. People never own children.
type Person struct{}

// SoftwareSystem owns zero or more containers.
type SoftwareSystem struct {
	Containers []*Element
}

// Container owns zero or more components.
type Container struct {
	Technology string
	Components []*Element
}

// Component is the leaf of the ownership tree.
type Component struct {
	Technology string
}

func (*Person) kind()         {}
func (*SoftwareSystem) kind() {}
func (*Container) kind()      {}
func (*Component) kind()      {}

func (*Person) Name() string         { return "person" }
func (*SoftwareSystem) Name() string { return "software system" }
func (*Container) Name() string      { return "container" }
func (*Component) Name() string      { return "component" }

// Element is a node of the architecture model.
//
// The zero value is not usable - elements are created through [Model] so that
// parent links and children collections stay consistent.
type Element struct {
	ID          string
	Name        string
	Description string
	URL         string
	// Tags is the comma-separated tag list as stored, in insertion order.
	Tags   string
	Parent *Element
	Kind   Kind
}

// TagList splits Tags into an ordered list. Surrounding whitespace is trimmed
// and empty entries are dropped, so an empty or malformed string yields nil.
func (e *Element) TagList() []string {
	return SplitTags(e.Tags)
}

// HasTag reports whether tag appears in the element's tag list.
func (e *Element) HasTag(tag string) bool {
	for _, t := range e.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTags appends tags that are not already present.
func (e *Element) AddTags(tags ...string) {
	e.Tags = appendTags(e.Tags, tags...)
}

// IsContainerLike reports whether e owns children of the next structural
// level: a software system with at least one container, or a container with at
// least one component. People and components are never container-like.
func IsContainerLike(e *Element) bool {
	if e == nil {
		return false
	}
	switch k := e.Kind.(type) {
	case *SoftwareSystem:
		return len(k.Containers) > 0
	case *Container:
		return len(k.Components) > 0
	case *Component, *Person, nil:
		return false
	default:
		return false
	}
}

// SplitTags parses a comma-separated tag string.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func appendTags(existing string, tags ...string) string {
	list := SplitTags(existing)
	seen := make(map[string]bool, len(list))
	for _, t := range list {
		seen[t] = true
	}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		list = append(list, t)
	}
	return strings.Join(list, ",")
}
