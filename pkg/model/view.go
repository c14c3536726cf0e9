package model

import "fmt"

// ViewKind is the granularity of a [View].
type ViewKind int

const (
	// SystemContextView shows a software system and its surroundings.
	SystemContextView ViewKind = iota
	// ContainerView zooms into the containers of a software system.
	ContainerView
	// ComponentView zooms into the components of a container.
	ComponentView
)

// AllViewKinds lists the view kinds in projection order.
var AllViewKinds = []ViewKind{SystemContextView, ContainerView, ComponentView}

var viewKindNames = map[ViewKind]string{
	SystemContextView: "context",
	ContainerView:     "container",
	ComponentView:     "component",
}

// String returns the short name used in config files and flags.
func (k ViewKind) String() string {
	if s, ok := viewKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ViewKind(%d)", int(k))
}

// ParseViewKind parses "context", "container" or "component".
func ParseViewKind(s string) (ViewKind, error) {
	for k, name := range viewKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown view kind %q (must be one of: context, container, component)", s)
}

// ElementView is a reference from a view to a model element.
type ElementView struct {
	Element *Element
}

// RelationshipView is a reference from a view to a model relationship.
type RelationshipView struct {
	Relationship Relationship
}

// View is a named subset of the model at one level of detail.
type View struct {
	Key           string
	Title         string
	Kind          ViewKind
	Elements      []ElementView
	Relationships []RelationshipView
}

// Configuration holds view presentation settings.
type Configuration struct {
	// Styles is the ordered element style catalog. Order matters: when several
	// rules match a node, earlier rules take precedence.
	Styles []ElementStyle
}

// ViewSet groups views by kind along with the shared configuration.
type ViewSet struct {
	SystemContextViews []View
	ContainerViews     []View
	ComponentViews     []View
	Configuration      Configuration
}

// ByKind returns the views of the given kind.
func (vs *ViewSet) ByKind(k ViewKind) []View {
	switch k {
	case SystemContextView:
		return vs.SystemContextViews
	case ContainerView:
		return vs.ContainerViews
	case ComponentView:
		return vs.ComponentViews
	default:
		return nil
	}
}

// Add appends v to the collection matching v.Kind.
func (vs *ViewSet) Add(v View) {
	switch v.Kind {
	case SystemContextView:
		vs.SystemContextViews = append(vs.SystemContextViews, v)
	case ContainerView:
		vs.ContainerViews = append(vs.ContainerViews, v)
	case ComponentView:
		vs.ComponentViews = append(vs.ComponentViews, v)
	}
}

// Count returns the total number of views.
func (vs *ViewSet) Count() int {
	return len(vs.SystemContextViews) + len(vs.ContainerViews) + len(vs.ComponentViews)
}

// Workspace is a model together with its views.
type Workspace struct {
	Name        string
	Description string
	Model       *Model
	Views       ViewSet
}

// NewWorkspace creates a workspace with an empty model.
func NewWorkspace(name string) *Workspace {
	return &Workspace{Name: name, Model: NewModel()}
}
