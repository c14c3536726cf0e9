package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidElementID is returned by the Add* methods when the ID is empty.
	ErrInvalidElementID = errors.New("element ID must not be empty")

	// ErrDuplicateElementID is returned when an element with the same ID
	// already exists anywhere in the model. IDs are unique across kinds.
	ErrDuplicateElementID = errors.New("duplicate element ID")

	// ErrInvalidParent is returned when a child is added to a parent of the
	// wrong kind (for example a component added to a software system).
	ErrInvalidParent = errors.New("invalid parent element")

	// ErrUnknownSourceElement is returned by [Model.AddRelationship] when the
	// source element does not exist.
	ErrUnknownSourceElement = errors.New("unknown source element")

	// ErrUnknownDestinationElement is returned by [Model.AddRelationship] when
	// the destination element does not exist.
	ErrUnknownDestinationElement = errors.New("unknown destination element")
)

// Model holds the elements and relationships of an architecture.
//
// The zero value is not usable - use [NewModel].
type Model struct {
	People          []*Element
	SoftwareSystems []*Element
	Relationships   []Relationship

	index map[string]*Element
	order []*Element
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{index: make(map[string]*Element)}
}

// AddPerson adds a person tagged "Element,Person".
func (m *Model) AddPerson(id, name string) (*Element, error) {
	e := &Element{ID: id, Name: name, Kind: &Person{}}
	e.AddTags(TagElement, TagPerson)
	if err := m.register(e); err != nil {
		return nil, err
	}
	m.People = append(m.People, e)
	return e, nil
}

// AddSoftwareSystem adds a software system tagged "Element,Software System".
func (m *Model) AddSoftwareSystem(id, name string) (*Element, error) {
	e := &Element{ID: id, Name: name, Kind: &SoftwareSystem{}}
	e.AddTags(TagElement, TagSoftwareSystem)
	if err := m.register(e); err != nil {
		return nil, err
	}
	m.SoftwareSystems = append(m.SoftwareSystems, e)
	return e, nil
}

// AddContainer adds a container owned by the software system parent.
// Returns ErrInvalidParent if parent is not a software system of this model.
func (m *Model) AddContainer(parent *Element, id, name string) (*Element, error) {
	sys, ok := m.owned(parent).(*SoftwareSystem)
	if !ok {
		return nil, fmt.Errorf("container %s: %w", id, ErrInvalidParent)
	}
	e := &Element{ID: id, Name: name, Parent: parent, Kind: &Container{}}
	e.AddTags(TagElement, TagContainer)
	if err := m.register(e); err != nil {
		return nil, err
	}
	sys.Containers = append(sys.Containers, e)
	return e, nil
}

// AddComponent adds a component owned by the container parent.
// Returns ErrInvalidParent if parent is not a container of this model.
func (m *Model) AddComponent(parent *Element, id, name string) (*Element, error) {
	c, ok := m.owned(parent).(*Container)
	if !ok {
		return nil, fmt.Errorf("component %s: %w", id, ErrInvalidParent)
	}
	e := &Element{ID: id, Name: name, Parent: parent, Kind: &Component{}}
	e.AddTags(TagElement, TagComponent)
	if err := m.register(e); err != nil {
		return nil, err
	}
	c.Components = append(c.Components, e)
	return e, nil
}

// AddRelationship adds a relationship between two existing elements.
// Relationships without tags get the default "Relationship" tag.
func (m *Model) AddRelationship(r Relationship) error {
	if _, ok := m.index[r.SourceID]; !ok {
		return fmt.Errorf("relationship %s: %w: %q", r.ID, ErrUnknownSourceElement, r.SourceID)
	}
	if _, ok := m.index[r.DestinationID]; !ok {
		return fmt.Errorf("relationship %s: %w: %q", r.ID, ErrUnknownDestinationElement, r.DestinationID)
	}
	if r.Tags == "" {
		r.Tags = TagRelationship
	}
	m.Relationships = append(m.Relationships, r)
	return nil
}

// Element returns the element with the given ID and true, or nil and false.
func (m *Model) Element(id string) (*Element, bool) {
	e, ok := m.index[id]
	return e, ok
}

// ElementCount returns the number of elements in the model.
func (m *Model) ElementCount() int { return len(m.order) }

// Relationship returns the relationship with the given ID and true, or the
// zero value and false. Relationships without an ID cannot be looked up.
func (m *Model) Relationship(id string) (Relationship, bool) {
	if id == "" {
		return Relationship{}, false
	}
	for _, r := range m.Relationships {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

func (m *Model) register(e *Element) error {
	if e.ID == "" {
		return ErrInvalidElementID
	}
	if _, exists := m.index[e.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateElementID, e.ID)
	}
	m.index[e.ID] = e
	m.order = append(m.order, e)
	return nil
}

// owned returns the kind of parent if parent belongs to this model.
func (m *Model) owned(parent *Element) Kind {
	if parent == nil {
		return nil
	}
	if known, ok := m.index[parent.ID]; !ok || known != parent {
		return nil
	}
	return parent.Kind
}
