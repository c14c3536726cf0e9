package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/c4dgml/pkg/model"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for formats other than JSON and YAML.
	ErrUnsupportedFormat = errors.New("unsupported workspace format")

	// ErrUnknownElement is returned when a view references a missing element.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnknownRelationship is returned when a view references a missing
	// relationship.
	ErrUnknownRelationship = errors.New("unknown relationship")

	// ErrInvalidStyle is returned for malformed style rules.
	ErrInvalidStyle = errors.New("invalid element style")
)

// FormatFromPath infers the document format from a file extension,
// defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the workspace at path.
func Load(path string) (*model.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatFromPath(path))
}

// Decode reads a workspace document from r.
func Decode(r io.Reader, format string) (*model.Workspace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes a workspace document and builds the model.
func Parse(data []byte, format string) (*model.Workspace, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc.build()
}

func (d *document) build() (*model.Workspace, error) {
	ws := model.NewWorkspace(d.Name)
	ws.Description = d.Description
	b := &builder{ws: ws, m: ws.Model}

	if err := b.elements(d.Model); err != nil {
		return nil, err
	}
	if err := b.relationships(); err != nil {
		return nil, err
	}
	if err := b.views(d.Views); err != nil {
		return nil, err
	}
	return ws, nil
}

// builder populates a workspace in three passes: elements, relationships,
// then views, since relationships and views reference elements by id.
type builder struct {
	ws *model.Workspace
	m  *model.Model

	pending []pendingRel
	rels    map[string]model.Relationship
}

type pendingRel struct {
	owner string
	doc   relationshipDoc
}

func (b *builder) elements(md modelDoc) error {
	for _, p := range md.People {
		e, err := b.m.AddPerson(p.ID, p.Name)
		if err != nil {
			return fmt.Errorf("person %q: %w", p.Name, err)
		}
		b.fill(e, p)
	}

	for _, s := range md.SoftwareSystems {
		sys, err := b.m.AddSoftwareSystem(s.ID, s.Name)
		if err != nil {
			return fmt.Errorf("software system %q: %w", s.Name, err)
		}
		b.fill(sys, s.elementDoc)

		for _, c := range s.Containers {
			ctr, err := b.m.AddContainer(sys, c.ID, c.Name)
			if err != nil {
				return fmt.Errorf("container %q: %w", c.Name, err)
			}
			b.fill(ctr, c.elementDoc)
			ctr.Kind.(*model.Container).Technology = c.Technology

			for _, k := range c.Components {
				cmp, err := b.m.AddComponent(ctr, k.ID, k.Name)
				if err != nil {
					return fmt.Errorf("component %q: %w", k.Name, err)
				}
				b.fill(cmp, k.elementDoc)
				cmp.Kind.(*model.Component).Technology = k.Technology
			}
		}
	}
	return nil
}

func (b *builder) fill(e *model.Element, doc elementDoc) {
	e.Description = doc.Description
	e.URL = doc.URL
	e.AddTags(model.SplitTags(doc.Tags)...)
	for _, r := range doc.Relationships {
		b.pending = append(b.pending, pendingRel{owner: e.ID, doc: r})
	}
}

func (b *builder) relationships() error {
	b.rels = make(map[string]model.Relationship, len(b.pending))
	for _, p := range b.pending {
		src := p.doc.SourceID
		if src == "" {
			src = p.owner
		}
		r := model.Relationship{
			ID:            p.doc.ID,
			SourceID:      src,
			DestinationID: p.doc.DestinationID,
			Description:   p.doc.Description,
			Technology:    p.doc.Technology,
			Tags:          strings.Join(model.SplitTags(p.doc.Tags), ","),
		}
		if err := b.m.AddRelationship(r); err != nil {
			return err
		}
		if r.ID != "" {
			b.rels[r.ID] = b.m.Relationships[len(b.m.Relationships)-1]
		}
	}
	return nil
}

func (b *builder) views(vd viewsDoc) error {
	kinds := []struct {
		kind  model.ViewKind
		views []viewDoc
	}{
		{model.SystemContextView, vd.SystemContextViews},
		{model.ContainerView, vd.ContainerViews},
		{model.ComponentView, vd.ComponentViews},
	}
	for _, k := range kinds {
		for _, v := range k.views {
			view, err := b.view(k.kind, v)
			if err != nil {
				return fmt.Errorf("%s view %q: %w", k.kind, v.Key, err)
			}
			b.ws.Views.Add(view)
		}
	}

	for i, s := range vd.Configuration.Styles.Elements {
		style, err := elementStyle(s)
		if err != nil {
			return fmt.Errorf("style %d: %w", i, err)
		}
		b.ws.Views.Configuration.Styles = append(b.ws.Views.Configuration.Styles, style)
	}
	return nil
}

func (b *builder) view(kind model.ViewKind, v viewDoc) (model.View, error) {
	view := model.View{Key: v.Key, Title: v.Title, Kind: kind}
	for _, ref := range v.Elements {
		e, ok := b.m.Element(ref.ID)
		if !ok {
			return model.View{}, fmt.Errorf("%w: %q", ErrUnknownElement, ref.ID)
		}
		view.Elements = append(view.Elements, model.ElementView{Element: e})
	}
	for _, ref := range v.Relationships {
		r, ok := b.rels[ref.ID]
		if !ok {
			return model.View{}, fmt.Errorf("%w: %q", ErrUnknownRelationship, ref.ID)
		}
		view.Relationships = append(view.Relationships, model.RelationshipView{Relationship: r})
	}
	return view, nil
}

func elementStyle(s elementStyleDoc) (model.ElementStyle, error) {
	if strings.TrimSpace(s.Tag) == "" {
		return model.ElementStyle{}, fmt.Errorf("%w: missing tag", ErrInvalidStyle)
	}
	shape, err := model.ParseShape(s.Shape)
	if err != nil {
		return model.ElementStyle{}, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	return model.ElementStyle{
		Tag:        s.Tag,
		Background: s.Background,
		Color:      s.Color,
		Shape:      shape,
		Width:      s.Width,
		Height:     s.Height,
		FontSize:   s.FontSize,
	}, nil
}
