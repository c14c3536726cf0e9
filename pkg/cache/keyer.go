package cache

import (
	"slices"
	"strings"
)

// Keyer builds cache keys.
type Keyer interface {
	// ProjectionKey identifies the graph projected from a workspace.
	ProjectionKey(workspaceHash string, opts ProjectionKeyOpts) string
	// ArtifactKey identifies an artifact rendered from a projected graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ProjectionKeyOpts lists the options that change a projection.
type ProjectionKeyOpts struct {
	InputFormat       string   `json:"input_format,omitempty"`
	Views             []string `json:"views,omitempty"`
	MaxLabelLength    int      `json:"max_label_length,omitempty"`
	ShapesURI         string   `json:"shapes_uri,omitempty"`
	DefaultBackground string   `json:"default_background,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProjectionKey returns "projection:<sha256>". View order does not matter.
func (DefaultKeyer) ProjectionKey(workspaceHash string, opts ProjectionKeyOpts) string {
	views := slices.Clone(opts.Views)
	for i, v := range views {
		views[i] = strings.ToLower(v)
	}
	slices.Sort(views)
	opts.Views = slices.Compact(views)
	return hashKey("projection", workspaceHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
