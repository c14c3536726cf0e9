// Package pipeline provides the conversion pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a workspace document (JSON or YAML)
//  2. Project: map its views onto a DGML document with resolved styles
//  3. Render: export the document in the requested formats
//
// Projections and artifacts are cached by content hash, so re-running an
// unchanged workspace with the same options skips straight to the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "workspace.json",
//	    Formats: []string{"dgml", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dgml := result.Artifacts["dgml"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4dgml/pkg/cache"
	"github.com/matzehuels/c4dgml/pkg/config"
	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/model"
	"github.com/matzehuels/c4dgml/pkg/projection"
	"github.com/matzehuels/c4dgml/pkg/workspace"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatDGML = dgml.FormatXML
	FormatJSON = dgml.FormatJSON
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatDGML, FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatDGML: "application/xml",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// Extensions maps formats to file extensions.
var Extensions = map[string]string{
	FormatDGML: ".dgml",
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
	FormatPDF:  ".pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path        string `json:"path,omitempty"`
	Data        []byte `json:"-"`                      // Workspace document; read from Path when nil
	InputFormat string `json:"input_format,omitempty"` // json or yaml; inferred from Path

	// Projection options
	Views             []string `json:"views,omitempty"`
	MaxLabelLength    int      `json:"max_label_length,omitempty"`
	ShapesURI         string   `json:"shapes_uri,omitempty"`
	DefaultBackground string   `json:"default_background,omitempty"`
	Workers           int      `json:"workers,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	viewKinds []model.ViewKind
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Workspace is the loaded model. Nil when the projection came from cache.
	Workspace *model.Workspace

	// Graph is the projected DGML document.
	Graph dgml.DirectedGraph

	// WorkspaceHash is the content hash of the workspace document.
	WorkspaceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	dgml.Stats
	Elements    int
	LoadTime    time.Duration
	ProjectTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ProjectHit bool // Whether the projection came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForProject(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the workspace source.
func (o *Options) ValidateForLoad() error {
	if o.Data == nil {
		if err := errors.ValidatePath(o.Path); err != nil {
			return err
		}
	}
	if o.InputFormat == "" {
		o.InputFormat = workspace.FormatFromPath(o.Path)
	}
	o.InputFormat = strings.ToLower(o.InputFormat)
	if err := errors.ValidateFormat(o.InputFormat, []string{workspace.FormatJSON, workspace.FormatYAML}); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// ValidateForProject checks projection options.
func (o *Options) ValidateForProject() error {
	kinds, err := config.ParseViewKinds(o.Views)
	if err != nil {
		return err
	}
	// Canonical order; the projection cache key ignores the order given.
	slices.Sort(kinds)
	o.viewKinds = slices.Compact(kinds)
	if o.MaxLabelLength == 0 {
		o.MaxLabelLength = projection.MaxLabelLength
	}
	if o.MaxLabelLength < 4 {
		return errors.New(errors.ErrCodeInvalidInput, "max label length must be at least 4, got %d", o.MaxLabelLength)
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDGML}
	}
	formats := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	o.Formats = formats
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return errors.ValidateFormats(o.Formats, ValidFormats)
}

// ProjectionOptions converts to [projection.Options]. Call after validation.
func (o *Options) ProjectionOptions() projection.Options {
	return projection.Options{
		Views:             o.viewKinds,
		MaxLabelLength:    o.MaxLabelLength,
		ShapesURI:         o.ShapesURI,
		DefaultBackground: o.DefaultBackground,
		Workers:           o.Workers,
	}
}

// ProjectionKeyOpts returns cache key options for the projection.
func (o *Options) ProjectionKeyOpts() cache.ProjectionKeyOpts {
	views := make([]string, len(o.viewKinds))
	for i, k := range o.viewKinds {
		views[i] = k.String()
	}
	return cache.ProjectionKeyOpts{
		InputFormat:       o.InputFormat,
		Views:             views,
		MaxLabelLength:    o.MaxLabelLength,
		ShapesURI:         o.ShapesURI,
		DefaultBackground: o.DefaultBackground,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Detailed = o.Detailed
		opts.Scale = o.Scale
	case FormatDOT, FormatSVG, FormatPDF:
		opts.Detailed = o.Detailed
	}
	return opts
}

// NeedsGraphviz reports whether any requested format requires Graphviz.
func (o *Options) NeedsGraphviz() bool {
	for _, f := range o.Formats {
		switch f {
		case FormatSVG, FormatPNG, FormatPDF:
			return true
		}
	}
	return false
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
