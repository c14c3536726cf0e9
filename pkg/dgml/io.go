package dgml

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Serialization formats.
const (
	FormatXML  = "dgml"
	FormatJSON = "json"
)

// =============================================================================
// XML
// =============================================================================

// MarshalXML encodes g as an indented DGML document with an XML header.
func MarshalXML(g DirectedGraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXML writes g as DGML to w.
func WriteXML(g DirectedGraph, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode dgml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}

// ReadXML decodes a DGML document from r.
func ReadXML(r io.Reader) (DirectedGraph, error) {
	var g DirectedGraph
	if err := xml.NewDecoder(r).Decode(&g); err != nil {
		return DirectedGraph{}, fmt.Errorf("decode dgml: %w", err)
	}
	return g, nil
}

// =============================================================================
// JSON
// =============================================================================

// MarshalJSON encodes g as indented JSON.
func MarshalJSON(g DirectedGraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes g as JSON to w.
func WriteJSON(g DirectedGraph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON document from r.
func ReadJSON(r io.Reader) (DirectedGraph, error) {
	var g DirectedGraph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return DirectedGraph{}, fmt.Errorf("decode json: %w", err)
	}
	return g, nil
}

// UnmarshalJSON decodes JSON bytes into a document.
func UnmarshalJSON(data []byte) (DirectedGraph, error) {
	return ReadJSON(bytes.NewReader(data))
}

// =============================================================================
// Files
// =============================================================================

// FormatFromPath infers the serialization format from a file extension.
// ".json" selects JSON; anything else selects DGML XML.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatXML
}

// Encode writes g to w in the given format.
func Encode(g DirectedGraph, w io.Writer, format string) error {
	switch format {
	case FormatXML:
		return WriteXML(g, w)
	case FormatJSON:
		return WriteJSON(g, w)
	default:
		return fmt.Errorf("unsupported graph format %q", format)
	}
}

// WriteFile writes g to path, choosing the format by extension.
// The file is created with 0644 permissions.
func WriteFile(g DirectedGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(g, f, FormatFromPath(path))
}

// ReadFile reads a document from path, choosing the format by extension.
func ReadFile(path string) (DirectedGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return DirectedGraph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if FormatFromPath(path) == FormatJSON {
		return ReadJSON(f)
	}
	return ReadXML(f)
}
