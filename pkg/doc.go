// Package pkg provides the libraries behind c4dgml, which projects C4
// architecture workspaces onto DGML directed graphs.
//
// # Overview
//
// A C4 workspace describes people, software systems, containers and
// components, the relationships between them, and views that select a subset
// at one level of detail. c4dgml turns the elements of those views into DGML
// nodes, their relationships into links, and the workspace's element styles
// into conditional DGML styles keyed on node categories.
//
// # Architecture
//
//	workspace document (JSON / YAML)
//	         ↓
//	    [workspace] package (decode into the model)
//	         ↓
//	    [model] package (elements, relationships, views, styles)
//	         ↓
//	    [projection] + [style] packages (nodes, links, categories, styles)
//	         ↓
//	    [dgml] package (document types and XML/JSON encoding)
//	         ↓
//	    [render] packages (DOT, SVG, PNG, PDF)
//
// [pipeline] orchestrates these stages with caching ([cache]) and is shared by
// the CLI and the HTTP API ([server]). [config] reads the TOML config file and
// [errors] carries the error codes that both front ends report.
//
// # Quick Start
//
//	ws, err := workspace.Load("workspace.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g := projection.ToDGML(ws, projection.Options{})
//	if err := dgml.WriteXML(g, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package pkg
