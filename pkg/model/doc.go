// Package model provides the in-memory C4 architecture model consumed by the
// DGML projection.
//
// # Overview
//
// A [Workspace] pairs a [Model] (people, software systems, containers,
// components and the relationships between them) with a [ViewSet] that
// organizes the model into system-context, container and component [View]s
// and carries the style [Configuration].
//
// Elements form an ownership tree: software systems own containers, containers
// own components. A child has at most one [Element.Parent]; parents reference
// their children through their [Kind]:
//
//	m := model.NewModel()
//	sys, _ := m.AddSoftwareSystem("s1", "Shop")
//	api, _ := m.AddContainer(sys, "c1", "API")
//	_, _ = m.AddComponent(api, "k1", "Orders")
//
// # Element Kinds
//
// [Kind] is a closed set of variants: [*Person], [*SoftwareSystem],
// [*Container] and [*Component]. Each variant carries only the children it can
// own, and [IsContainerLike] is the single exhaustive match over them.
//
// # Tags
//
// Tags are stored the way workspace documents store them, as one
// comma-separated string, and parsed on demand by [Element.TagList]. A
// malformed or empty tag string yields an empty list, never an error.
//
// # Concurrency
//
// A fully built Workspace is treated as an immutable snapshot and is safe for
// concurrent reads. The Add* methods are not safe for concurrent use.
package model
