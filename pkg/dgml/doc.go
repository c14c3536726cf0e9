// Package dgml provides the directed-graph document produced by the C4
// projection, and its serialization.
//
// # Core Types
//
//   - [DirectedGraph]: the document (nodes, links, categories, styles)
//   - [Node], [Link]: structural graph elements
//   - [Category], [CategoryRef]: groupings used for styling and expansion
//   - [Style], [Condition], [Setter]: conditional visual rules
//
// # Serialization
//
// Documents serialize to DGML XML, the format understood by graph viewers
// such as the Visual Studio DGML editor:
//
//	<DirectedGraph xmlns="http://schemas.microsoft.com/vs/2009/dgml">
//	  <Nodes>
//	    <Node Id="k1" Label="Orders" Category="c1">
//	      <Category Ref="c1"/>
//	      <Category Ref="Component"/>
//	    </Node>
//	  </Nodes>
//	  ...
//	</DirectedGraph>
//
// and to an equivalent JSON form used for caching and the HTTP API:
//
//	data, _ := dgml.MarshalXML(g)
//	dgml.WriteFile(g, "model.dgml")         // format chosen by extension
//	parsed, _ := dgml.ReadFile("model.json")
//
// The [builder] subpackage assembles documents from per-entity builder
// functions.
//
// [builder]: github.com/matzehuels/c4dgml/pkg/dgml/builder
package dgml
