// Package workspace reads Structurizr workspace documents into a
// [model.Workspace].
//
// # Formats
//
// The JSON export format of Structurizr is supported, as well as YAML with
// the same field names:
//
//	name: Shop
//	model:
//	  people:
//	    - id: "1"
//	      name: Customer
//	      relationships:
//	        - id: "10"
//	          destinationId: "2"
//	          description: Places orders
//	  softwareSystems:
//	    - id: "2"
//	      name: Shop
//	      containers:
//	        - id: "3"
//	          name: API
//	views:
//	  systemContextViews:
//	    - key: context
//	      elements: [{id: "1"}, {id: "2"}]
//	      relationships: [{id: "10"}]
//	  configuration:
//	    styles:
//	      elements:
//	        - tag: Person
//	          shape: Person
//
// # Defaults
//
// Elements receive their kind's default tags ("Element,Container" and so on)
// and relationships the "Relationship" tag, whether or not the document lists
// them. Relationships may omit sourceId, which defaults to the enclosing
// element.
package workspace
