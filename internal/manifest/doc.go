// Package manifest provides the YAML schema, loader and validation for type
// manifests, and builds the analyze.TypeGraph consumed by the generator.
//
// A manifest describes C# types the way they are declared in source:
//
//	version: "1"
//	namespace: OneBarker.Samples
//	types:
//	  - name: Foxtrot
//	    kind: record
//	    primary_constructor: ["string Name", "int Age"]
//	    attributes:
//	      - EnableInitFrom(typeof(Foxtrot))
//	      - EnableInitFrom(typeof(Foxtrot2))
//	    members:
//	      - name: BirthYear
//	        type: int?
//	        accessors: get; init;
//	  - name: Lima3
//	    kind: struct
//	    members:
//	      - name: Value
//	        kind: field
//	        type: int
//
// Members default to public properties with "get; set;" accessors. Positional
// parameters of records become properties ("get; init;" for records,
// "get; set;" for record structs) unless a member of the same name is declared.
//
// Types that are only referenced (framework structs, types from other
// assemblies) are declared with external: true. They can be copied from or to
// but never receive generated code.
//
// Key types:
//   - File: one parsed manifest
//   - TypeDef, MemberDef, AttributeRef: the YAML schema
//   - Builder: validates files and links them into an analyze.TypeGraph
package manifest
