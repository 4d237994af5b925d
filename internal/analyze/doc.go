// Package analyze provides the in-memory type metadata model consumed by
// member collection, matching and planning.
//
// The model describes C# types as declared in a manifest: their kind,
// namespace, base type, interfaces, primary-constructor parameters, members
// and attributes. It is built once per generation pass and never mutated
// afterwards, so it can be shared freely between concurrent workers.
//
// Key types:
//   - TypeID: namespace + type name
//   - TypeInfo: kind (class/struct/record/record-struct/interface), base, interfaces, members
//   - MemberInfo: field or property with accessibility, accessors and attributes
//   - TypeRef: declared member type with nullable annotation and value-type flag
//   - TypeGraph: all known types, with lookup by qualified or short name
package analyze
