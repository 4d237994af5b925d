// Package match collects the copyable members of a type and reconciles them
// against the members of another type.
//
// Members are compared by declared type identity and by name, where a field
// named "_value" also answers to "value" so it can pair with a property named
// "Value". Names are compared case-insensitively.
//
// Key types:
//   - MemberDescriptor: normalized view of one field or property
//   - MemberSet: insertion-ordered set that deduplicates by alias equality
//   - CollectOptions: visibility and mutability filters for a walk
//   - Collector: cycle-safe walk over base types and interfaces, with a per-worker cache
//   - Pair: a written member and the member it is read from
package match
