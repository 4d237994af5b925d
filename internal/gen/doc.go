// Package gen renders method plans into C# source.
//
// Every target type becomes one file holding a reopened partial declaration
// of the target's kind. Rendering uses text/template with sprig functions
// and makes no decisions of its own: member selection, null handling and
// constructor chaining are all fixed by the plan.
//
// File layout:
//   - header: auto-generated marker, usings, file-scoped namespace, #nullable enable
//   - transform hook declarations, then passthrough functions
//   - one method per (mode, source), each preceded by its Before/After hook declarations
package gen
