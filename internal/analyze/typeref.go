package analyze

import "strings"

// TypeRef is the declared type of a member.
type TypeRef struct {
	Name      string // Canonical name without nullable marker, e.g. "int", "string", "Ns.Point"
	Nullable  bool   // Declared with "?"
	ValueType bool   // Struct, enum or built-in value type
}

// builtinAliases maps framework names to their C# keyword spelling so that
// "System.Int32" and "int" are the same type.
var builtinAliases = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.SByte":   "sbyte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Single":  "float",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.IntPtr":  "nint",
	"System.UIntPtr": "nuint",
	"System.String":  "string",
	"System.Object":  "object",
}

var builtinValueTypes = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "char": true, "decimal": true,
	"double": true, "float": true, "short": true, "ushort": true, "int": true,
	"uint": true, "long": true, "ulong": true, "nint": true, "nuint": true,
	"System.DateTime": true, "System.DateTimeOffset": true, "System.TimeSpan": true,
	"System.Guid": true, "System.DateOnly": true, "System.TimeOnly": true,
	"DateTime": true, "DateTimeOffset": true, "TimeSpan": true, "Guid": true,
	"DateOnly": true, "TimeOnly": true,
}

// ParseTypeRef parses a type as written in a manifest ("string?", "System.Int32").
// ValueType is set for built-in value types only; callers that know about
// user-declared structs and enums set it afterwards.
func ParseTypeRef(s string) TypeRef {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "global::"))

	ref := TypeRef{}
	if strings.HasSuffix(s, "?") {
		ref.Nullable = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "?"))
	}

	if alias, ok := builtinAliases[s]; ok {
		s = alias
	}

	ref.Name = s
	ref.ValueType = builtinValueTypes[s]

	return ref
}

// IsBuiltinValueType returns true for C# built-in value types and common
// System structs.
func IsBuiltinValueType(name string) bool {
	if alias, ok := builtinAliases[name]; ok {
		name = alias
	}

	return builtinValueTypes[name]
}

// Identity returns the key used for type identity. The nullable annotation
// of a reference type is not part of its identity, while "T?" on a value
// type denotes the distinct type Nullable<T>.
func (r TypeRef) Identity() string {
	if r.ValueType && r.Nullable {
		return r.Name + "?"
	}

	return r.Name
}

// Identical reports exact type identity.
func (r TypeRef) Identical(other TypeRef) bool {
	return r.Identity() == other.Identity()
}

// String returns the type as it should be written in generated code.
func (r TypeRef) String() string {
	if r.Nullable {
		return r.Name + "?"
	}

	return r.Name
}

// IsNonNullableReference returns true for reference types without a
// nullable annotation.
func (r TypeRef) IsNonNullableReference() bool {
	return !r.ValueType && !r.Nullable
}
