package analyze

import (
	"strings"

	"copy-generator/internal/common"
)

// TypeID uniquely identifies a type by its namespace and name.
type TypeID struct {
	Namespace string // e.g., "OneBarker.Samples"
	Name      string // e.g., "Foxtrot"
}

// String returns the qualified name of the type.
func (t TypeID) String() string {
	return common.QualifiedName(t.Namespace, t.Name)
}

// Compare orders type IDs by namespace, then by name.
func (t TypeID) Compare(other TypeID) int {
	if c := strings.Compare(t.Namespace, other.Namespace); c != 0 {
		return c
	}

	return strings.Compare(t.Name, other.Name)
}

// TypeKind represents the structural kind of a declared type.
type TypeKind int

const (
	TypeKindUnknown      TypeKind = iota
	TypeKindClass                 // class
	TypeKindStruct                // struct
	TypeKindRecord                // record (class)
	TypeKindRecordStruct          // record struct
	TypeKindInterface             // interface
)

// String returns the C# keyword(s) used to declare the kind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindStruct:
		return "struct"
	case TypeKindRecord:
		return "record"
	case TypeKindRecordStruct:
		return "record struct"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// IsValueType returns true for struct kinds.
func (k TypeKind) IsValueType() bool {
	return k == TypeKindStruct || k == TypeKindRecordStruct
}

// IsRecord returns true for record and record struct.
func (k TypeKind) IsRecord() bool {
	return k == TypeKindRecord || k == TypeKindRecordStruct
}

// ParseTypeKind parses a manifest kind. Both "record struct" and
// "record-struct" are accepted.
func ParseTypeKind(s string) TypeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "":
		return TypeKindClass
	case "struct":
		return TypeKindStruct
	case "record", "record class":
		return TypeKindRecord
	case "record struct", "record-struct", "record_struct":
		return TypeKindRecordStruct
	case "interface":
		return TypeKindInterface
	default:
		return TypeKindUnknown
	}
}

// Accessibility is the declared accessibility of a member or accessor.
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessPrivateProtected
	AccessProtected
	AccessInternal
	AccessProtectedInternal
	AccessPublic
)

// String returns the C# modifier text.
func (a Accessibility) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessPrivateProtected:
		return "private protected"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessProtectedInternal:
		return "protected internal"
	case AccessPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// ParseAccessibility parses a modifier list such as "protected internal".
// The second result is false if s is not an accessibility modifier.
func ParseAccessibility(s string) (Accessibility, bool) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "public":
		return AccessPublic, true
	case "private":
		return AccessPrivate, true
	case "protected":
		return AccessProtected, true
	case "internal":
		return AccessInternal, true
	case "protected internal", "internal protected":
		return AccessProtectedInternal, true
	case "private protected", "protected private":
		return AccessPrivateProtected, true
	default:
		return AccessNotApplicable, false
	}
}

// MemberKind distinguishes fields from properties.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberProperty
)

// String returns a human-readable member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	default:
		return common.UnknownStr
	}
}

// Accessor describes a property get/set/init accessor.
type Accessor struct {
	Access   Accessibility // Effective accessibility (defaults to the property's)
	InitOnly bool          // True for "init" accessors
}

// Attribute is an attribute attached to a type or member,
// e.g. EnableCopyFrom(typeof(Other)).
type Attribute struct {
	Name string   // Attribute name as written, e.g. "EnableCopyFrom" or "Generators.SkipOnCopyAttribute"
	Args []string // Raw argument expressions, e.g. ["typeof(Other)"]
}

// ShortName returns the attribute name without namespace and "Attribute" suffix.
func (a Attribute) ShortName() string {
	_, name := common.SplitQualified(strings.TrimPrefix(a.Name, "global::"))
	if name != "Attribute" {
		name = strings.TrimSuffix(name, "Attribute")
	}

	return name
}

// MemberInfo describes a field or property declared on a type.
type MemberInfo struct {
	Name       string
	Kind       MemberKind
	Type       TypeRef
	Access     Accessibility // Declared accessibility
	Getter     *Accessor     // Properties only; nil if no getter
	Setter     *Accessor     // Properties only; nil if no setter or init
	ReadOnly   bool          // Fields only: readonly
	Const      bool          // Fields only: const
	Attributes []Attribute
}

// IsWriteOnly returns true for properties with a setter but no getter.
func (m *MemberInfo) IsWriteOnly() bool {
	return m.Kind == MemberProperty && m.Getter == nil && m.Setter != nil
}

// IsReadOnly returns true for getter-only properties and readonly/const fields.
func (m *MemberInfo) IsReadOnly() bool {
	if m.Kind == MemberProperty {
		return m.Setter == nil
	}

	return m.ReadOnly || m.Const
}

// IsInitOnly returns true for properties whose setter is an init accessor
// and for readonly fields (write-once).
func (m *MemberInfo) IsInitOnly() bool {
	if m.Kind == MemberProperty {
		return m.Setter != nil && m.Setter.InitOnly
	}

	return m.ReadOnly
}

// ReadAccess returns the accessibility of the read path.
func (m *MemberInfo) ReadAccess() Accessibility {
	if m.Kind == MemberProperty {
		if m.Getter == nil {
			return AccessNotApplicable
		}

		return m.Getter.Access
	}

	return m.Access
}

// WriteAccess returns the accessibility of the write path.
func (m *MemberInfo) WriteAccess() Accessibility {
	if m.Kind == MemberProperty {
		if m.Setter == nil {
			return AccessNotApplicable
		}

		return m.Setter.Access
	}

	if m.ReadOnly || m.Const {
		return AccessNotApplicable
	}

	return m.Access
}

// HasAttribute returns true if the member carries an attribute with the
// given short name (see Attribute.ShortName).
func (m *MemberInfo) HasAttribute(shortName string) bool {
	for _, a := range m.Attributes {
		if a.ShortName() == shortName {
			return true
		}
	}

	return false
}

// TypeInfo describes a declared type.
type TypeInfo struct {
	ID                    TypeID
	Kind                  TypeKind
	PrimaryParams         []string    // Primary-constructor parameter names, in order
	HasDefaultConstructor bool        // An explicit parameterless constructor is declared
	External              bool        // Declared elsewhere (can be a source, never a target)
	Base                  *TypeInfo   // nil for interfaces, structs and root classes
	Interfaces            []*TypeInfo // Directly implemented interfaces
	Members               []MemberInfo
	Attributes            []Attribute
}

// IsValueType returns true if the type is a struct or record struct.
func (t *TypeInfo) IsValueType() bool {
	return t.Kind.IsValueType()
}

// HasPrimaryConstructor returns true if positional parameters are declared.
func (t *TypeInfo) HasPrimaryConstructor() bool {
	return len(t.PrimaryParams) > 0
}

// IsPrimaryParam returns true if name is a primary-constructor parameter.
func (t *TypeInfo) IsPrimaryParam(name string) bool {
	for _, p := range t.PrimaryParams {
		if p == name {
			return true
		}
	}

	return false
}

// Same reports whether t and other denote the same declared type.
func (t *TypeInfo) Same(other *TypeInfo) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.ID == other.ID
}
