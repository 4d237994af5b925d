package match

import (
	"strings"

	"copy-generator/internal/analyze"
)

// MemberDescriptor is a normalized view of one field or property.
type MemberDescriptor struct {
	Name          string
	AlternateName string // Name with one leading underscore removed (fields only)
	Type          analyze.TypeRef
	Kind          analyze.MemberKind
	CanRead       bool
	CanWrite      bool
	InitOnly      bool
	DeclaringType analyze.TypeID
	Member        *analyze.MemberInfo
}

// NewDescriptor wraps a member declared on the given type.
func NewDescriptor(declaring analyze.TypeID, m *analyze.MemberInfo) MemberDescriptor {
	d := MemberDescriptor{
		Name:          m.Name,
		AlternateName: AlternateName(m),
		Type:          m.Type,
		Kind:          m.Kind,
		InitOnly:      m.IsInitOnly(),
		DeclaringType: declaring,
		Member:        m,
	}

	if m.Kind == analyze.MemberProperty {
		d.CanRead = m.Getter != nil
		d.CanWrite = m.Setter != nil
	} else {
		d.CanRead = true
		d.CanWrite = !m.ReadOnly && !m.Const
	}

	return d
}

// AlternateName returns the name a member also answers to. Fields drop a
// single leading underscore; properties keep their name.
func AlternateName(m *analyze.MemberInfo) string {
	if m.Kind == analyze.MemberField {
		return strings.TrimPrefix(m.Name, "_")
	}

	return m.Name
}

// Equal reports alias equality: identical declared types and a
// case-insensitive match between the names or alternate names.
func (d MemberDescriptor) Equal(other MemberDescriptor) bool {
	if !d.Type.Identical(other.Type) {
		return false
	}

	return strings.EqualFold(d.Name, other.Name) ||
		strings.EqualFold(d.Name, other.AlternateName) ||
		strings.EqualFold(d.AlternateName, other.Name) ||
		strings.EqualFold(d.AlternateName, other.AlternateName)
}

// String returns "Name: Type".
func (d MemberDescriptor) String() string {
	return d.Name + ": " + d.Type.String()
}

// compareDescriptors orders by name, then by type identity.
func compareDescriptors(a, b MemberDescriptor) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return strings.Compare(a.Type.Identity(), b.Type.Identity())
}
