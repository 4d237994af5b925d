package plan

import (
	"copy-generator/internal/analyze"
	"copy-generator/internal/common"
)

// TargetPlan is everything generated for one target type.
type TargetPlan struct {
	Target       *analyze.TypeInfo
	Namespace    string
	Name         string
	Kind         analyze.TypeKind
	Transforms   []TransformHook
	Passthroughs []Passthrough
	Methods      []MethodPlan
}

// QualifiedName returns the target's qualified name.
func (p *TargetPlan) QualifiedName() string {
	return common.QualifiedName(p.Namespace, p.Name)
}

// MethodSet is the output of planning one request.
type MethodSet struct {
	Methods      []MethodPlan
	Transforms   []TransformHook
	Passthroughs []Passthrough
}

// MethodPlan is one generated method: a constructor, copier or updater for a
// single source (or, for reversed modes, a single foreign target).
type MethodPlan struct {
	Mode   Mode
	Config ModeConfig

	// Target is the name of the type owning the method.
	Target string
	// TargetType is the type owning the method.
	TargetType *analyze.TypeInfo
	// Source is the rendered type of the foreign parameter.
	Source string
	// SourceType is the foreign type.
	SourceType *analyze.TypeInfo
	// Param is the parameter name ("source" or "target").
	Param string

	// SelfCopy is set when the foreign type is the owning type.
	SelfCopy bool
	// ByRef passes a value-type parameter by reference.
	ByRef bool
	// NullGuard checks the parameter against null.
	NullGuard bool
	// SelfGuard short-circuits when the parameter is the receiver.
	SelfGuard bool

	Initializer Initializer
	Steps       []MemberStep
}

// InitializerKind selects the constructor initializer of a generated constructor.
type InitializerKind int

const (
	InitializerNone    InitializerKind = iota // no initializer
	InitializerDefault                        // : this()
	InitializerPrimary                        // : this(arg, ...)
)

// String returns a human-readable initializer kind.
func (k InitializerKind) String() string {
	switch k {
	case InitializerNone:
		return "none"
	case InitializerDefault:
		return "default"
	case InitializerPrimary:
		return "primary"
	default:
		return common.UnknownStr
	}
}

// Initializer is the ": this(...)" part of a generated constructor.
type Initializer struct {
	Kind InitializerKind
	Args []CtorArg
}

// CtorArg is one positional argument of a primary-constructor call.
type CtorArg struct {
	// Param is the primary-constructor parameter name.
	Param string
	// Passthrough names the function producing the value; empty means the
	// parameter has no matched member and receives its default value.
	Passthrough string
}

// Expr renders the argument for the given method parameter name.
func (a CtorArg) Expr(param string) string {
	if a.Passthrough == "" {
		return "default!"
	}

	return a.Passthrough + "(" + param + ")"
}

// NullHandling is the branch used when copying one member.
type NullHandling int

const (
	// NullValue: value types are never null; no guard.
	NullValue NullHandling = iota
	// NullNonNullable: non-nullable reference; a null incoming value is never assigned.
	NullNonNullable
	// NullNullable: nullable reference; assigned unconditionally.
	NullNullable
)

// String returns a human-readable branch name.
func (n NullHandling) String() string {
	switch n {
	case NullValue:
		return "value"
	case NullNonNullable:
		return "non_nullable"
	case NullNullable:
		return "nullable"
	default:
		return common.UnknownStr
	}
}

// NullHandlingFor returns the branch for a declared type.
func NullHandlingFor(t analyze.TypeRef) NullHandling {
	switch {
	case t.ValueType:
		return NullValue
	case t.Nullable:
		return NullNullable
	default:
		return NullNonNullable
	}
}

// MemberStep copies one member.
type MemberStep struct {
	// Member is the name of the member written.
	Member string
	// ReadMember is the name of the member read; differs from Member for
	// alias matches such as _value <- Value.
	ReadMember string
	Type       analyze.TypeRef
	Null       NullHandling
	// Transform is the transform hook invoked on the incoming value.
	Transform string

	// Write and Read are the member access expressions.
	Write string
	Read  string
	// Current and Incoming name the locals holding the current and new value.
	Current  string
	Incoming string
}

// TransformHook is a declaration-only static partial method invoked by
// reference on every value before it is assigned.
type TransformHook struct {
	BaseName string
	Member   string
	Type     analyze.TypeRef
}

// Name returns the hook's method name.
func (h TransformHook) Name() string {
	return TransformName(h.BaseName, h.Member)
}

// key identifies the hook's signature. Reference nullability does not change
// a signature, so it is not part of the key.
func (h TransformHook) key() string {
	return h.Name() + "(" + h.Type.Identity() + ")"
}

// TransformName returns the name of the transform hook for a member.
func TransformName(baseName, member string) string {
	return baseName + "Transform_" + member
}

// Passthrough reads a member from a foreign source, applies its transform
// hook and returns the value for use as a primary-constructor argument.
type Passthrough struct {
	Member     string
	ReadMember string
	Type       analyze.TypeRef
	// Source is the rendered parameter type.
	Source    string
	NullGuard bool
	Transform string
}

// Name returns the passthrough's method name.
func (p Passthrough) Name() string {
	return PassthroughName(p.Member)
}

func (p Passthrough) key() string {
	return p.Member + "|" + p.Source
}

// PassthroughName returns the name of the passthrough function for a member.
func PassthroughName(member string) string {
	return "PassthroughTransform_" + member
}
