package manifest

import (
	"fmt"
	"strings"

	"copy-generator/internal/analyze"
)

// File represents the root of a YAML type manifest.
type File struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Namespace is the default namespace of types that do not declare one.
	Namespace string `yaml:"namespace,omitempty" validate:"omitempty,qualified"`

	// Types declared by this manifest.
	Types []TypeDef `yaml:"types" validate:"dive"`

	// Source is the path the manifest was loaded from.
	Source string `yaml:"-"`
}

// TypeDef declares one type.
type TypeDef struct {
	Name      string `yaml:"name" validate:"required,ident"`
	Namespace string `yaml:"namespace,omitempty" validate:"omitempty,qualified"`

	// Kind is one of class, struct, record, record struct, interface.
	Kind string `yaml:"kind,omitempty"`

	// External types are referenced but never generated.
	External bool `yaml:"external,omitempty"`

	Base       string        `yaml:"base,omitempty"`
	Interfaces StringOrArray `yaml:"interfaces,omitempty"`

	// PrimaryConstructor lists positional parameters as "Type Name".
	PrimaryConstructor []string `yaml:"primary_constructor,omitempty" validate:"dive,required"`

	// DefaultConstructor marks an explicitly declared parameterless constructor.
	DefaultConstructor bool `yaml:"default_constructor,omitempty"`

	Attributes []AttributeRef `yaml:"attributes,omitempty"`
	Members    []MemberDef    `yaml:"members,omitempty" validate:"dive"`
}

// MemberDef declares a field or property.
type MemberDef struct {
	Name string `yaml:"name" validate:"required"`

	// Kind is "property" (default) or "field".
	Kind string `yaml:"kind,omitempty" validate:"omitempty,oneof=property field"`

	Type string `yaml:"type" validate:"required"`

	// ValueType marks a member type as a struct or enum declared outside
	// the manifest.
	ValueType bool `yaml:"value_type,omitempty"`

	// Access is the declared accessibility; defaults to public.
	Access string `yaml:"access,omitempty"`

	// Accessors lists property accessors, e.g. "get; private set;" or "get; init;".
	Accessors string `yaml:"accessors,omitempty"`

	ReadOnly   bool           `yaml:"readonly,omitempty"`
	Const      bool           `yaml:"const,omitempty"`
	Attributes []AttributeRef `yaml:"attributes,omitempty"`
}

// QualifiedName returns the type's qualified name, falling back to the
// file's namespace.
func (t *TypeDef) QualifiedName(fileNamespace string) analyze.TypeID {
	ns := t.Namespace
	if ns == "" {
		ns = fileNamespace
	}

	return analyze.TypeID{Namespace: ns, Name: t.Name}
}

// Parameter is one positional constructor parameter.
type Parameter struct {
	Type string
	Name string
}

// ParseParameter parses "Type Name". The type may contain spaces inside
// generic arguments, e.g. "Dictionary<string, int> Lookup".
func ParseParameter(s string) (Parameter, error) {
	s = strings.TrimSpace(s)

	idx := strings.LastIndexAny(s, " \t")
	if idx <= 0 {
		return Parameter{}, fmt.Errorf("parameter %q must be written as \"Type Name\"", s)
	}

	p := Parameter{
		Type: strings.TrimSpace(s[:idx]),
		Name: strings.TrimSpace(s[idx+1:]),
	}

	if !identPattern.MatchString(p.Name) {
		return Parameter{}, fmt.Errorf("parameter %q has an invalid name", s)
	}

	return p, nil
}

// AttributeRef is an attribute as written in source, e.g.
// "EnableCopyFrom(typeof(Other))". The mapping form {name, args} is also
// accepted.
type AttributeRef struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// String renders the attribute as C# source.
func (a AttributeRef) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}

	return a.Name + "(" + strings.Join(a.Args, ", ") + ")"
}

// ParseAttribute parses "Name" or "Name(arg, arg)". Commas nested in
// parentheses or angle brackets do not split arguments.
func ParseAttribute(s string) (AttributeRef, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" {
			return AttributeRef{}, fmt.Errorf("empty attribute")
		}

		return AttributeRef{Name: s}, nil
	}

	if !strings.HasSuffix(s, ")") || strings.Count(s, "(") != strings.Count(s, ")") {
		return AttributeRef{}, fmt.Errorf("attribute %q: missing closing parenthesis", s)
	}

	ref := AttributeRef{Name: strings.TrimSpace(s[:open])}
	if ref.Name == "" {
		return AttributeRef{}, fmt.Errorf("attribute %q: missing name", s)
	}

	inner := s[open+1 : len(s)-1]
	depth := 0
	start := 0

	for i, r := range inner {
		switch r {
		case '(', '<', '[':
			depth++
		case ')', '>', ']':
			depth--
		case ',':
			if depth == 0 {
				ref.Args = append(ref.Args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(inner[start:]); last != "" || len(ref.Args) > 0 {
		ref.Args = append(ref.Args, last)
	}

	return ref, nil
}

// ToAnalyze converts the reference into the analyze model.
func (a AttributeRef) ToAnalyze() analyze.Attribute {
	return analyze.Attribute{Name: a.Name, Args: a.Args}
}
