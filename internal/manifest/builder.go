package manifest

import (
	"fmt"

	"copy-generator/internal/analyze"
	"copy-generator/internal/diagnostic"
)

// Builder links manifest files into a type graph.
type Builder struct {
	graph   *analyze.TypeGraph
	diags   *diagnostic.Diagnostics
	pending []pendingType
}

type pendingType struct {
	def    *TypeDef
	info   *analyze.TypeInfo
	params []Parameter
	source string
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		graph: analyze.NewTypeGraph(),
		diags: &diagnostic.Diagnostics{},
	}
}

// Build validates the files and links them into a type graph. The graph is
// returned even when errors were found so callers can report every problem.
func Build(files ...*File) (*analyze.TypeGraph, *diagnostic.Diagnostics) {
	b := NewBuilder()
	for _, f := range files {
		b.Add(f)
	}

	return b.Finish()
}

// Add validates a file and declares its types.
func (b *Builder) Add(mf *File) {
	if mf == nil {
		return
	}

	b.diags.Merge(*Validate(mf))

	for i := range mf.Types {
		b.declare(&mf.Types[i], mf)
	}
}

// Finish resolves base types, interfaces and members and returns the graph.
func (b *Builder) Finish() (*analyze.TypeGraph, *diagnostic.Diagnostics) {
	for i := range b.pending {
		b.link(&b.pending[i])
	}

	for i := range b.pending {
		b.members(&b.pending[i])
	}

	for i := range b.pending {
		b.checkBaseCycle(&b.pending[i])
	}

	return b.graph, b.diags
}

func (b *Builder) declare(def *TypeDef, mf *File) {
	if def.Name == "" {
		return
	}

	id := def.QualifiedName(mf.Namespace)
	diags := &diagnostic.Diagnostics{}
	defer func() {
		diags.WithSource(mf.Source)
		b.diags.Merge(*diags)
	}()

	kind := analyze.ParseTypeKind(def.Kind)
	if kind == analyze.TypeKindUnknown {
		diags.AddError("unknown_kind", fmt.Sprintf("unknown type kind %q", def.Kind), id.String(), "")
		return
	}

	if b.graph.GetType(id) != nil {
		diags.AddError("duplicate_type", "type is declared more than once", id.String(), "")
		return
	}

	info := &analyze.TypeInfo{
		ID:                    id,
		Kind:                  kind,
		External:              def.External,
		HasDefaultConstructor: def.DefaultConstructor,
	}

	var params []Parameter

	for _, raw := range def.PrimaryConstructor {
		p, err := ParseParameter(raw)
		if err != nil {
			diags.AddError("invalid_parameter", err.Error(), id.String(), raw)
			continue
		}

		if info.IsPrimaryParam(p.Name) {
			diags.AddError("duplicate_parameter", fmt.Sprintf("parameter %q is declared twice", p.Name), id.String(), p.Name)
			continue
		}

		params = append(params, p)
		info.PrimaryParams = append(info.PrimaryParams, p.Name)
	}

	if kind == analyze.TypeKindInterface && len(params) > 0 {
		diags.AddError("invalid_parameter", "interfaces cannot declare a primary constructor", id.String(), "")
	}

	for _, a := range def.Attributes {
		info.Attributes = append(info.Attributes, a.ToAnalyze())
	}

	b.graph.Add(info)
	b.pending = append(b.pending, pendingType{def: def, info: info, params: params, source: mf.Source})
}

func (b *Builder) link(p *pendingType) {
	diags := &diagnostic.Diagnostics{}
	defer func() {
		diags.WithSource(p.source)
		b.diags.Merge(*diags)
	}()

	info := p.info
	name := info.ID.String()

	if p.def.Base != "" {
		base := b.graph.Lookup(p.def.Base, info.ID.Namespace)

		switch {
		case base == nil:
			diags.AddError("unknown_base_type", fmt.Sprintf("base type %q not found", p.def.Base), name, "")
		case info.Kind == analyze.TypeKindInterface || info.IsValueType():
			diags.AddError("invalid_base_type", fmt.Sprintf("a %s cannot have a base type", info.Kind), name, "")
		case base.Kind == analyze.TypeKindInterface:
			diags.AddError("invalid_base_type",
				fmt.Sprintf("base type %q is an interface; list it under interfaces", p.def.Base), name, "")
		case base.IsValueType():
			diags.AddError("invalid_base_type", fmt.Sprintf("base type %q is a %s", p.def.Base, base.Kind), name, "")
		case base.Kind.IsRecord() != info.Kind.IsRecord():
			diags.AddError("invalid_base_type",
				fmt.Sprintf("a %s cannot derive from a %s", info.Kind, base.Kind), name, "")
		default:
			info.Base = base
		}
	}

	for _, ifaceName := range p.def.Interfaces {
		iface := b.graph.Lookup(ifaceName, info.ID.Namespace)

		switch {
		case iface == nil:
			diags.AddError("unknown_interface", fmt.Sprintf("interface %q not found", ifaceName), name, "")
		case iface.Kind != analyze.TypeKindInterface:
			diags.AddError("invalid_interface", fmt.Sprintf("%q is a %s, not an interface", ifaceName, iface.Kind), name, "")
		default:
			info.Interfaces = append(info.Interfaces, iface)
		}
	}
}

func (b *Builder) members(p *pendingType) {
	diags := &diagnostic.Diagnostics{}
	defer func() {
		diags.WithSource(p.source)
		b.diags.Merge(*diags)
	}()

	info := p.info
	name := info.ID.String()
	declared := make(map[string]bool, len(p.def.Members))

	for i := range p.def.Members {
		declared[p.def.Members[i].Name] = true
	}

	// Positional record parameters become properties.
	if info.Kind.IsRecord() {
		for _, param := range p.params {
			if declared[param.Name] {
				continue
			}

			info.Members = append(info.Members, analyze.MemberInfo{
				Name:   param.Name,
				Kind:   analyze.MemberProperty,
				Type:   b.resolveTypeRef(param.Type, false, info.ID.Namespace),
				Access: analyze.AccessPublic,
				Getter: &analyze.Accessor{Access: analyze.AccessPublic},
				Setter: &analyze.Accessor{
					Access:   analyze.AccessPublic,
					InitOnly: info.Kind == analyze.TypeKindRecord,
				},
			})
		}
	}

	seen := make(map[string]bool, len(p.def.Members))

	for i := range p.def.Members {
		def := &p.def.Members[i]
		if def.Name == "" || def.Type == "" {
			continue
		}

		if seen[def.Name] {
			diags.AddError("duplicate_member", "member is declared more than once", name, def.Name)
			continue
		}

		seen[def.Name] = true

		m, err := b.member(def, info)
		if err != nil {
			diags.AddError("invalid_member", err.Error(), name, def.Name)
			continue
		}

		info.Members = append(info.Members, m)
	}
}

func (b *Builder) member(def *MemberDef, owner *analyze.TypeInfo) (analyze.MemberInfo, error) {
	access, ok := analyze.ParseAccessibility(def.Access)
	if !ok {
		return analyze.MemberInfo{}, fmt.Errorf("invalid accessibility %q", def.Access)
	}

	m := analyze.MemberInfo{
		Name:   def.Name,
		Type:   b.resolveTypeRef(def.Type, def.ValueType, owner.ID.Namespace),
		Access: access,
	}

	for _, a := range def.Attributes {
		m.Attributes = append(m.Attributes, a.ToAnalyze())
	}

	switch def.Kind {
	case "field":
		if def.Accessors != "" {
			return analyze.MemberInfo{}, fmt.Errorf("fields cannot declare accessors")
		}

		if owner.Kind == analyze.TypeKindInterface && !def.Const {
			return analyze.MemberInfo{}, fmt.Errorf("interfaces cannot declare instance fields")
		}

		m.Kind = analyze.MemberField
		m.ReadOnly = def.ReadOnly
		m.Const = def.Const

		return m, nil

	case "property":
		if def.ReadOnly || def.Const {
			return analyze.MemberInfo{}, fmt.Errorf("properties cannot be readonly or const; use accessors")
		}

		getter, setter, err := parseAccessors(def.Accessors, access)
		if err != nil {
			return analyze.MemberInfo{}, err
		}

		m.Kind = analyze.MemberProperty
		m.Getter = getter
		m.Setter = setter

		return m, nil

	default:
		return analyze.MemberInfo{}, fmt.Errorf("unknown member kind %q", def.Kind)
	}
}

// resolveTypeRef parses a member type and, when it names a type in the graph,
// replaces it with the qualified name so that identity does not depend on how
// the type was spelled.
func (b *Builder) resolveTypeRef(s string, valueType bool, contextNamespace string) analyze.TypeRef {
	ref := analyze.ParseTypeRef(s)
	if valueType {
		ref.ValueType = true
	}

	if ref.ValueType && analyze.IsBuiltinValueType(ref.Name) {
		return ref
	}

	if t := b.graph.Lookup(ref.Name, contextNamespace); t != nil {
		ref.Name = t.ID.String()
		ref.ValueType = ref.ValueType || t.IsValueType()
	}

	return ref
}

func (b *Builder) checkBaseCycle(p *pendingType) {
	visited := map[analyze.TypeID]bool{}

	for t := p.info; t != nil; t = t.Base {
		if visited[t.ID] {
			diags := &diagnostic.Diagnostics{}
			diags.AddError("base_type_cycle", "base type chain is cyclic", p.info.ID.String(), "")
			diags.WithSource(p.source)
			b.diags.Merge(*diags)
			p.info.Base = nil

			return
		}

		visited[t.ID] = true
	}
}
