package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copy-generator/internal/analyze"
)

func prop(name, typ string, get, set analyze.Accessibility, initOnly bool) analyze.MemberInfo {
	m := analyze.MemberInfo{
		Name:   name,
		Kind:   analyze.MemberProperty,
		Type:   analyze.ParseTypeRef(typ),
		Access: analyze.AccessPublic,
	}
	if get != analyze.AccessNotApplicable {
		m.Getter = &analyze.Accessor{Access: get}
	}

	if set != analyze.AccessNotApplicable {
		m.Setter = &analyze.Accessor{Access: set, InitOnly: initOnly}
	}

	return m
}

func publicProp(name, typ string) analyze.MemberInfo {
	return prop(name, typ, analyze.AccessPublic, analyze.AccessPublic, false)
}

func field(name, typ string, access analyze.Accessibility) analyze.MemberInfo {
	return analyze.MemberInfo{
		Name:   name,
		Kind:   analyze.MemberField,
		Type:   analyze.ParseTypeRef(typ),
		Access: access,
	}
}

func class(name string, members ...analyze.MemberInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		ID:      analyze.TypeID{Namespace: "Samples", Name: name},
		Kind:    analyze.TypeKindClass,
		Members: members,
	}
}

func TestMemberDescriptor_AliasEquality(t *testing.T) {
	valueField := field("_value", "int", analyze.AccessPrivate)
	valueProp := publicProp("Value", "int")
	longProp := publicProp("Value", "long")
	lowerProp := publicProp("value", "int")

	f := NewDescriptor(analyze.TypeID{Name: "A"}, &valueField)
	p := NewDescriptor(analyze.TypeID{Name: "B"}, &valueProp)
	l := NewDescriptor(analyze.TypeID{Name: "B"}, &longProp)
	lower := NewDescriptor(analyze.TypeID{Name: "B"}, &lowerProp)

	assert.Equal(t, "value", f.AlternateName)
	assert.Equal(t, "Value", p.AlternateName)
	assert.True(t, f.Equal(p))
	assert.True(t, p.Equal(f))
	assert.True(t, p.Equal(lower))
	assert.False(t, f.Equal(l), "int and long are different types")
}

func TestMemberDescriptor_Capabilities(t *testing.T) {
	ro := field("_x", "int", analyze.AccessPrivate)
	ro.ReadOnly = true
	d := NewDescriptor(analyze.TypeID{Name: "A"}, &ro)
	assert.True(t, d.CanRead)
	assert.False(t, d.CanWrite)
	assert.True(t, d.InitOnly)

	p := prop("Z", "int", analyze.AccessPublic, analyze.AccessPublic, true)
	d = NewDescriptor(analyze.TypeID{Name: "A"}, &p)
	assert.True(t, d.CanWrite)
	assert.True(t, d.InitOnly)
	assert.Equal(t, "Z: int", d.String())
}

func TestMemberSet_FirstWins(t *testing.T) {
	a := publicProp("Value", "int")
	b := field("_value", "int", analyze.AccessPrivate)

	s := NewMemberSet(
		NewDescriptor(analyze.TypeID{Name: "A"}, &a),
		NewDescriptor(analyze.TypeID{Name: "A"}, &b),
	)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Value", s.Items()[0].Name)
}

func TestCollect_Filters(t *testing.T) {
	skipped := publicProp("Skipped", "string")
	skipped.Attributes = []analyze.Attribute{{Name: "Generators.SkipOnCopyAttribute"}}

	constField := field("Max", "int", analyze.AccessPublic)
	constField.Const = true

	roField := field("_id", "System.Guid", analyze.AccessPrivate)
	roField.ReadOnly = true

	typ := class("Alpha",
		publicProp("Name", "string"),
		prop("Computed", "bool", analyze.AccessPublic, analyze.AccessNotApplicable, false),
		prop("Secret", "string", analyze.AccessPrivate, analyze.AccessPrivate, false),
		prop("Token", "string", analyze.AccessNotApplicable, analyze.AccessPublic, false),
		prop("Created", "System.DateTime", analyze.AccessPublic, analyze.AccessPublic, true),
		prop("Count", "int", analyze.AccessPublic, analyze.AccessPrivate, false),
		field("<Name>k__BackingField", "string", analyze.AccessPrivate),
		field("_counter", "long", analyze.AccessPrivate),
		field("Tag", "string?", analyze.AccessPublic),
		constField,
		roField,
		skipped,
	)

	tests := []struct {
		name string
		opts CollectOptions
		want []string
	}{
		{
			name: "foreign read",
			opts: ForeignReadOptions,
			want: []string{"Computed", "Count", "Created", "Name", "Tag"},
		},
		{
			name: "own writable",
			opts: CollectOptions{IncludeNonPublic: true},
			want: []string{"Count", "Name", "Secret", "Tag", "_counter"},
		},
		{
			name: "own writable with init",
			opts: CollectOptions{IncludeNonPublic: true, IncludeInitOnly: true},
			want: []string{"Count", "Created", "Name", "Secret", "Tag", "_counter"},
		},
		{
			name: "everything gettable",
			opts: CollectOptions{IncludeNonPublic: true, IncludeReadOnly: true, IncludeInitOnly: true},
			want: []string{"Computed", "Count", "Created", "Name", "Secret", "Tag", "_counter", "_id"},
		},
		{
			name: "external write",
			opts: CollectOptions{ExternalWrite: true},
			want: []string{"Name", "Tag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collect(typ, tt.opts).Names())
		})
	}
}

func TestCollect_InheritanceClosure(t *testing.T) {
	iface := &analyze.TypeInfo{
		ID:      analyze.TypeID{Namespace: "Samples", Name: "IHasX"},
		Kind:    analyze.TypeKindInterface,
		Members: []analyze.MemberInfo{publicProp("X", "int")},
	}
	grandparent := class("Grandparent", publicProp("X", "int"))
	grandparent.Interfaces = []*analyze.TypeInfo{iface}

	parent := class("Parent", publicProp("Y", "int"))
	parent.Base = grandparent
	parent.Interfaces = []*analyze.TypeInfo{iface}

	child := class("Child", publicProp("Z", "int"))
	child.Base = parent
	child.Interfaces = []*analyze.TypeInfo{iface}

	set := Collect(child, CollectOptions{IncludeNonPublic: true})
	assert.Equal(t, []string{"X", "Y", "Z"}, set.Names())

	items := set.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Z", items[0].Name)
	assert.Equal(t, "IHasX", items[1].DeclaringType.Name, "interfaces are walked before the base type")
}

func TestCollect_CycleSafe(t *testing.T) {
	a := &analyze.TypeInfo{ID: analyze.TypeID{Name: "IA"}, Kind: analyze.TypeKindInterface,
		Members: []analyze.MemberInfo{publicProp("A", "int")}}
	b := &analyze.TypeInfo{ID: analyze.TypeID{Name: "IB"}, Kind: analyze.TypeKindInterface,
		Members: []analyze.MemberInfo{publicProp("B", "int")}}
	a.Interfaces = []*analyze.TypeInfo{b}
	b.Interfaces = []*analyze.TypeInfo{a}

	assert.Equal(t, []string{"A", "B"}, Collect(a, ForeignReadOptions).Names())
}

func TestCollect_InheritedPrivateMembers(t *testing.T) {
	base := class("Base",
		field("_hidden", "int", analyze.AccessPrivate),
		prop("Locked", "int", analyze.AccessPublic, analyze.AccessPrivate, false),
		field("_shared", "int", analyze.AccessProtected),
	)
	derived := class("Derived", publicProp("Own", "int"))
	derived.Base = base

	assert.Equal(t, []string{"Own", "_shared"}, Collect(derived, CollectOptions{IncludeNonPublic: true}).Names())
	assert.Equal(t, []string{"Locked", "Own", "_shared"},
		Collect(derived, CollectOptions{IncludeNonPublic: true, IncludeReadOnly: true, IncludeInitOnly: true}).Names())
}

func TestCollect_Empty(t *testing.T) {
	assert.Equal(t, 0, Collect(class("Empty"), ForeignReadOptions).Len())
	assert.Equal(t, 0, Collect(nil, ForeignReadOptions).Len())
}

func TestCollector_Cache(t *testing.T) {
	typ := class("Alpha", publicProp("Name", "string"))
	c := NewCollector()

	first := c.Collect(typ, ForeignReadOptions)
	assert.Same(t, first, c.Collect(typ, ForeignReadOptions))
	assert.NotSame(t, first, c.Collect(typ, CollectOptions{ExternalWrite: true}))
}

func TestMatch(t *testing.T) {
	target := class("Target",
		field("_value", "int", analyze.AccessPrivate),
		publicProp("Name", "string"),
		publicProp("Size", "long"),
		publicProp("Extra", "bool"),
	)
	source := class("Source",
		publicProp("Value", "int"),
		publicProp("name", "string?"),
		publicProp("Size", "int"),
		prop("Extra", "bool", analyze.AccessPrivate, analyze.AccessPublic, false),
	)

	targetMembers := Collect(target, CollectOptions{IncludeNonPublic: true})
	matched := Match(targetMembers, source)

	names := make([]string, len(matched))
	for i, m := range matched {
		names[i] = m.Name
	}

	assert.Equal(t, []string{"Name", "_value"}, names)

	pairs := Pairs(targetMembers, Collect(source, ForeignReadOptions))
	require.Len(t, pairs, 2)
	assert.Equal(t, "_value", pairs[1].Name())
	assert.Equal(t, "Value", pairs[1].Read.Name)
	assert.Equal(t, "int", pairs[1].Type().String())
}

func TestMatch_OrderIndependent(t *testing.T) {
	members := []analyze.MemberInfo{
		publicProp("C", "int"),
		publicProp("A", "string"),
		field("_b", "double", analyze.AccessPrivate),
	}
	reversed := []analyze.MemberInfo{members[2], members[1], members[0]}

	sourceMembers := []analyze.MemberInfo{publicProp("B", "double"), publicProp("A", "string"), publicProp("C", "int")}

	first := Pairs(
		Collect(class("T", members...), CollectOptions{IncludeNonPublic: true}),
		Collect(class("S", sourceMembers...), ForeignReadOptions),
	)
	second := Pairs(
		Collect(class("T", reversed...), CollectOptions{IncludeNonPublic: true}),
		Collect(class("S", sourceMembers[2], sourceMembers[0], sourceMembers[1]), ForeignReadOptions),
	)

	require.Len(t, first, 3)
	require.Len(t, second, 3)

	for i := range first {
		assert.Equal(t, first[i].Write.Name, second[i].Write.Name)
		assert.Equal(t, first[i].Read.Name, second[i].Read.Name)
	}
}

func TestMatch_ExternalWriteBoundary(t *testing.T) {
	lima := class("Lima",
		prop("Value", "int", analyze.AccessPublic, analyze.AccessPublic, true),
		publicProp("ReadOnlyValue", "int"),
		publicProp("Name", "string?"),
	)
	lima2 := class("Lima2",
		publicProp("Value", "int"),
		prop("ReadOnlyValue", "int", analyze.AccessPublic, analyze.AccessPublic, true),
		prop("Name", "string?", analyze.AccessPublic, analyze.AccessPrivate, false),
	)

	write := Collect(lima2, CollectOptions{ExternalWrite: true})
	read := Collect(lima, CollectOptions{IncludeNonPublic: true, IncludeReadOnly: true, IncludeInitOnly: true})

	pairs := Pairs(write, read)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Value", pairs[0].Name())
}

func TestMatch_ExternalReadBoundary(t *testing.T) {
	dst := class("Dst",
		publicProp("Value", "int"),
		prop("Hits", "int", analyze.AccessPrivate, analyze.AccessPublic, false),
		prop("Name", "string", analyze.AccessInternal, analyze.AccessPublic, false),
	)
	src := class("Src", publicProp("Value", "int"), publicProp("Hits", "int"), publicProp("Name", "string"))
	read := Collect(src, CollectOptions{IncludeNonPublic: true, IncludeReadOnly: true, IncludeInitOnly: true})

	writeOnly := Pairs(Collect(dst, CollectOptions{ExternalWrite: true}), read)
	assert.Len(t, writeOnly, 3)

	readWrite := Pairs(Collect(dst, CollectOptions{ExternalWrite: true, ExternalRead: true}), read)
	require.Len(t, readWrite, 1)
	assert.Equal(t, "Value", readWrite[0].Name())
}

func TestPairs_Capabilities(t *testing.T) {
	getOnly := prop("Total", "int", analyze.AccessPublic, analyze.AccessNotApplicable, false)
	setOnly := prop("Total", "int", analyze.AccessNotApplicable, analyze.AccessPublic, false)
	both := publicProp("Total", "int")

	id := analyze.TypeID{Namespace: "Samples", Name: "T"}

	assert.Empty(t, Pairs(NewMemberSet(NewDescriptor(id, &getOnly)), NewMemberSet(NewDescriptor(id, &both))))
	assert.Empty(t, Pairs(NewMemberSet(NewDescriptor(id, &both)), NewMemberSet(NewDescriptor(id, &setOnly))))
	assert.Len(t, Pairs(NewMemberSet(NewDescriptor(id, &both)), NewMemberSet(NewDescriptor(id, &both))), 1)
}

func TestCollector_Match(t *testing.T) {
	target := class("Target", publicProp("Name", "string"), field("_size", "int", analyze.AccessPrivate))
	source := class("Source", publicProp("Name", "string"), publicProp("Size", "int"))
	members := Collect(target, CollectOptions{IncludeNonPublic: true})

	c := NewCollector()
	pairs := c.MatchPairs(members, source)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Size", pairs[1].Read.Name)
	assert.Equal(t, Match(members, source), c.Match(members, source))
}
