package match

import (
	"regexp"
	"sync"

	"copy-generator/internal/analyze"
)

// SkipAttribute is the short name of the attribute that excludes a member
// from every generated method.
const SkipAttribute = "SkipOnCopy"

// validFieldName rejects compiler-generated storage such as "<Name>k__BackingField".
var validFieldName = regexp.MustCompile(`(?i)^[A-Z_][A-Z0-9_]*$`)

// CollectOptions selects which members a walk keeps.
type CollectOptions struct {
	// IncludeNonPublic keeps members whose read path is not public, as long
	// as they are accessible from the walked type itself.
	IncludeNonPublic bool
	// IncludeReadOnly keeps getter-only properties and readonly fields.
	IncludeReadOnly bool
	// IncludeInitOnly keeps init-only properties when IncludeReadOnly is false.
	IncludeInitOnly bool
	// ExternalWrite keeps only members that code outside the declaring type
	// can assign: public, not readonly and not init-only.
	ExternalWrite bool
	// ExternalRead additionally requires a public read path. Used with
	// ExternalWrite when the current value is compared before assigning.
	ExternalRead bool
}

// Collector walks types and caches member sets per (type, options).
// A Collector is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	cache map[collectKey]*MemberSet
}

type collectKey struct {
	id   analyze.TypeID
	opts CollectOptions
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{cache: make(map[collectKey]*MemberSet)}
}

// Collect returns the members of t that pass opts. The result must not be
// modified by the caller.
func (c *Collector) Collect(t *analyze.TypeInfo, opts CollectOptions) *MemberSet {
	if t == nil {
		return NewMemberSet()
	}

	key := collectKey{id: t.ID, opts: opts}

	c.mu.Lock()
	defer c.mu.Unlock()

	if set, ok := c.cache[key]; ok {
		return set
	}

	set := Collect(t, opts)
	c.cache[key] = set

	return set
}

// Collect walks t, its interfaces and its base types and returns the members
// that pass opts. Each type is visited once, so an interface reachable along
// several paths contributes its members once. Members declared closer to t
// win over alias-equal members declared further up.
func Collect(t *analyze.TypeInfo, opts CollectOptions) *MemberSet {
	set := NewMemberSet()
	if t == nil {
		return set
	}

	visited := make(map[analyze.TypeID]bool)
	stack := []*analyze.TypeInfo{t}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == nil || visited[current.ID] {
			continue
		}

		visited[current.ID] = true
		inherited := current.ID != t.ID

		for i := range current.Members {
			m := &current.Members[i]
			if m.Kind == analyze.MemberProperty && keepMember(m, inherited, opts) {
				set.Add(NewDescriptor(current.ID, m))
			}
		}

		for i := range current.Members {
			m := &current.Members[i]
			if m.Kind == analyze.MemberField && keepMember(m, inherited, opts) {
				set.Add(NewDescriptor(current.ID, m))
			}
		}

		// Interfaces are walked before the base type, first interface first.
		if current.Base != nil {
			stack = append(stack, current.Base)
		}

		for i := len(current.Interfaces) - 1; i >= 0; i-- {
			stack = append(stack, current.Interfaces[i])
		}
	}

	return set
}

func keepMember(m *analyze.MemberInfo, inherited bool, opts CollectOptions) bool {
	if m.HasAttribute(SkipAttribute) {
		return false
	}

	switch m.Kind {
	case analyze.MemberProperty:
		if m.IsWriteOnly() {
			return false
		}
	case analyze.MemberField:
		if m.Const || !validFieldName.MatchString(m.Name) {
			return false
		}
	}

	if opts.ExternalWrite {
		if opts.ExternalRead && m.ReadAccess() != analyze.AccessPublic {
			return false
		}

		return m.WriteAccess() == analyze.AccessPublic && !m.IsInitOnly()
	}

	if !opts.IncludeNonPublic {
		if m.ReadAccess() != analyze.AccessPublic {
			return false
		}
	} else if inherited && !accessibleFromDerived(m.ReadAccess()) {
		return false
	}

	if opts.IncludeReadOnly {
		return true
	}

	if m.IsReadOnly() {
		return false
	}

	if opts.IncludeNonPublic && inherited && !accessibleFromDerived(m.WriteAccess()) {
		return false
	}

	return opts.IncludeInitOnly || !m.IsInitOnly()
}

// accessibleFromDerived reports whether a member declared on a base type or
// interface can be used from a derived type.
func accessibleFromDerived(a analyze.Accessibility) bool {
	return a != analyze.AccessPrivate && a != analyze.AccessNotApplicable
}
