package analyze

import (
	"slices"
	"strings"

	"copy-generator/internal/common"
)

// TypeGraph holds all declared types of a generation pass.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all declared types.
	Types map[TypeID]*TypeInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types: make(map[TypeID]*TypeInfo),
	}
}

// Add registers a type. An existing type with the same ID is replaced.
func (g *TypeGraph) Add(t *TypeInfo) {
	g.Types[t.ID] = t
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Sorted returns all types ordered by namespace, then name.
func (g *TypeGraph) Sorted() []*TypeInfo {
	out := make([]*TypeInfo, 0, len(g.Types))
	for _, t := range g.Types {
		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b *TypeInfo) int {
		return a.ID.Compare(b.ID)
	})

	return out
}

// Lookup resolves a type name as written in source:
//   - "Ns.Sub.Type" (qualified)
//   - "global::Ns.Sub.Type"
//   - "Type" (name only, preferring the given context namespace)
//   - "Sub.Type" (namespace suffix)
//
// Returns nil if no type matches or a short name is ambiguous.
func (g *TypeGraph) Lookup(name, contextNamespace string) *TypeInfo {
	if g == nil {
		return nil
	}

	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "global::"))
	if name == "" {
		return nil
	}

	ns, short := common.SplitQualified(name)

	// 1) exact match
	if t := g.GetType(TypeID{Namespace: ns, Name: short}); t != nil {
		return t
	}

	// 2) relative to the context namespace and its parents
	for scope := contextNamespace; scope != ""; scope, _ = common.SplitQualified(scope) {
		scoped := scope
		if ns != "" {
			scoped = common.QualifiedName(scope, ns)
		}

		if t := g.GetType(TypeID{Namespace: scoped, Name: short}); t != nil {
			return t
		}
	}

	// 3) unique suffix match
	var found *TypeInfo

	for id, t := range g.Types {
		if id.Name != short {
			continue
		}

		if ns != "" && id.Namespace != ns && !strings.HasSuffix(id.Namespace, "."+ns) {
			continue
		}

		if found != nil {
			return nil
		}

		found = t
	}

	return found
}
