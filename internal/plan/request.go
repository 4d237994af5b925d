package plan

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"copy-generator/internal/analyze"
	"copy-generator/internal/diagnostic"
)

// Request asks for one method per source for a target in one mode.
type Request struct {
	Target  *analyze.TypeInfo
	Sources []*analyze.TypeInfo
	Mode    Mode
}

// String returns "Target <- [A, B] (mode)".
func (r Request) String() string {
	names := make([]string, len(r.Sources))
	for i, s := range r.Sources {
		names[i] = s.ID.String()
	}

	arrow := "<-"
	if DefaultModeConfig(r.Mode).Swap {
		arrow = "->"
	}

	return fmt.Sprintf("%s %s [%s] (%s)", r.Target.ID, arrow, strings.Join(names, ", "), r.Mode)
}

// SortedSources returns the sources ordered by namespace, then name, with
// duplicates removed.
func (r Request) SortedSources() []*analyze.TypeInfo {
	out := slices.Clone(r.Sources)
	slices.SortFunc(out, func(a, b *analyze.TypeInfo) int {
		return a.ID.Compare(b.ID)
	})

	return slices.CompactFunc(out, func(a, b *analyze.TypeInfo) bool {
		return a.ID == b.ID
	})
}

var typeofPattern = regexp.MustCompile(`^typeof\s*\(\s*(.+?)\s*\)$`)

// ResolveRequests scans the attributes of every generatable type and returns
// the requests they declare, ordered by target then mode. Attribute entries
// whose argument is not a typeof expression naming a known type are dropped
// with an info diagnostic.
func ResolveRequests(graph *analyze.TypeGraph) ([]Request, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	if graph == nil {
		return nil, diags
	}

	var out []Request

	for _, t := range graph.Sorted() {
		bySource := make(map[Mode][]*analyze.TypeInfo)

		for _, attr := range t.Attributes {
			mode, ok := ModeForAttribute(attr.ShortName())
			if !ok {
				continue
			}

			if t.External || t.Kind == analyze.TypeKindInterface {
				diags.AddWarning("ignored_attribute",
					fmt.Sprintf("%s is ignored on external and interface types", attr.ShortName()),
					t.ID.String(), attr.Name)

				continue
			}

			source, reason := resolveTypeofArg(graph, t, attr)
			if source == nil {
				diags.AddInfo("unresolved_attribute", reason, t.ID.String(), attr.Name)
				continue
			}

			bySource[mode] = append(bySource[mode], source)
		}

		for _, mode := range AllModes() {
			if len(bySource[mode]) == 0 {
				continue
			}

			out = append(out, Request{Target: t, Sources: bySource[mode], Mode: mode})
		}
	}

	return out, diags
}

func resolveTypeofArg(graph *analyze.TypeGraph, owner *analyze.TypeInfo, attr analyze.Attribute) (*analyze.TypeInfo, string) {
	if len(attr.Args) == 0 {
		return nil, "attribute has no argument"
	}

	m := typeofPattern.FindStringSubmatch(strings.TrimSpace(attr.Args[0]))
	if m == nil {
		return nil, fmt.Sprintf("argument %q is not a typeof expression", attr.Args[0])
	}

	t := graph.Lookup(m[1], owner.ID.Namespace)
	if t == nil {
		return nil, fmt.Sprintf("type %q could not be resolved", m[1])
	}

	return t, ""
}
