package plan

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TargetSummary is a reviewable view of a TargetPlan.
type TargetSummary struct {
	Target       string          `yaml:"target"`
	Kind         string          `yaml:"kind"`
	Transforms   []string        `yaml:"transforms,omitempty"`
	Passthroughs []string        `yaml:"passthroughs,omitempty"`
	Methods      []MethodSummary `yaml:"methods"`
}

// MethodSummary is a reviewable view of a MethodPlan.
type MethodSummary struct {
	Mode        string   `yaml:"mode"`
	Method      string   `yaml:"method"`
	Returns     string   `yaml:"returns"`
	Initializer string   `yaml:"initializer,omitempty"`
	Members     []string `yaml:"members,omitempty"`
}

// Summarize converts plans into summaries.
func Summarize(plans []TargetPlan) []TargetSummary {
	out := make([]TargetSummary, 0, len(plans))

	for i := range plans {
		tp := &plans[i]
		ts := TargetSummary{
			Target: tp.QualifiedName(),
			Kind:   tp.Kind.String(),
		}

		for _, h := range tp.Transforms {
			ts.Transforms = append(ts.Transforms, fmt.Sprintf("%s(ref %s)", h.Name(), h.Type))
		}

		for _, pt := range tp.Passthroughs {
			ts.Passthroughs = append(ts.Passthroughs, fmt.Sprintf("%s(%s) -> %s", pt.Name(), pt.Source, pt.Type))
		}

		for j := range tp.Methods {
			ts.Methods = append(ts.Methods, summarizeMethod(&tp.Methods[j]))
		}

		out = append(out, ts)
	}

	return out
}

func summarizeMethod(m *MethodPlan) MethodSummary {
	ms := MethodSummary{
		Mode:    m.Mode.String(),
		Method:  m.String(),
		Returns: m.Config.Return.String(),
	}

	switch m.Initializer.Kind {
	case InitializerDefault:
		ms.Initializer = "this()"
	case InitializerPrimary:
		args := make([]string, len(m.Initializer.Args))
		for i, a := range m.Initializer.Args {
			args[i] = a.Expr(m.Param)
		}

		ms.Initializer = "this(" + strings.Join(args, ", ") + ")"
	case InitializerNone:
	}

	for _, s := range m.Steps {
		entry := s.Member
		if s.ReadMember != s.Member {
			entry += " <- " + s.ReadMember
		}

		ms.Members = append(ms.Members, fmt.Sprintf("%s: %s (%s)", entry, s.Type, s.Null))
	}

	return ms
}

// ExportYAML renders plan summaries as YAML.
func ExportYAML(plans []TargetPlan) ([]byte, error) {
	data, err := yaml.Marshal(Summarize(plans))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan summary: %w", err)
	}

	return data, nil
}
