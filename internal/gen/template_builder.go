package gen

import (
	"fmt"
	"strings"

	"copy-generator/internal/plan"
)

// fileData is the view of one target file.
type fileData struct {
	Namespace string
	Kind      string
	Name      string
	Blocks    []blockData
}

// blockData is one member of the partial type body. Exactly one field is set.
type blockData struct {
	Transform   *transformData
	Passthrough *passthroughData
	Method      *methodData
}

type transformData struct {
	Member string
	Name   string
	Type   string
}

type passthroughData struct {
	Member     string
	Name       string
	Type       string
	Source     string
	Param      string
	ReadMember string
	NullGuard  bool
	Transform  string
}

type hookData struct {
	Summary string
	Name    string
	Params  string
}

type methodData struct {
	Hooks       []hookData
	Comment     string
	Declaration string
	Initializer string
	Body        []string
}

func (g *Generator) buildFileData(tp *plan.TargetPlan) *fileData {
	data := &fileData{
		Namespace: tp.Namespace,
		Kind:      tp.Kind.String(),
		Name:      tp.Name,
	}

	for _, h := range tp.Transforms {
		data.Blocks = append(data.Blocks, blockData{Transform: &transformData{
			Member: h.Member,
			Name:   h.Name(),
			Type:   h.Type.String(),
		}})
	}

	for _, pt := range tp.Passthroughs {
		data.Blocks = append(data.Blocks, blockData{Passthrough: &passthroughData{
			Member:     pt.Member,
			Name:       pt.Name(),
			Type:       pt.Type.String(),
			Source:     pt.Source,
			Param:      "source",
			ReadMember: pt.ReadMember,
			NullGuard:  pt.NullGuard,
			Transform:  pt.Transform,
		}})
	}

	for i := range tp.Methods {
		data.Blocks = append(data.Blocks, blockData{Method: g.buildMethod(tp, &tp.Methods[i])})
	}

	return data
}

func (g *Generator) buildMethod(tp *plan.TargetPlan, m *plan.MethodPlan) *methodData {
	cfg := m.Config
	shape := Shape{
		Mode:     m.Mode,
		BaseName: cfg.BaseName,
		Return:   cfg.Return,
		ByRef:    m.ByRef,
		Kind:     tp.Kind,
	}

	md := &methodData{
		Comment:     g.config.Formatters.comment(m.Target, m.Source, shape),
		Declaration: g.config.Formatters.declaration(m.Target, m.Source, m.Param, shape),
		Initializer: initializerText(m),
		Body:        methodBody(m),
	}

	if cfg.Before {
		md.Hooks = append(md.Hooks, hookData{
			Summary: fmt.Sprintf("Method to run before the %s method begins copying values.", cfg.BaseName),
			Name:    "Before" + cfg.BaseName,
			Params:  hookParams(m),
		})
	}

	if cfg.After {
		md.Hooks = append(md.Hooks, hookData{
			Summary: fmt.Sprintf("Method to run after the %s method finishes copying values.", cfg.BaseName),
			Name:    "After" + cfg.BaseName,
			Params:  hookParams(m),
		})
	}

	return md
}

func initializerText(m *plan.MethodPlan) string {
	switch m.Initializer.Kind {
	case plan.InitializerDefault:
		return "this()"
	case plan.InitializerPrimary:
		args := make([]string, len(m.Initializer.Args))
		for i, a := range m.Initializer.Args {
			args[i] = a.Expr(m.Param)
		}

		return "this(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}

// hookParams renders the parameter list of the Before/After hooks.
func hookParams(m *plan.MethodPlan) string {
	params := m.Source + " " + m.Param
	if m.ByRef {
		params = "ref " + params
	}

	if m.Config.Counted() {
		params += ", ref int changeCount"
	}

	return params
}

// hookArgs renders the arguments of a Before/After hook call.
func hookArgs(m *plan.MethodPlan) string {
	args := m.Param
	if m.ByRef {
		args = "ref " + args
	}

	if m.Config.Counted() {
		args += ", ref changeCount"
	}

	return args
}

// earlyReturn is the statement leaving a method that has nothing to copy.
func earlyReturn(m *plan.MethodPlan) string {
	switch m.Config.Return {
	case plan.ReturnCount:
		return "return 0;"
	case plan.ReturnSelf:
		return "return this;"
	default:
		return "return;"
	}
}

// methodBody renders the statements of a method, one line per element,
// relative to the method's braces.
func methodBody(m *plan.MethodPlan) []string {
	var body []string

	if m.NullGuard {
		if m.Config.IsConstructor() {
			body = append(body, fmt.Sprintf(
				"if (ReferenceEquals(null, %[1]s)) throw new ArgumentNullException(nameof(%[1]s));", m.Param))
		} else {
			body = append(body, fmt.Sprintf("if (ReferenceEquals(null, %s)) %s", m.Param, earlyReturn(m)))
		}
	}

	if m.SelfGuard {
		body = append(body, fmt.Sprintf("if (ReferenceEquals(this, %s)) %s", m.Param, earlyReturn(m)))
	}

	if m.Config.Counted() {
		body = append(body, "var changeCount = 0;")
	}

	if m.Config.Before {
		body = append(body, fmt.Sprintf("Before%s(%s);", m.Config.BaseName, hookArgs(m)))
	}

	for i := range m.Steps {
		body = append(body, stepLines(m, &m.Steps[i])...)
	}

	if m.Config.After {
		body = append(body, fmt.Sprintf("After%s(%s);", m.Config.BaseName, hookArgs(m)))
	}

	switch m.Config.Return {
	case plan.ReturnCount:
		body = append(body, "return changeCount;")
	case plan.ReturnSelf:
		body = append(body, "return this;")
	case plan.ReturnVoid, plan.ReturnConstructor:
	}

	return body
}

func stepLines(m *plan.MethodPlan, s *plan.MemberStep) []string {
	lines := []string{}

	if m.Config.Counted() {
		lines = append(lines, fmt.Sprintf("var %s = %s;", s.Current, s.Write))
	}

	lines = append(lines,
		fmt.Sprintf("var %s = %s;", s.Incoming, s.Read),
		fmt.Sprintf("%s(ref %s);", s.Transform, s.Incoming),
	)

	assign := fmt.Sprintf("%s = %s;", s.Write, s.Incoming)

	if !m.Config.Counted() {
		if s.Null == plan.NullNonNullable {
			return append(lines,
				fmt.Sprintf("if (!ReferenceEquals(null, %s)) {", s.Incoming),
				"    "+assign,
				"}",
			)
		}

		return append(lines, assign)
	}

	return append(lines,
		"if ("+changedCondition(s)+") {",
		"    "+assign,
		"    changeCount++;",
		"}",
	)
}

// changedCondition renders the test deciding whether a counted member changed.
func changedCondition(s *plan.MemberStep) string {
	cur, in := s.Current, s.Incoming

	switch s.Null {
	case plan.NullValue:
		return fmt.Sprintf("!%s.Equals(%s)", cur, in)
	case plan.NullNonNullable:
		return fmt.Sprintf("!ReferenceEquals(null, %[2]s) && !ReferenceEquals(%[1]s, %[2]s) && "+
			"(ReferenceEquals(null, %[1]s) || !%[1]s.Equals(%[2]s))", cur, in)
	default:
		return fmt.Sprintf("!ReferenceEquals(%[1]s, %[2]s) && (ReferenceEquals(null, %[1]s) || !%[1]s.Equals(%[2]s))", cur, in)
	}
}
