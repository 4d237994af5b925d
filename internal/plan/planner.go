package plan

import (
	"slices"
	"strings"

	"copy-generator/internal/analyze"
	"copy-generator/internal/common"
	"copy-generator/internal/logger"
	"copy-generator/internal/match"
)

// Interceptor lets callers adjust plans without editing the planner. A nil
// callback keeps the default behaviour.
type Interceptor struct {
	// Step is called for every matched member before it is planned.
	// Returning false drops the member, its transform hook and its passthrough.
	Step func(m *MethodPlan, step *MemberStep) bool
	// Method is called once a method is fully planned.
	Method func(m *MethodPlan)
}

func (i Interceptor) keepStep(m *MethodPlan, step *MemberStep) bool {
	if i.Step == nil {
		return true
	}

	return i.Step(m, step)
}

func (i Interceptor) method(m *MethodPlan) {
	if i.Method != nil {
		i.Method(m)
	}
}

// Planner builds method plans. A Planner is safe for concurrent use as long
// as the interceptor callbacks are.
type Planner struct {
	configs     map[Mode]ModeConfig
	collector   *match.Collector
	interceptor Interceptor
	log         logger.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithModeConfig overrides the configuration of cfg.Mode.
func WithModeConfig(cfg ModeConfig) Option {
	return func(p *Planner) {
		p.configs[cfg.Mode] = cfg
	}
}

// WithInterceptor installs callbacks invoked while planning.
func WithInterceptor(i Interceptor) Option {
	return func(p *Planner) {
		p.interceptor = i
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithCollector shares a member collector (and its cache).
func WithCollector(c *match.Collector) Option {
	return func(p *Planner) {
		if c != nil {
			p.collector = c
		}
	}
}

// NewPlanner creates a Planner with the default mode configurations.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		configs:   DefaultModeConfigs(),
		collector: match.NewCollector(),
		log:       logger.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Config returns the configuration used for a mode.
func (p *Planner) Config(m Mode) ModeConfig {
	if cfg, ok := p.configs[m]; ok {
		return cfg
	}

	return DefaultModeConfig(m)
}

// PlanAll groups requests by target and plans every target. Targets are
// ordered by namespace and name.
func (p *Planner) PlanAll(reqs []Request) []TargetPlan {
	byTarget := make(map[analyze.TypeID][]Request)
	targets := make(map[analyze.TypeID]*analyze.TypeInfo)

	for _, r := range reqs {
		if r.Target == nil {
			continue
		}

		byTarget[r.Target.ID] = append(byTarget[r.Target.ID], r)
		targets[r.Target.ID] = r.Target
	}

	ids := make([]analyze.TypeID, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, analyze.TypeID.Compare)

	out := make([]TargetPlan, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.PlanTarget(targets[id], byTarget[id]))
	}

	return out
}

// PlanTarget plans every request of one target. Methods are ordered by mode,
// then by source; hooks and passthroughs are de-duplicated and sorted by name.
func (p *Planner) PlanTarget(target *analyze.TypeInfo, reqs []Request) TargetPlan {
	tp := TargetPlan{
		Target:    target,
		Namespace: target.ID.Namespace,
		Name:      target.ID.Name,
		Kind:      target.Kind,
	}

	merged := make(map[Mode][]*analyze.TypeInfo)
	for _, r := range reqs {
		merged[r.Mode] = append(merged[r.Mode], r.Sources...)
	}

	transforms := make(map[string]TransformHook)
	passthroughs := make(map[string]Passthrough)

	for _, mode := range AllModes() {
		if len(merged[mode]) == 0 {
			continue
		}

		set := p.Plan(Request{Target: target, Sources: merged[mode], Mode: mode})
		tp.Methods = append(tp.Methods, set.Methods...)

		for _, h := range set.Transforms {
			if _, ok := transforms[h.key()]; !ok {
				transforms[h.key()] = h
			}
		}

		for _, pt := range set.Passthroughs {
			if _, ok := passthroughs[pt.key()]; !ok {
				passthroughs[pt.key()] = pt
			}
		}
	}

	for _, k := range common.SortedKeys(transforms) {
		tp.Transforms = append(tp.Transforms, transforms[k])
	}

	for _, k := range common.SortedKeys(passthroughs) {
		tp.Passthroughs = append(tp.Passthroughs, passthroughs[k])
	}

	return tp
}

// Plan plans one method per source of the request. Sources are ordered by
// namespace and name; a source listed twice yields one method.
func (p *Planner) Plan(req Request) MethodSet {
	cfg := p.Config(req.Mode)

	var set MethodSet

	for _, source := range req.SortedSources() {
		method, transforms, passthroughs := p.planMethod(cfg, req.Target, source)
		set.Methods = append(set.Methods, method)
		set.Transforms = append(set.Transforms, transforms...)
		set.Passthroughs = append(set.Passthroughs, passthroughs...)

		p.log.Debug("planned method",
			"target", req.Target.ID.String(),
			"source", source.ID.String(),
			"mode", req.Mode.String(),
			"members", len(method.Steps),
			"passthroughs", len(passthroughs),
		)
	}

	return set
}

func (p *Planner) planMethod(
	cfg ModeConfig,
	target, source *analyze.TypeInfo,
) (MethodPlan, []TransformHook, []Passthrough) {
	self := target.Same(source)

	m := MethodPlan{
		Mode:       cfg.Mode,
		Config:     cfg,
		Target:     target.ID.Name,
		TargetType: target,
		Source:     TypeName(source, target),
		SourceType: source,
		Param:      cfg.ParamName(),
		SelfCopy:   self,
		ByRef:      cfg.Swap && source.IsValueType(),
		NullGuard:  !source.IsValueType(),
		SelfGuard:  !cfg.IsConstructor() && !target.IsValueType() && !source.IsValueType(),
	}

	usePassthroughs := UsePassthroughs(cfg, target, source)

	var (
		transforms   []TransformHook
		passthroughs []Passthrough
	)

	passByParam := make(map[string]string)

	for _, pair := range p.pairs(cfg, target, source, self) {
		step := newStep(cfg, pair)
		if !p.interceptor.keepStep(&m, &step) {
			continue
		}

		transforms = append(transforms, TransformHook{
			BaseName: cfg.BaseName,
			Member:   step.Member,
			Type:     step.Type,
		})

		if usePassthroughs && target.IsPrimaryParam(step.Member) {
			pt := Passthrough{
				Member:     step.Member,
				ReadMember: step.ReadMember,
				Type:       step.Type,
				Source:     m.Source,
				NullGuard:  m.NullGuard,
				Transform:  step.Transform,
			}
			passthroughs = append(passthroughs, pt)
			passByParam[step.Member] = pt.Name()

			continue
		}

		m.Steps = append(m.Steps, step)
	}

	if cfg.IsConstructor() {
		m.Initializer = initializer(target, self, usePassthroughs, passByParam)
	}

	p.interceptor.method(&m)

	return m, transforms, passthroughs
}

// UsePassthroughs reports whether positional members are supplied through
// the primary constructor. Records get a copy constructor, which must not
// call the primary constructor; every other kind with a primary constructor
// has to chain to it from every constructor, including the one copying from
// itself.
func UsePassthroughs(cfg ModeConfig, target, source *analyze.TypeInfo) bool {
	if !cfg.IsConstructor() || !target.HasPrimaryConstructor() {
		return false
	}

	return !target.Same(source) || target.Kind != analyze.TypeKindRecord
}

func initializer(target *analyze.TypeInfo, self, usePassthroughs bool, passByParam map[string]string) Initializer {
	switch {
	case usePassthroughs:
		ini := Initializer{Kind: InitializerPrimary}
		for _, param := range target.PrimaryParams {
			ini.Args = append(ini.Args, CtorArg{Param: param, Passthrough: passByParam[param]})
		}

		return ini
	case target.IsValueType():
		return Initializer{Kind: InitializerDefault}
	case !self && target.HasDefaultConstructor:
		return Initializer{Kind: InitializerDefault}
	default:
		return Initializer{Kind: InitializerNone}
	}
}

// pairs returns the members written by the method, each with the member its
// value is read from.
func (p *Planner) pairs(cfg ModeConfig, target, source *analyze.TypeInfo, self bool) []match.Pair {
	own := match.CollectOptions{IncludeNonPublic: true, IncludeInitOnly: cfg.IsConstructor()}

	switch {
	case self:
		return match.SelfPairs(p.collector.Collect(target, own))
	case cfg.Swap:
		// Counted modes read the foreign value before writing it.
		write := p.collector.Collect(source, match.CollectOptions{
			ExternalWrite: true,
			ExternalRead:  cfg.Counted(),
		})
		read := p.collector.Collect(target, match.CollectOptions{
			IncludeNonPublic: true,
			IncludeReadOnly:  true,
			IncludeInitOnly:  true,
		})

		return match.Pairs(write, read)
	default:
		return p.collector.MatchPairs(p.collector.Collect(target, own), source)
	}
}

func newStep(cfg ModeConfig, pair match.Pair) MemberStep {
	step := MemberStep{
		Member:     pair.Write.Name,
		ReadMember: pair.Read.Name,
		Type:       pair.Write.Type,
		Null:       NullHandlingFor(pair.Write.Type),
		Transform:  TransformName(cfg.BaseName, pair.Write.Name),
	}

	if cfg.Swap {
		step.Write = "target." + pair.Write.Name
		step.Read = "this." + pair.Read.Name
		step.Current = "target_" + pair.Write.Name
		step.Incoming = "this_" + pair.Write.Name
	} else {
		step.Write = "this." + pair.Write.Name
		step.Read = "source." + pair.Read.Name
		step.Current = "this_" + pair.Write.Name
		step.Incoming = "source_" + pair.Write.Name
	}

	return step
}

// TypeName renders t as seen from inside owner: the plain name for the owner
// itself and the qualified name for every other type.
func TypeName(t, owner *analyze.TypeInfo) string {
	if t.Same(owner) {
		return t.ID.Name
	}

	return t.ID.String()
}

// StepNames returns the member names of a method, for logs and tests.
func (m *MethodPlan) StepNames() []string {
	out := make([]string, len(m.Steps))
	for i, s := range m.Steps {
		out[i] = s.Member
	}

	return out
}

// String returns "InitFrom(Ns.Source)".
func (m *MethodPlan) String() string {
	var b strings.Builder

	b.WriteString(m.Config.BaseName)
	b.WriteString("(")

	if m.ByRef {
		b.WriteString("ref ")
	}

	b.WriteString(m.Source)
	b.WriteString(")")

	return b.String()
}
