// Package pipeline runs a generation pass: manifests are validated and built
// into a type graph, attributes are resolved into requests, requests are
// planned and plans are rendered.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"copy-generator/internal/analyze"
	"copy-generator/internal/config"
	"copy-generator/internal/diagnostic"
	"copy-generator/internal/gen"
	"copy-generator/internal/logger"
	"copy-generator/internal/manifest"
	"copy-generator/internal/plan"
)

// ErrInvalidManifest is returned when manifests produce error diagnostics.
var ErrInvalidManifest = errors.New("invalid manifest")

// ExcludeFunc reports whether a member of a type must never be copied.
type ExcludeFunc func(qualifiedType, member string) bool

// Options configures a generation pass.
type Options struct {
	// Parallelism bounds concurrent rendering.
	Parallelism int
	// FileSuffix is the suffix of generated file names.
	FileSuffix string
	// ModeConfigs override the default mode configurations.
	ModeConfigs []plan.ModeConfig
	// Exclude drops matching members from every method.
	Exclude ExcludeFunc
	// Formatters render method signatures and comments.
	Formatters gen.Formatters
}

// FromConfig derives pipeline options from the loaded configuration.
func FromConfig(cfg *config.Config) Options {
	opts := Options{
		Parallelism: cfg.Parallelism,
		FileSuffix:  cfg.FileSuffix,
		ModeConfigs: cfg.ModeConfigs(),
	}

	if len(cfg.Exclude) > 0 {
		opts.Exclude = cfg.Excluded
	}

	return opts
}

// Result is the outcome of a pass. Fields are filled up to the stage that
// was reached.
type Result struct {
	Graph       *analyze.TypeGraph
	Requests    []plan.Request
	Plans       []plan.TargetPlan
	Files       []gen.GeneratedFile
	Diagnostics *diagnostic.Diagnostics
}

// Plan validates and builds the manifests, resolves requests and plans every
// target. It returns ErrInvalidManifest, with the diagnostics in the result,
// when any manifest has errors.
func Plan(ctx context.Context, files []*manifest.File, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	res := &Result{Diagnostics: &diagnostic.Diagnostics{}}

	for _, mf := range files {
		res.Diagnostics.Merge(*manifest.Validate(mf))
	}

	if res.Diagnostics.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrInvalidManifest, res.Diagnostics.Error())
	}

	graph, diags := manifest.Build(files...)
	res.Graph = graph
	res.Diagnostics.Merge(*diags)

	if res.Diagnostics.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrInvalidManifest, res.Diagnostics.Error())
	}

	reqs, diags := plan.ResolveRequests(graph)
	res.Requests = reqs
	res.Diagnostics.Merge(*diags)

	planner := plan.NewPlanner(plannerOptions(opts, log)...)
	res.Plans = planner.PlanAll(reqs)

	log.Info("planned targets",
		"types", len(graph.Types),
		"requests", len(reqs),
		"targets", len(res.Plans),
	)

	return res, nil
}

// Run plans and renders every target.
func Run(ctx context.Context, files []*manifest.File, opts Options) (*Result, error) {
	res, err := Plan(ctx, files, opts)
	if err != nil {
		return res, err
	}

	cfg := gen.DefaultGeneratorConfig()
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}

	if opts.FileSuffix != "" {
		cfg.FileSuffix = opts.FileSuffix
	}

	if opts.Formatters != nil {
		cfg.Formatters = opts.Formatters
	}

	res.Files, err = gen.NewGenerator(cfg).Generate(ctx, res.Plans)
	if err != nil {
		return res, fmt.Errorf("rendering: %w", err)
	}

	logger.FromContext(ctx).Info("rendered files", "files", len(res.Files))

	return res, nil
}

// LoadAndRun loads the manifests matching patterns and runs a pass.
func LoadAndRun(ctx context.Context, patterns []string, opts Options) (*Result, error) {
	files, err := manifest.LoadAll(patterns)
	if err != nil {
		return nil, err
	}

	return Run(ctx, files, opts)
}

func plannerOptions(opts Options, log logger.Logger) []plan.Option {
	out := []plan.Option{plan.WithLogger(log)}

	for _, cfg := range opts.ModeConfigs {
		out = append(out, plan.WithModeConfig(cfg))
	}

	if opts.Exclude != nil {
		out = append(out, plan.WithInterceptor(plan.Interceptor{
			Step: func(m *plan.MethodPlan, step *plan.MemberStep) bool {
				return !excluded(opts.Exclude, m, step)
			},
		}))
	}

	return out
}

// excluded matches the member on both sides of a step: the owning type's
// member and the foreign type's member.
func excluded(exclude ExcludeFunc, m *plan.MethodPlan, step *plan.MemberStep) bool {
	ownMember, foreignMember := step.Member, step.ReadMember
	if m.Config.Swap {
		ownMember, foreignMember = step.ReadMember, step.Member
	}

	if m.TargetType != nil && exclude(m.TargetType.ID.String(), ownMember) {
		return true
	}

	return m.SourceType != nil && exclude(m.SourceType.ID.String(), foreignMember)
}
