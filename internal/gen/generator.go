package gen

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"copy-generator/internal/logger"
	"copy-generator/internal/plan"
)

// DefaultFileSuffix is appended to the target name to form a file name.
const DefaultFileSuffix = ".g.cs"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Parallelism bounds the number of targets rendered at once. Zero or
	// less uses the number of CPUs.
	Parallelism int
	// FileSuffix is appended to "<Namespace>.<Name>".
	FileSuffix string
	// Formatters renders method signatures and comments.
	Formatters Formatters
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Parallelism: runtime.NumCPU(),
		FileSuffix:  DefaultFileSuffix,
		Formatters:  DefaultFormatters(),
	}
}

// Generator renders target plans into C# files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultFileSuffix
	}

	if config.Parallelism <= 0 {
		config.Parallelism = runtime.NumCPU()
	}

	if config.Formatters == nil {
		config.Formatters = DefaultFormatters()
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated C# source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "OneBarker.Samples.Bravo.g.cs").
	Filename string
	// Content is the rendered source.
	Content []byte
}

// Generate renders every plan concurrently. Files are returned ordered by
// file name; the first rendering error cancels the remaining work.
func (g *Generator) Generate(ctx context.Context, plans []plan.TargetPlan) ([]GeneratedFile, error) {
	log := logger.FromContext(ctx)
	files := make([]GeneratedFile, len(plans))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Parallelism)

	for i := range plans {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := g.Render(&plans[i])
			if err != nil {
				return fmt.Errorf("generating %s: %w", plans[i].QualifiedName(), err)
			}

			log.Debug("rendered target",
				"target", plans[i].QualifiedName(),
				"file", file.Filename,
				"methods", len(plans[i].Methods),
			)

			files[i] = file

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b GeneratedFile) int {
		return strings.Compare(a.Filename, b.Filename)
	})

	return files, nil
}

// Render renders a single target.
func (g *Generator) Render(tp *plan.TargetPlan) (GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, g.buildFileData(tp)); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template: %w", err)
	}

	return GeneratedFile{
		Filename: g.FileName(tp),
		Content:  buf.Bytes(),
	}, nil
}

// FileName returns "<Namespace>.<Name><suffix>", or "<Name><suffix>" in the
// global namespace.
func (g *Generator) FileName(tp *plan.TargetPlan) string {
	return tp.QualifiedName() + g.config.FileSuffix
}
