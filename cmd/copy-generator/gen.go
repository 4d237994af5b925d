package main

import (
	"github.com/spf13/cobra"

	"copy-generator/internal/gen"
	"copy-generator/internal/pipeline"
)

func newGenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate copy methods into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pipeline.LoadAndRun(cmd.Context(), a.cfg.Manifests, pipeline.FromConfig(a.cfg))
			if res != nil {
				a.report(res.Diagnostics)
			}

			if err != nil {
				return err
			}

			written, err := gen.WriteFiles(res.Files, a.cfg.Output)
			if err != nil {
				return err
			}

			a.log.Info("generation complete",
				"output", a.cfg.Output,
				"files", len(res.Files),
				"written", written,
			)

			return nil
		},
	}
}
