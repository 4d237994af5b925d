package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"copy-generator/internal/manifest"
	"copy-generator/internal/pipeline"
	"copy-generator/internal/plan"
)

func newPlanCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the methods that would be generated, without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := manifest.LoadAll(a.cfg.Manifests)
			if err != nil {
				return err
			}

			res, err := pipeline.Plan(cmd.Context(), files, pipeline.FromConfig(a.cfg))
			if res != nil {
				a.report(res.Diagnostics)
			}

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if dump {
				cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				cfg.Fdump(out, plan.Summarize(res.Plans))

				return nil
			}

			data, err := plan.ExportYAML(res.Plans)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(out, string(data))

			return err
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the plan summaries as Go values instead of YAML")

	return cmd
}
