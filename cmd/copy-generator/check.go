package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"copy-generator/internal/gen"
	"copy-generator/internal/pipeline"
)

// errDrift is returned by check when generated files are out of date. The
// report has already been printed.
var errDrift = errors.New("generated files are out of date")

func newCheckCmd(a *app) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report generated files that are missing, stale or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pipeline.LoadAndRun(cmd.Context(), a.cfg.Manifests, pipeline.FromConfig(a.cfg))
			if res != nil {
				a.report(res.Diagnostics)
			}

			if err != nil {
				return err
			}

			results, err := gen.Check(res.Files, a.cfg.Output, a.cfg.FileSuffix)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printCheck(out, results, showDiff, useColor(out))

			if gen.HasDrift(results) {
				return errDrift
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a line diff for changed files")

	return cmd
}

// useColor enables color only when writing to a terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printCheck(w io.Writer, results []gen.CheckResult, showDiff, colored bool) {
	paint := func(attr color.Attribute, s string) string {
		c := color.New(attr)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c.Sprint(s)
	}

	drift := 0

	for _, r := range results {
		var status string

		switch r.Status {
		case gen.StatusOK:
			status = paint(color.FgGreen, r.Status.String())
		case gen.StatusChanged:
			status = paint(color.FgYellow, r.Status.String())
		default:
			status = paint(color.FgRed, r.Status.String())
		}

		if r.Status != gen.StatusOK {
			drift++
		}

		fmt.Fprintf(w, "%-8s %s\n", status, r.Filename)

		if !showDiff || r.Diff == "" {
			continue
		}

		for _, line := range strings.SplitAfter(r.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				fmt.Fprint(w, paint(color.FgGreen, line))
			case strings.HasPrefix(line, "-"):
				fmt.Fprint(w, paint(color.FgRed, line))
			default:
				fmt.Fprint(w, line)
			}
		}
	}

	fmt.Fprintf(w, "%d of %d files need regeneration\n", drift, len(results))
}
