package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"copy-generator/internal/config"
	"copy-generator/internal/diagnostic"
	"copy-generator/internal/logger"
)

// app holds the state shared by all commands.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "copy-generator",
		Short:         "Generate C# copy constructors, copiers and updaters from type manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default ./copygen.yaml when present)")
	flags.StringSliceP("manifest", "m", nil, "manifest file or doublestar pattern (repeatable)")
	flags.StringP("output", "o", "", "output directory")
	flags.Int("parallelism", 0, "number of targets rendered at once (0 = number of CPUs)")
	flags.Bool("fluent", false, "make copy methods return the receiver")
	flags.StringSlice("exclude", nil, `"Namespace.Type.Member" patterns never copied`)
	flags.String("log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "log as JSON")

	bindings := map[string]string{
		"manifests":   "manifest",
		"output":      "output",
		"parallelism": "parallelism",
		"fluent":      "fluent",
		"exclude":     "exclude",
		"log.level":   "log-level",
		"log.json":    "log-json",
	}

	for key, flag := range bindings {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newGenCmd(a),
		newCheckCmd(a),
		newPlanCmd(a),
	)

	return root
}

// init loads the configuration and installs the logger in the command context.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.Log.JSON,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	})

	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))

	return nil
}

// report logs every diagnostic at its severity.
func (a *app) report(diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, d := range diags.All() {
		kv := []any{"code", d.Code}
		if d.Source != "" {
			kv = append(kv, "source", d.Source)
		}

		if d.Type != "" {
			kv = append(kv, "type", d.Type)
		}

		if d.Member != "" {
			kv = append(kv, "member", d.Member)
		}

		switch d.Severity {
		case diagnostic.DiagnosticError:
			a.log.Error(d.Message, kv...)
		case diagnostic.DiagnosticWarning:
			a.log.Warn(d.Message, kv...)
		default:
			a.log.Debug(d.Message, kv...)
		}
	}
}
