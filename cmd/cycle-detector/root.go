package main

import (
	"github.com/ritzau/cycle-detector/pkg/config"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/spf13/cobra"
)

// rootFlags carries state shared by every subcommand
type rootFlags struct {
	configPath string
	cfg        *config.Config // loaded before any subcommand runs
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "cycle-detector",
		Short: "Detect cycles in directed graphs given as adjacency matrices",
		Long: `cycle-detector finds a cycle in a directed graph using Kahn's algorithm,
a depth-first search, or both, and prints the cycle as a closed walk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	skipConfig(cmd, "config")
	pf.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pf.String("verbosity", "", "log level: trace, debug, info, warn, error")
	pf.Bool("log-json", false, "write logs as JSON")

	cmd.AddCommand(newDetectCmd(flags))
	cmd.AddCommand(newDemoCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load resolves configuration for the command about to run and sets up logging
func (f *rootFlags) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), f.configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return err
	}
	logging.Configure(cmd.ErrOrStderr(), level, cfg.Log.JSON)

	f.cfg = cfg
	return nil
}

// skipConfig keeps a flag out of the config layers; the command reads it directly
func skipConfig(cmd *cobra.Command, name string) {
	flags := cmd.PersistentFlags()
	if flags.Lookup(name) == nil {
		flags = cmd.Flags()
	}
	_ = flags.SetAnnotation(name, config.SkipAnnotation, []string{"true"})
}
