package main

import (
	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/ritzau/cycle-detector/pkg/web"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var watchPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the detection HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			ctx := cmd.Context()

			server := web.NewServer()

			if watchPath != "" {
				algorithms, err := cfg.Algorithms()
				if err != nil {
					return err
				}
				opts := analysis.Options{Algorithms: algorithms, Components: true}

				events, err := startWatching(ctx, watchPath, cfg.Debounce)
				if err != nil {
					return err
				}
				runner := analysis.NewRunner(watchPath, opts, server.Publisher())
				go runOnChanges(ctx, runner, events, nil)

				logging.Info("publishing detections for watched file", "path", watchPath)
			}

			return server.Start(ctx, cfg.Port)
		},
	}

	cmd.Flags().Int("port", 8080, "port to listen on")
	cmd.Flags().String("algorithm", "both", "algorithm for watched files: kahn, dfs or both")
	cmd.Flags().StringVar(&watchPath, "watch", "", "matrix file to analyze and publish on every change")
	skipConfig(cmd, "watch")

	return cmd
}
