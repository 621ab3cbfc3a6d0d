package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/config"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/spf13/cobra"
)

func newDetectCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [FILE|-]",
		Short: "Detect a cycle in an adjacency matrix",
		Long: `Reads an adjacency matrix and reports whether the graph has a cycle.

The matrix is read from FILE, or from stdin when FILE is "-" or missing.
Text input is the vertex count followed by the 0/1 cells; JSON input is
either [[0,1],[1,0]] or {"matrix": [[0,1],[1,0]]}.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg

			algorithms, err := cfg.Algorithms()
			if err != nil {
				return err
			}
			opts := analysis.Options{
				Algorithms:    algorithms,
				Components:    cfg.Components,
				IncludeMatrix: true,
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			if cfg.Watch {
				if cfg.Interactive || path == "-" {
					return fmt.Errorf("--watch needs a matrix file")
				}
				return watchFile(cmd.Context(), path, cfg.Debounce, opts, func(r analysis.Report) {
					if err := render(cmd.OutOrStdout(), cfg.Format, r); err != nil {
						logging.Error("failed to write report", "error", err)
					}
				})
			}

			// Keep stdout parseable when it carries JSON
			prompts := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				prompts = cmd.ErrOrStderr()
			}

			name, m, err := readMatrix(cmd, path, cfg.Interactive, prompts)
			if err != nil {
				return err
			}

			report, err := analysis.Analyze(name, m, opts)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), cfg.Format, report)
		},
	}

	cmd.Flags().String("algorithm", "both", "algorithm to run: kahn, dfs or both")
	cmd.Flags().String("format", "text", "output format: text or json")
	cmd.Flags().Bool("components", false, "also list the cyclic strongly connected components")
	cmd.Flags().Bool("interactive", false, "prompt for the matrix on the terminal")
	cmd.Flags().Bool("watch", false, "re-run detection whenever FILE changes")

	return cmd
}

// readMatrix loads the graph from the prompt, stdin or a file. Prompts go to prompts.
func readMatrix(cmd *cobra.Command, path string, interactive bool, prompts io.Writer) (string, *adjacency.Matrix, error) {
	switch {
	case interactive:
		m, err := adjacency.ReadInteractive(cmd.InOrStdin(), prompts)
		if err != nil {
			return "", nil, fmt.Errorf("reading matrix: %w", err)
		}
		return "interactive", m, nil

	case path == "-":
		m, err := adjacency.Parse(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", m, nil
	}

	m, err := adjacency.ParseFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return filepath.Base(path), m, nil
}
