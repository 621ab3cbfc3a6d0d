package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/config"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/ritzau/cycle-detector/pkg/watcher"
)

// startWatching sets up the file watcher and debouncer for path
func startWatching(ctx context.Context, path string, debounce config.Debounce) (<-chan watcher.ChangeEvent, error) {
	fw, err := watcher.NewFileWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := fw.Start(ctx); err != nil {
		if stopErr := fw.Stop(); stopErr != nil {
			logging.Debug("failed to stop watcher", "path", path, "error", stopErr)
		}
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	debouncer := watcher.NewDebouncer(fw.Events(), debounce.Quiet, debounce.Max)
	debouncer.Start(ctx)

	return debouncer.Output(), nil
}

// runOnChanges analyzes once, then again after every batch of changes until events closes.
// Failed runs are logged and the loop keeps going so a broken save can be fixed.
func runOnChanges(ctx context.Context, runner *analysis.Runner, events <-chan watcher.ChangeEvent, onReport func(analysis.Report)) {
	run := func(reason string) {
		report, err := runner.Run(ctx, reason)
		if err != nil {
			if ctx.Err() == nil {
				logging.Error("analysis failed", "path", runner.Path(), "error", err)
			}
			return
		}
		if onReport != nil {
			onReport(report)
		}
	}

	run("initial")

	for event := range events {
		change := watcher.AnalyzeChanges(event)
		logging.Debug("matrix file changed", "reason", change.Reason, "files", change.ChangedFiles)

		if change.FileRemoved {
			// A rename-and-replace save may already have put the file back
			if _, err := os.Stat(runner.Path()); err != nil {
				logging.Warn("matrix file removed, waiting for it to come back", "path", runner.Path())
				continue
			}
			change.Reanalyze = true
			change.Reason = "file replaced"
		}
		if change.Reanalyze {
			run(change.Reason)
		}
	}
}

// watchFile blocks, re-running detection on path until ctx is cancelled
func watchFile(ctx context.Context, path string, debounce config.Debounce, opts analysis.Options, onReport func(analysis.Report)) error {
	events, err := startWatching(ctx, path, debounce)
	if err != nil {
		return err
	}

	runOnChanges(ctx, analysis.NewRunner(path, opts, nil), events, onReport)
	return nil
}
