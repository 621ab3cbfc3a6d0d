package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/ritzau/cycle-detector/pkg/pubsub"
)

// Event types published on pubsub.TopicDetections
const (
	EventReport = "report"
	EventError  = "error"
)

// Update is the payload published after every run
type Update struct {
	Source string  `json:"source"`
	Reason string  `json:"reason"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Runner analyzes a matrix file on demand and publishes each outcome
type Runner struct {
	path      string
	opts      Options
	publisher pubsub.Publisher // optional
	mu        sync.Mutex       // Prevent concurrent analysis runs
}

// NewRunner creates a runner for the matrix file at path. publisher may be nil.
func NewRunner(path string, opts Options, publisher pubsub.Publisher) *Runner {
	return &Runner{
		path:      path,
		opts:      opts,
		publisher: publisher,
	}
}

// Path returns the file the runner analyzes
func (r *Runner) Path() string {
	return r.path
}

// Run reloads the file and analyzes it. reason is logged and published with the result.
func (r *Runner) Run(ctx context.Context, reason string) (Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	logging.Info("analyzing graph", "path", r.path, "reason", reason)

	m, err := adjacency.ParseFile(r.path)
	if err != nil {
		err = fmt.Errorf("loading %s: %w", r.path, err)
		r.publish(EventError, Update{Source: r.path, Reason: reason, Error: err.Error()})
		return Report{}, err
	}

	report, err := Analyze(filepath.Base(r.path), m, r.opts)
	if err != nil {
		r.publish(EventError, Update{Source: r.path, Reason: reason, Error: err.Error()})
		return Report{}, err
	}

	logging.Info("analysis complete",
		"path", r.path,
		"vertices", report.Vertices,
		"edges", report.Edges,
		"cyclic", report.Cyclic(),
	)
	r.publish(EventReport, Update{Source: r.path, Reason: reason, Report: &report})

	return report, nil
}

func (r *Runner) publish(eventType string, update Update) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(pubsub.TopicDetections, eventType, update); err != nil {
		logging.Warn("failed to publish detection update", "error", err)
	}
}
