package watcher

import (
	"context"
	"time"

	"github.com/ritzau/cycle-detector/pkg/logging"
)

// Debouncer batches rapid file system events to avoid excessive re-analysis.
// A batch is emitted after quietPeriod without new events, or maxWait after its
// first event, whichever comes first.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run processes events and applies debouncing logic
func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quietTimer  = time.NewTimer(d.quietPeriod)
		maxTimer    = time.NewTimer(d.maxWait)
		quiet       <-chan time.Time
		deadline    <-chan time.Time
		accumulated = newChangeSet()
		eventCount  int
	)
	quietTimer.Stop()
	maxTimer.Stop()

	flush := func() {
		quietTimer.Stop()
		maxTimer.Stop()
		quiet, deadline = nil, nil

		if accumulated.empty() {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount)

		for _, ev := range accumulated.events(time.Now()) {
			select {
			case d.output <- ev:
			case <-ctx.Done():
				return
			}
		}

		accumulated = newChangeSet()
		eventCount = 0
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			accumulated.add(event.Type, event.Paths...)
			eventCount++

			// Every event restarts the quiet period
			quietTimer.Reset(d.quietPeriod)
			quiet = quietTimer.C

			// The first event of a batch starts the max wait
			if deadline == nil {
				maxTimer.Reset(d.maxWait)
				deadline = maxTimer.C
			}

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
