package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/cycle-detector/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeCreate ChangeType = iota
	ChangeTypeWrite
	ChangeTypeRemove
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTypeCreate:
		return "create"
	case ChangeTypeWrite:
		return "write"
	case ChangeTypeRemove:
		return "remove"
	}
	return fmt.Sprintf("ChangeType(%d)", int(t))
}

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// batchWindow groups raw fsnotify events before they are emitted
const batchWindow = 100 * time.Millisecond

// FileWatcher watches a single matrix file for changes
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for the file at path. The file does not need to exist yet.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for file changes.
// The parent directory is watched because editors often replace files by renaming.
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("started watching matrix file", "path", fw.path)

	go fw.processEvents(ctx)

	return nil
}

// classify maps an fsnotify operation onto a change type; ok is false for changes we ignore
func classify(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeTypeRemove, true
	case op.Has(fsnotify.Create):
		return ChangeTypeCreate, true
	case op.Has(fsnotify.Write):
		return ChangeTypeWrite, true
	}
	return 0, false
}

// processEvents filters events down to the watched file and batches them by type
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)

	pending := newChangeSet()

	flushTimer := time.NewTimer(batchWindow)
	flushTimer.Stop()

	flush := func() {
		for _, ev := range pending.events(time.Now()) {
			select {
			case fw.events <- ev:
			case <-ctx.Done():
				return
			}
		}
		pending = newChangeSet()
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.path {
				continue
			}

			changeType, relevant := classify(event.Op)
			if !relevant {
				continue
			}

			logging.Trace("file event", "path", event.Name, "op", event.Op.String())
			pending.add(changeType, event.Name)
			flushTimer.Reset(batchWindow)

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Path returns the absolute path being watched
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Events returns the channel of change events. It is closed when watching stops.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	return fw.watcher.Close()
}
