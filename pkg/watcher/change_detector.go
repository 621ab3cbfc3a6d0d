package watcher

import "time"

// ChangeAnalysis describes what a batch of changes means for the watched graph
type ChangeAnalysis struct {
	Reanalyze    bool   // the file has new content that should be detected again
	FileRemoved  bool   // the file is gone; keep the last result until it returns
	Reason       string // human-readable cause, e.g. "file written"
	ChangedFiles []string
}

// AnalyzeChanges determines whether a change event warrants another detection run
func AnalyzeChanges(event ChangeEvent) *ChangeAnalysis {
	analysis := &ChangeAnalysis{
		ChangedFiles: event.Paths,
	}

	switch event.Type {
	case ChangeTypeCreate:
		// Editors that save by rename show up as a create
		analysis.Reanalyze = true
		analysis.Reason = "file created"

	case ChangeTypeWrite:
		analysis.Reanalyze = true
		analysis.Reason = "file written"

	case ChangeTypeRemove:
		analysis.FileRemoved = true
		analysis.Reason = "file removed"
	}

	return analysis
}

// changeSet accumulates changes, keeping only the latest type seen for each path.
// A save that renames the file away and recreates it ends up as a single create.
type changeSet struct {
	latest map[string]ChangeType
	order  []string // paths in first-seen order
}

func newChangeSet() *changeSet {
	return &changeSet{latest: make(map[string]ChangeType)}
}

func (c *changeSet) add(t ChangeType, paths ...string) {
	for _, p := range paths {
		if _, seen := c.latest[p]; !seen {
			c.order = append(c.order, p)
		}
		c.latest[p] = t
	}
}

func (c *changeSet) empty() bool {
	return len(c.order) == 0
}

// events groups the paths by their latest type: creation, then writes, then removal
func (c *changeSet) events(now time.Time) []ChangeEvent {
	var events []ChangeEvent
	for _, t := range []ChangeType{ChangeTypeCreate, ChangeTypeWrite, ChangeTypeRemove} {
		var paths []string
		for _, p := range c.order {
			if c.latest[p] == t {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			events = append(events, ChangeEvent{Type: t, Paths: paths, Timestamp: now})
		}
	}
	return events
}
