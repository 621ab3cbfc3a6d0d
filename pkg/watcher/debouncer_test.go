package watcher

import (
	"context"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan ChangeEvent, within time.Duration) ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return ev
	case <-time.After(within):
		t.Fatalf("no event within %s", within)
	}
	return ChangeEvent{}
}

func TestDebouncerBatchesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 50*time.Millisecond, time.Second)
	d.Start(ctx)

	for _, p := range []string{"a", "b", "c"} {
		input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{p}}
	}

	ev := receive(t, d.Output(), time.Second)
	if ev.Type != ChangeTypeWrite {
		t.Errorf("Expected write event, got %v", ev.Type)
	}
	if len(ev.Paths) != 3 {
		t.Errorf("Expected 3 batched paths, got %v", ev.Paths)
	}

	select {
	case extra := <-d.Output():
		t.Errorf("Unexpected extra event: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerOrdersTypes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 50*time.Millisecond, time.Second)
	d.Start(ctx)

	input <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{"old"}}
	input <- ChangeEvent{Type: ChangeTypeCreate, Paths: []string{"new"}}

	first := receive(t, d.Output(), time.Second)
	second := receive(t, d.Output(), time.Second)
	if first.Type != ChangeTypeCreate || second.Type != ChangeTypeRemove {
		t.Errorf("Expected create then remove, got %v then %v", first.Type, second.Type)
	}
}

func TestDebouncerKeepsLatestChangePerPath(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 50*time.Millisecond, time.Second)
	d.Start(ctx)

	// An editor saving by rename: the file disappears, then comes back
	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"m"}}
	input <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{"m"}}
	input <- ChangeEvent{Type: ChangeTypeCreate, Paths: []string{"m"}}

	ev := receive(t, d.Output(), time.Second)
	if ev.Type != ChangeTypeCreate || len(ev.Paths) != 1 {
		t.Errorf("Expected a single create for m, got %v %v", ev.Type, ev.Paths)
	}

	select {
	case extra := <-d.Output():
		t.Errorf("Unexpected extra event: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestChangeSetEvents(t *testing.T) {
	c := newChangeSet()
	if !c.empty() {
		t.Fatal("Expected a new change set to be empty")
	}

	c.add(ChangeTypeWrite, "a", "b")
	c.add(ChangeTypeRemove, "a")
	c.add(ChangeTypeCreate, "c")

	events := c.events(time.Now())
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %+v", events)
	}
	want := []struct {
		t    ChangeType
		path string
	}{
		{ChangeTypeCreate, "c"},
		{ChangeTypeWrite, "b"},
		{ChangeTypeRemove, "a"},
	}
	for i, w := range want {
		if events[i].Type != w.t || len(events[i].Paths) != 1 || events[i].Paths[0] != w.path {
			t.Errorf("event %d = %v %v, want %v [%s]", i, events[i].Type, events[i].Paths, w.t, w.path)
		}
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 200*time.Millisecond, 300*time.Millisecond)
	d.Start(ctx)

	// Keep the quiet period from ever expiring
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"m"}}:
				case <-stop:
					return
				}
			}
		}
	}()
	defer close(stop)

	start := time.Now()
	receive(t, d.Output(), 2*time.Second)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected flush by max wait, took %s", elapsed)
	}
}

func TestDebouncerFlushesOnInputClose(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)
	d.Start(context.Background())

	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"m"}}
	close(input)

	ev := receive(t, d.Output(), time.Second)
	if ev.Type != ChangeTypeWrite {
		t.Errorf("Expected write event, got %v", ev.Type)
	}
	if _, ok := <-d.Output(); ok {
		t.Error("Expected output to close after input closed")
	}
}

func TestAnalyzeChanges(t *testing.T) {
	tests := []struct {
		name        string
		changeType  ChangeType
		wantRerun   bool
		wantRemoved bool
	}{
		{"create", ChangeTypeCreate, true, false},
		{"write", ChangeTypeWrite, true, false},
		{"remove", ChangeTypeRemove, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AnalyzeChanges(ChangeEvent{Type: tt.changeType, Paths: []string{"m.txt"}})
			if a.Reanalyze != tt.wantRerun {
				t.Errorf("Reanalyze = %v, want %v", a.Reanalyze, tt.wantRerun)
			}
			if a.FileRemoved != tt.wantRemoved {
				t.Errorf("FileRemoved = %v, want %v", a.FileRemoved, tt.wantRemoved)
			}
			if a.Reason == "" {
				t.Error("Expected a reason")
			}
		})
	}
}
