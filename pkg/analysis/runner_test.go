package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/cycles"
	"github.com/ritzau/cycle-detector/pkg/pubsub"
)

func subscribe(t *testing.T, p pubsub.Publisher) pubsub.Subscription {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sub, err := p.Subscribe(ctx, pubsub.TopicDetections)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	return sub
}

func next(t *testing.T, sub pubsub.Subscription) pubsub.Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
	return pubsub.Event{}
}

func TestRunnerPublishesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte("2\n0 1\n1 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	publisher := pubsub.NewSSEPublisher()
	defer publisher.Close()
	sub := subscribe(t, publisher)

	runner := NewRunner(path, Options{Algorithms: cycles.Algorithms()}, publisher)
	report, err := runner.Run(context.Background(), "initial")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Name != "graph.txt" || !report.Cyclic() {
		t.Errorf("Unexpected report %+v", report)
	}

	ev := next(t, sub)
	if ev.Type != EventReport {
		t.Fatalf("Expected %q event, got %q", EventReport, ev.Type)
	}

	var update Update
	if err := json.Unmarshal(ev.Data, &update); err != nil {
		t.Fatal(err)
	}
	if update.Source != path || update.Reason != "initial" || update.Report == nil {
		t.Errorf("Unexpected update %+v", update)
	}
}

func TestRunnerPublishesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte("2\n0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	publisher := pubsub.NewSSEPublisher()
	defer publisher.Close()
	sub := subscribe(t, publisher)

	runner := NewRunner(path, Options{Algorithms: cycles.Algorithms()}, publisher)
	if _, err := runner.Run(context.Background(), "file written"); !errors.Is(err, adjacency.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	ev := next(t, sub)
	if ev.Type != EventError {
		t.Errorf("Expected %q event, got %q", EventError, ev.Type)
	}
}

func TestRunnerWithoutPublisher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte("[[0]]"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(path, Options{Algorithms: []cycles.Algorithm{cycles.AlgorithmDFS}}, nil)
	report, err := runner.Run(context.Background(), "initial")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Cyclic() {
		t.Error("Expected acyclic")
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner("unused", Options{}, nil)
	if _, err := runner.Run(ctx, "initial"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
