package samples

import (
	"testing"

	"github.com/ritzau/cycle-detector/pkg/cycles"
)

func TestSamples_ExpectedOutcome(t *testing.T) {
	want := map[string]bool{
		"four-cycle": true,
		"diamond":    false,
		"self-loop":  true,
		"empty":      false,
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(all))
	}

	for _, s := range all {
		for _, alg := range cycles.Algorithms() {
			d, err := cycles.New(alg, s.Matrix)
			if err != nil {
				t.Fatalf("cycles.New(%s) error = %v", alg, err)
			}
			got, err := d.DetectCycle()
			if err != nil {
				t.Fatalf("%s/%s: DetectCycle() error = %v", s.Name, alg, err)
			}
			if got.Cyclic != want[s.Name] {
				t.Errorf("%s/%s: cyclic = %v, want %v", s.Name, alg, got.Cyclic, want[s.Name])
			}
		}
	}
}

func TestFind(t *testing.T) {
	s, ok := Find("self-loop")
	if !ok {
		t.Fatal("self-loop sample not found")
	}
	if s.Matrix.Size() != 3 {
		t.Errorf("Expected 3 vertices, got %d", s.Matrix.Size())
	}

	if _, ok := Find("nope"); ok {
		t.Error("Expected unknown sample to be missing")
	}
}
