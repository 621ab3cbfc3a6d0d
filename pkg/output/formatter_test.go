package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/cycles"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestPrintMatrix(t *testing.T) {
	var buf bytes.Buffer
	PrintMatrix(&buf, adjacency.MustNew([][]int{{0, 1}, {1, 0}}))

	want := "Adjacency Matrix:\n0 1\n1 0\n"
	if buf.String() != want {
		t.Errorf("PrintMatrix() = %q, want %q", buf.String(), want)
	}
}

func TestPrintDetection(t *testing.T) {
	var buf bytes.Buffer
	PrintDetection(&buf, analysis.Detection{
		Algorithm: cycles.AlgorithmKahn,
		Result:    cycles.Cyclic([]int{2, 3, 2}),
	})
	PrintDetection(&buf, analysis.Detection{
		Algorithm: cycles.AlgorithmDFS,
		Result:    cycles.Acyclic(),
	})

	want := "[kahn] Graph is CYCLIC!\nCycle found: 2 -> 3 -> 2\n[dfs] Graph is ACYCLIC!\n"
	if buf.String() != want {
		t.Errorf("PrintDetection() = %q, want %q", buf.String(), want)
	}
}

func TestPrintReport(t *testing.T) {
	report := analysis.Report{
		Name:     "sample",
		Vertices: 1,
		Edges:    1,
		Matrix:   adjacency.MustNew([][]int{{1}}),
		Detections: []analysis.Detection{
			{Algorithm: cycles.AlgorithmDFS, Result: cycles.Cyclic([]int{0, 0})},
		},
		Components: [][]int{{0}},
	}

	var buf bytes.Buffer
	PrintReport(&buf, report)
	out := buf.String()

	for _, want := range []string{"sample", "Vertices: 1, edges: 1", "Adjacency Matrix:", "Cycle found: 0 -> 0", "Cyclic components: 1", "[0]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	report.Components = [][]int{}
	PrintReport(&buf, report)
	if !strings.Contains(buf.String(), "Cyclic components: none") {
		t.Errorf("Expected empty component summary, got:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	report := analysis.Report{
		Name:       "g",
		Vertices:   2,
		Detections: []analysis.Detection{{Algorithm: cycles.AlgorithmKahn, Result: cycles.Acyclic()}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []analysis.Report{report}); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 || decoded[0]["name"] != "g" {
		t.Errorf("Unexpected JSON: %s", buf.String())
	}
	if _, ok := decoded[0]["matrix"]; ok {
		t.Error("matrix should be omitted when not attached")
	}
	if !strings.Contains(buf.String(), `"cycle": []`) {
		t.Errorf("Expected an empty cycle array, got %s", buf.String())
	}
}
