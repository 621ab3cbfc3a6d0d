package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose int
		want    slog.Level
		wantErr bool
	}{
		{"", 0, slog.LevelInfo, false},
		{"", 1, slog.LevelDebug, false},
		{"", 3, LevelTrace, false},
		{"warn", 2, slog.LevelWarn, false},
		{"ERROR", 0, slog.LevelError, false},
		{"trace", 0, LevelTrace, false},
		{"loud", 0, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name, tt.verbose)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q, %d) error = %v, wantErr %v", tt.name, tt.verbose, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q, %d) = %v, want %v", tt.name, tt.verbose, got, tt.want)
		}
	}
}

func TestConfigureJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, slog.LevelInfo, true)
	defer Configure(os.Stderr, slog.LevelInfo, false)

	ctx := WithRequestID(context.Background(), "abc-123")
	InfoContext(ctx, "hello", "n", 1)

	out := buf.String()
	if !strings.Contains(out, `"requestID":"abc-123"`) {
		t.Errorf("Expected request ID in JSON output, got %q", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("Expected message in JSON output, got %q", out)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}
}
