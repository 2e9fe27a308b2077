package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestMapLevelToZapLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"debug level", LevelDebug, "debug"},
		{"info level", LevelInfo, "info"},
		{"progress level", LevelProgress, "info"},
		{"minimal level", LevelMinimal, "warn"},
		{"warn level", LevelWarn, "warn"},
		{"error level", LevelError, "error"},
		{"unknown level defaults to info", LogLevel("unknown"), "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zapLevel := mapLevelToZapLevel(tt.level)
			if zapLevel.String() != tt.expected {
				t.Errorf("mapLevelToZapLevel() = %v, want %v", zapLevel.String(), tt.expected)
			}
		})
	}
}

func TestInitWritesStructuredFields(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelInfo, Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("pass complete", "accounts", 3)
	Debug("hidden at info level")
	_ = Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["M"] != "pass complete" {
		t.Errorf("message = %v, want %q", entry["M"], "pass complete")
	}
	if entry["accounts"] != float64(3) {
		t.Errorf("accounts = %v, want 3", entry["accounts"])
	}
}

func TestLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Format: "console", Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("suppressed")
	Progress("suppressed too")
	Warn("kept")
	_ = Sync()

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info output leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn output missing: %q", out)
	}
}

func TestGetInitializesDefault(t *testing.T) {
	Reset()
	defer Reset()

	if Get() == nil {
		t.Fatal("Get() returned nil logger")
	}
	if With("k", "v") == nil {
		t.Fatal("With() returned nil logger")
	}
}
