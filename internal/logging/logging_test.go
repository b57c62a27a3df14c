package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: JSONFormat, Level: WarnLevel, Output: &buf})

	logger.Debug("debug msg", nil)
	logger.Info("info msg", nil)
	logger.Warn("warn msg", nil)
	logger.Error("error msg", nil)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("messages below the level leaked through: %q", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("messages at or above the level missing: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: JSONFormat, Level: DebugLevel, Output: &buf})

	logger.Info("snapshot built", map[string]interface{}{"path": "A.java", "pruned": true})

	var e struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not valid JSON: %v: %q", err, buf.String())
	}
	if e.Level != "info" {
		t.Errorf("level = %q, want info", e.Level)
	}
	if e.Message != "snapshot built" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Fields["path"] != "A.java" {
		t.Errorf("fields[path] = %v", e.Fields["path"])
	}
}

func TestNamedComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: JSONFormat, Level: DebugLevel, Output: &buf})

	logger.Named("focus").Info("hello", nil)

	if !strings.Contains(buf.String(), `"component":"focus"`) {
		t.Errorf("component missing: %q", buf.String())
	}

	// The parent stays untagged.
	buf.Reset()
	logger.Info("hello", nil)
	if strings.Contains(buf.String(), "component") {
		t.Errorf("parent logger picked up a component: %q", buf.String())
	}
}

func TestHumanFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: HumanFormat, Level: DebugLevel, Output: &buf})

	logger.Named("index").Warn("skipping file", map[string]interface{}{"path": "A.java"})

	out := buf.String()
	for _, want := range []string{"[warn]", "(index)", "skipping file", "path=A.java"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	logger := Discard()
	logger.Error("dropped", map[string]interface{}{"k": "v"})
}
