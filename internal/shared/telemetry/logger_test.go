package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWriteStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	prevNow := now
	now = func() time.Time { return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC) }
	defer func() { now = prevNow }()

	Error("generation.stage", map[string]any{"stage": "render", "err": errors.New("boom"), "msg": "ignored"})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if entry["level"] != "error" || entry["msg"] != "generation.stage" {
		t.Fatalf("unexpected level/msg: %v", entry)
	}
	if entry["ts"] != "2025-06-01T12:00:00Z" {
		t.Fatalf("unexpected ts %v", entry["ts"])
	}
	if entry["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", entry["err"])
	}
}

func TestUnmarshalableFieldFallsBack(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("bad", map[string]any{"ch": make(chan int)})
	if !strings.Contains(buf.String(), "logger marshal failed") {
		t.Fatalf("expected fallback line, got %q", buf.String())
	}
}
