package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, nil))

	logger.Info("batch evaluated", "programs", 128, "win", true)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if payload["msg"] != "batch evaluated" {
		t.Fatalf("msg = %v", payload["msg"])
	}
	if payload["programs"] != float64(128) {
		t.Fatalf("programs = %v", payload["programs"])
	}
	if payload["level"] != "INFO" {
		t.Fatalf("level = %v", payload["level"])
	}
}

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record passed a warn filter: %s", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn record was dropped")
	}
}

func TestHandlerFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, nil)).
		WithGroup("run").
		With("id", "run-7")

	logger.Info("done", slog.Group("result", "score", 42))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload["run.id"] != "run-7" {
		t.Fatalf("run.id = %v", payload["run.id"])
	}
	if payload["run.result.score"] != float64(42) {
		t.Fatalf("run.result.score = %v", payload["run.result.score"])
	}
}
