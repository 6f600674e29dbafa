package store

import (
	"path/filepath"
	"strings"
	"testing"

	"cheesechase/game"
)

func sampleRows(t *testing.T) []RunRow {
	t.Helper()
	stateJSON, err := EncodeStateJSON(game.NewLevel3().Export())
	if err != nil {
		t.Fatalf("encode state: %v", err)
	}
	return []RunRow{
		{
			RunID:    "run-1",
			Seed:     42,
			Tokens:   TokensToRow([]int{0, 0, 110, 105, 3, 112}),
			Score:    120,
			Steps:    18,
			Win:      false,
			State:    stateJSON,
			Features: []float32{1, 2, 3},
			Source:   "greedy",
		},
		{
			RunID:  "run-2",
			Seed:   43,
			Tokens: TokensToRow([]int{1, 112}),
			Score:  -500,
			Steps:  1,
			Caught: true,
			State:  stateJSON,
			Source: "greedy",
		},
	}
}

func TestWriteRunsBatchAtomic(t *testing.T) {
	dir := t.TempDir()
	rows := sampleRows(t)

	path, err := WriteRunsBatchAtomic(dir, rows)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("batch written to %s, want directly under %s", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "runs_") {
		t.Fatalf("unexpected batch name %s", filepath.Base(path))
	}

	got, err := ReadRunsParquet(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, want %d", len(got), len(rows))
	}
	if got[0].RunID != "run-1" || got[0].Score != 120 {
		t.Fatalf("row 0 = %+v", got[0])
	}
	if !got[1].Caught || got[1].Score != -500 {
		t.Fatalf("row 1 = %+v", got[1])
	}
	if len(got[0].Tokens) != 6 || got[0].Tokens[2] != 110 {
		t.Fatalf("tokens = %v", got[0].Tokens)
	}
}

func TestBatchWriterFinalize(t *testing.T) {
	dir := t.TempDir()

	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.WriteRows(sampleRows(t)); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	if w.BufferedRows() != 2 {
		t.Fatalf("buffered = %d, want 2", w.BufferedRows())
	}

	path, rows, err := w.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rows != 2 || path == "" {
		t.Fatalf("finalize returned path=%q rows=%d", path, rows)
	}

	got, err := ReadRunsParquet(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d rows, want 2", len(got))
	}
}

func TestBatchWriterEmptyFinalize(t *testing.T) {
	w, err := NewBatchWriter(t.TempDir())
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	path, rows, err := w.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if path != "" || rows != 0 {
		t.Fatalf("empty writer produced path=%q rows=%d", path, rows)
	}
}
