// Package store persists evaluated runs as parquet batches.
//
// Files are always written into a tmp/ subdirectory first and renamed into
// place, so readers polling the output directory never observe a partially
// written file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"cheesechase/game"
)

// RunRow is one evaluated program run.
//
// State is the starting game state the program was scored against, as a
// self-contained JSON record. It is intentionally model-agnostic: trainers
// can featurize it however they like. Features is the precomputed flat
// vector for trainers that want to skip featurization.
type RunRow struct {
	RunID    string    `parquet:"run_id,dict"`
	Seed     int64     `parquet:"seed"`
	Tokens   []int32   `parquet:"tokens"`
	Score    int32     `parquet:"score"`
	Steps    int32     `parquet:"steps"`
	Win      bool      `parquet:"win"`
	Caught   bool      `parquet:"caught"`
	State    []byte    `parquet:"state,zstd"`
	Features []float32 `parquet:"features"`
	Source   string    `parquet:"source,dict"`
}

const schemaName = "run_row_v1"

// EncodeStateJSON serializes a record for RunRow.State.
func EncodeStateJSON(rec game.Record) ([]byte, error) {
	return json.Marshal(rec)
}

// TokensToRow converts a token program for RunRow.Tokens.
func TokensToRow(tokens []int) []int32 {
	out := make([]int32, len(tokens))
	for i, t := range tokens {
		out[i] = int32(t)
	}
	return out
}

// WriteRunsParquet writes rows to outPath via a temp file and atomic rename.
func WriteRunsParquet(outPath string, rows []RunRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("state"),
		parquet.KeyValueMetadata("schema", schemaName),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteRunsBatchAtomic writes rows into a fresh timestamped file under
// outDir and returns its final path.
func WriteRunsBatchAtomic(outDir string, rows []RunRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("runs_%d.parquet", time.Now().UnixNano())
	outPath := filepath.Join(outDir, name)
	if err := WriteRunsParquet(outPath, rows); err != nil {
		return "", err
	}
	return outPath, nil
}

// ReadRunsParquet loads every row from a parquet file, mostly for tests and
// the stats tooling.
func ReadRunsParquet(path string) ([]RunRow, error) {
	rows, err := parquet.ReadFile[RunRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
