package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Snapshot wraps a Record with versioning metadata for on-disk persistence.
type Snapshot struct {
	Version int    `json:"version"`
	Record  Record `json:"record"`
}

const snapshotVersion = 1

// SaveSnapshot writes the state record as zstd-compressed JSON. The file is
// written to a temp path and renamed so readers never observe a partial
// snapshot.
func SaveSnapshot(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open snapshot tmp: %w", err)
	}

	bw := bufio.NewWriter(f)
	zw, err := zstd.NewWriter(bw)
	if err != nil {
		f.Close()
		return fmt.Errorf("zstd writer: %w", err)
	}

	enc := json.NewEncoder(zw)
	if err := enc.Encode(Snapshot{Version: snapshotVersion, Record: s.Export()}); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close zstd: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot and imports it into
// a fresh state.
func LoadSnapshot(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	s := New()
	if err := s.Import(snap.Record); err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}
	return s, nil
}
