package game

import (
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewLevel3()
	s.Score = 777
	s.CrazyCheese[1].Active = false

	path := filepath.Join(t.TempDir(), "sub", "state.json.zst")
	if err := SaveSnapshot(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Score != s.Score {
		t.Fatalf("score = %d, want %d", loaded.Score, s.Score)
	}
	if loaded.Wall != s.Wall || loaded.Cheese != s.Cheese {
		t.Fatal("layers diverged")
	}
	if loaded.CrazyCheese[1].Active {
		t.Fatal("collected pickup came back")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.zst")); err == nil {
		t.Fatal("missing snapshot must fail")
	}
}
