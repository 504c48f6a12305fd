package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRegistryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posted.json")
	r, err := NewFileRegistry(path)
	if err != nil {
		t.Fatalf("missing file must open empty: %v", err)
	}
	posted, err := r.Contains(context.Background(), 2024020345)
	if err != nil || posted {
		t.Errorf("empty registry contains nothing, got posted=%v err=%v", posted, err)
	}
}

func TestFileRegistryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posted.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewFileRegistry(path)
	if err != nil {
		t.Fatalf("corrupt file must open empty: %v", err)
	}
	posted, _ := r.Contains(context.Background(), 1)
	if posted {
		t.Error("corrupt file must yield an empty set")
	}
}

func TestFileRegistryAddPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "posted.json")

	r, err := NewFileRegistry(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []int64{2024020345, 2024020346} {
		if err := r.Add(ctx, id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}

	// The file is rewritten on every Add, not just at close.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("registry file not written: %v", err)
	}
	var pf struct {
		PostedGameIDs []int64 `json:"postedGameIds"`
	}
	if err := json.Unmarshal(data, &pf); err != nil {
		t.Fatalf("registry file not valid JSON: %v", err)
	}
	if len(pf.PostedGameIDs) != 2 || pf.PostedGameIDs[0] != 2024020345 {
		t.Errorf("file contents = %v", pf.PostedGameIDs)
	}

	// A fresh open sees the recorded games.
	r2, err := NewFileRegistry(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int64{2024020345, 2024020346} {
		posted, err := r2.Contains(ctx, id)
		if err != nil || !posted {
			t.Errorf("Contains(%d) = %v, %v after reopen", id, posted, err)
		}
	}
	if posted, _ := r2.Contains(ctx, 2024020347); posted {
		t.Error("unrecorded game must not be contained")
	}
}

func TestFileRegistryAddIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "posted.json")
	r, err := NewFileRegistry(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Add(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(ctx, 7); err != nil {
		t.Fatal(err)
	}

	r2, _ := NewFileRegistry(path)
	data, _ := os.ReadFile(path)
	var pf struct {
		PostedGameIDs []int64 `json:"postedGameIds"`
	}
	json.Unmarshal(data, &pf)
	if len(pf.PostedGameIDs) != 1 {
		t.Errorf("duplicate Add must not duplicate entries: %v", pf.PostedGameIDs)
	}
	if posted, _ := r2.Contains(ctx, 7); !posted {
		t.Error("game 7 lost")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(Config{Backend: "etcd"}); err == nil {
		t.Error("unknown backend must error")
	}
}

func TestOpenDefaultsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posted.json")
	r, err := Open(Config{FilePath: path})
	if err != nil {
		t.Fatalf("Open default backend: %v", err)
	}
	defer r.Close()
	if _, ok := r.(*FileRegistry); !ok {
		t.Errorf("default backend = %T, want *FileRegistry", r)
	}
}
