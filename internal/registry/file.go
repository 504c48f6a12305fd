package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type postedFile struct {
	PostedGameIDs []int64 `json:"postedGameIds"`
}

// FileRegistry persists the posted-game set as a small JSON document.
// The set is loaded once at open; every Add rewrites the whole file so a
// crash mid-run never forgets a game that was already delivered.
type FileRegistry struct {
	path   string
	posted map[int64]bool
	order  []int64
}

// NewFileRegistry opens the registry file. A missing or corrupt file is
// treated as an empty set, never as a fatal error.
func NewFileRegistry(path string) (*FileRegistry, error) {
	r := &FileRegistry{
		path:   path,
		posted: make(map[int64]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[registry] ⚠️  Could not read %s, starting empty: %v", path, err)
		}
		return r, nil
	}

	var pf postedFile
	if err := json.Unmarshal(data, &pf); err != nil {
		log.Printf("[registry] ⚠️  Corrupt registry file %s, starting empty: %v", path, err)
		return r, nil
	}

	for _, id := range pf.PostedGameIDs {
		if !r.posted[id] {
			r.posted[id] = true
			r.order = append(r.order, id)
		}
	}
	return r, nil
}

func (r *FileRegistry) Contains(_ context.Context, gameID int64) (bool, error) {
	return r.posted[gameID], nil
}

func (r *FileRegistry) Add(_ context.Context, gameID int64) error {
	if r.posted[gameID] {
		return nil
	}
	r.posted[gameID] = true
	r.order = append(r.order, gameID)
	return r.flush()
}

func (r *FileRegistry) flush() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create registry dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(postedFile{PostedGameIDs: r.order}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func (r *FileRegistry) Close() error { return nil }
