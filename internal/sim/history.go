package sim

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// History stores completed game results in order. With a path it
// persists the list as a JSON file across restarts; with an empty path
// it is memory-only.
type History struct {
	mu    sync.Mutex
	path  string
	games []Result
}

// NewHistory opens the history store. A missing or corrupt file starts
// an empty history rather than failing.
func NewHistory(path string) *History {
	h := &History{path: path}
	if path == "" {
		return h
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[sim] ⚠️  Could not read history %s, starting empty: %v", path, err)
		}
		return h
	}
	if err := json.Unmarshal(data, &h.games); err != nil {
		log.Printf("[sim] ⚠️  Corrupt history %s, starting empty: %v", path, err)
		h.games = nil
	}
	return h
}

// Add appends a result and persists the list.
func (h *History) Add(r Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games = append(h.games, r)
	return h.flush()
}

// All returns a copy of the stored results, oldest first.
func (h *History) All() []Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Result, len(h.games))
	copy(out, h.games)
	return out
}

// Clear discards all stored results.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.games = nil
	return h.flush()
}

func (h *History) flush() error {
	if h.path == "" {
		return nil
	}
	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(h.games, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0o644)
}
