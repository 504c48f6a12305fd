package sim

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PlayerStats holds one player's running totals.
type PlayerStats struct {
	Name      string `json:"name"`
	Goals     int    `json:"goals"`
	Assists   int    `json:"assists"`
	Penalties int    `json:"penalties"`
}

// StatBook accumulates player totals across simulated games. Every
// player from the configured teams is present from the start, so a
// player with no events still shows zeroed rows.
type StatBook struct {
	mu    sync.Mutex
	path  string
	order []string
	byName map[string]*PlayerStats
}

// NewStatBook seeds a book with every player on the given teams, then
// overlays any persisted totals from path.
func NewStatBook(path string, teams []TeamConfig) *StatBook {
	b := &StatBook{path: path, byName: make(map[string]*PlayerStats)}
	for _, t := range teams {
		for _, p := range t.Players {
			if _, ok := b.byName[p]; !ok {
				b.byName[p] = &PlayerStats{Name: p}
				b.order = append(b.order, p)
			}
		}
	}
	if path == "" {
		return b
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[sim] ⚠️  Could not read stats %s, starting fresh: %v", path, err)
		}
		return b
	}
	var saved []PlayerStats
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("[sim] ⚠️  Corrupt stats %s, starting fresh: %v", path, err)
		return b
	}
	for _, s := range saved {
		if row, ok := b.byName[s.Name]; ok {
			row.Goals = s.Goals
			row.Assists = s.Assists
			row.Penalties = s.Penalties
		}
	}
	return b
}

// Apply folds one game's events into the totals and persists them.
// Events naming unknown players are counted for nobody.
func (b *StatBook) Apply(events []Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ev := range events {
		if row, ok := b.byName[ev.Scorer]; ok {
			row.Goals++
			if ev.Assist != Unassisted {
				if assister, ok := b.byName[ev.Assist]; ok {
					assister.Assists++
				}
			}
		}
		if ev.Penalty != "" {
			if row, ok := b.byName[penalizedPlayer(ev.Penalty)]; ok {
				row.Penalties++
			}
		}
	}
	return b.flush()
}

// All returns totals in roster order.
func (b *StatBook) All() []PlayerStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]PlayerStats, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, *b.byName[name])
	}
	return out
}

// Clear zeroes every player's totals.
func (b *StatBook) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.byName {
		row.Goals, row.Assists, row.Penalties = 0, 0, 0
	}
	return b.flush()
}

// penalizedPlayer recovers the player name from a penalty description
// like "Eve received a penalty".
func penalizedPlayer(penalty string) string {
	if name, _, ok := strings.Cut(penalty, " received"); ok {
		return name
	}
	return strings.Fields(penalty)[0]
}

func (b *StatBook) flush() error {
	if b.path == "" {
		return nil
	}
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create stats dir: %w", err)
		}
	}
	rows := make([]PlayerStats, 0, len(b.order))
	for _, name := range b.order {
		rows = append(rows, *b.byName[name])
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o644)
}
