package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStatBookApply(t *testing.T) {
	teams := []TeamConfig{
		{Name: "Team A", Players: []string{"Alice", "Bob"}},
		{Name: "Team B", Players: []string{"Dave"}},
	}
	book := NewStatBook("", teams)

	events := []Event{
		{Team: "Team A", Scorer: "Alice", Assist: "Bob"},
		{Team: "Team A", Scorer: "Alice", Assist: Unassisted},
		{Team: "Team B", Scorer: "Dave", Assist: Unassisted, Penalty: "Dave received a penalty"},
		{Team: "Team B", Scorer: "Nobody", Assist: Unassisted}, // unknown player ignored
	}
	if err := book.Apply(events); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	rows := book.All()
	byName := map[string]PlayerStats{}
	for _, r := range rows {
		byName[r.Name] = r
	}

	if got := byName["Alice"]; got.Goals != 2 || got.Assists != 0 || got.Penalties != 0 {
		t.Errorf("Alice = %+v", got)
	}
	if got := byName["Bob"]; got.Assists != 1 {
		t.Errorf("Bob = %+v", got)
	}
	if got := byName["Dave"]; got.Goals != 1 || got.Penalties != 1 {
		t.Errorf("Dave = %+v", got)
	}
	if len(rows) != 3 {
		t.Errorf("unknown scorer must not add rows: %d", len(rows))
	}
}

func TestStatBookClear(t *testing.T) {
	book := NewStatBook("", DefaultTeams())
	book.Apply([]Event{{Team: "Team A", Scorer: "Alice", Assist: Unassisted}})
	if err := book.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, row := range book.All() {
		if row.Goals != 0 || row.Assists != 0 || row.Penalties != 0 {
			t.Errorf("row not zeroed: %+v", row)
		}
	}
}

func TestStatBookPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	teams := DefaultTeams()

	book := NewStatBook(path, teams)
	if err := book.Apply([]Event{{Team: "Team A", Scorer: "Alice", Assist: "Bob"}}); err != nil {
		t.Fatal(err)
	}

	reloaded := NewStatBook(path, teams)
	byName := map[string]PlayerStats{}
	for _, r := range reloaded.All() {
		byName[r.Name] = r
	}
	if byName["Alice"].Goals != 1 || byName["Bob"].Assists != 1 {
		t.Errorf("persisted totals lost: %+v", byName)
	}
}

func TestHistoryAddAllClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := NewHistory(path)

	r1 := Result{Team1: "Team A", Team2: "Team B", Score1: 2, Score2: 1, Date: time.Now()}
	r2 := Result{Team1: "Team C", Team2: "Team D", Score1: 0, Score2: 3, Date: time.Now()}
	if err := h.Add(r1); err != nil {
		t.Fatal(err)
	}
	if err := h.Add(r2); err != nil {
		t.Fatal(err)
	}

	reloaded := NewHistory(path)
	games := reloaded.All()
	if len(games) != 2 || games[0].Team1 != "Team A" || games[1].Team2 != "Team D" {
		t.Errorf("reloaded history = %+v", games)
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(NewHistory(path).All()) != 0 {
		t.Error("clear did not persist")
	}
}

func TestHistoryCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := len(NewHistory(path).All()); got != 0 {
		t.Errorf("corrupt history must start empty, got %d games", got)
	}
}
