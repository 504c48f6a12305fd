package sim

import (
	"math/rand"
	"testing"
)

func TestSimulateBasics(t *testing.T) {
	teams := DefaultTeams()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		result, err := Simulate(teams, rng)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}

		if result.Team1 == result.Team2 {
			t.Fatalf("matchup pits %q against itself", result.Team1)
		}
		if result.Score1 < 0 || result.Score1 > 4 || result.Score2 < 0 || result.Score2 > 4 {
			t.Fatalf("score out of range: %d-%d", result.Score1, result.Score2)
		}

		wantEvents := result.Score1
		if result.Score2 > wantEvents {
			wantEvents = result.Score2
		}
		if len(result.Events) != wantEvents {
			t.Fatalf("got %d events for %d-%d", len(result.Events), result.Score1, result.Score2)
		}

		for _, ev := range result.Events {
			if ev.Team != result.Team1 && ev.Team != result.Team2 {
				t.Fatalf("event team %q not in matchup", ev.Team)
			}
			if ev.Scorer == "" {
				t.Fatal("event without scorer")
			}
			if !onTeam(teams, ev.Team, ev.Scorer) {
				t.Fatalf("scorer %q not on team %q", ev.Scorer, ev.Team)
			}
			if ev.Assist != Unassisted && !onTeam(teams, ev.Team, ev.Assist) {
				t.Fatalf("assister %q not on team %q", ev.Assist, ev.Team)
			}
		}
	}
}

func onTeam(teams []TeamConfig, teamName, player string) bool {
	for _, tc := range teams {
		if tc.Name != teamName {
			continue
		}
		for _, p := range tc.Players {
			if p == player {
				return true
			}
		}
	}
	return false
}

func TestSimulateNeedsTwoTeams(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Simulate([]TeamConfig{{Name: "Solo", Players: []string{"A"}}}, rng); err == nil {
		t.Error("one team must error")
	}
	if _, err := Simulate([]TeamConfig{
		{Name: "A", Players: []string{"X"}},
		{Name: "B"},
	}, rng); err == nil {
		t.Error("empty roster must error")
	}
}
