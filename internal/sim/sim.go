// Package sim generates exhibition game results between configured
// character teams and tracks the resulting history and player totals.
package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// Unassisted marks a goal with no credited assist.
const Unassisted = "Unassisted"

// maxGoalsPerTeam bounds a simulated score. Scores are uniform in
// [0, maxGoalsPerTeam).
const maxGoalsPerTeam = 5

// TeamConfig names a team and its skaters.
type TeamConfig struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

// Event is a single scoring event in a simulated game. Penalty is empty
// when no penalty was drawn on the play.
type Event struct {
	Team    string `json:"team"`
	Scorer  string `json:"scorer"`
	Assist  string `json:"assist"`
	Penalty string `json:"penalty,omitempty"`
}

// Result is one simulated game.
type Result struct {
	Team1  string    `json:"team1"`
	Team2  string    `json:"team2"`
	Score1 int       `json:"score1"`
	Score2 int       `json:"score2"`
	Events []Event   `json:"events"`
	Date   time.Time `json:"date"`
}

// DefaultTeams returns the built-in four-team league.
func DefaultTeams() []TeamConfig {
	return []TeamConfig{
		{Name: "Team A", Players: []string{"Alice", "Bob", "Charlie"}},
		{Name: "Team B", Players: []string{"Dave", "Eve", "Frank"}},
		{Name: "Team C", Players: []string{"Grace", "Heidi", "Ivan"}},
		{Name: "Team D", Players: []string{"Jack", "Kathy", "Leo"}},
	}
}

// Simulate picks two distinct teams at random and plays one game.
// It needs at least two teams with at least one player each.
func Simulate(teams []TeamConfig, rng *rand.Rand) (Result, error) {
	if len(teams) < 2 {
		return Result{}, fmt.Errorf("need at least 2 teams, have %d", len(teams))
	}
	for _, t := range teams {
		if len(t.Players) == 0 {
			return Result{}, fmt.Errorf("team %q has no players", t.Name)
		}
	}

	i := rng.Intn(len(teams))
	j := rng.Intn(len(teams))
	for j == i {
		j = rng.Intn(len(teams))
	}
	team1, team2 := teams[i], teams[j]

	score1 := rng.Intn(maxGoalsPerTeam)
	score2 := rng.Intn(maxGoalsPerTeam)

	var events []Event
	for n := 0; n < max(score1, score2); n++ {
		scoringTeam := team1
		if rng.Float64() > 0.5 {
			scoringTeam = team2
		}

		ev := Event{
			Team:   scoringTeam.Name,
			Scorer: pick(scoringTeam.Players, rng),
			Assist: Unassisted,
		}
		if rng.Float64() > 0.5 {
			ev.Assist = pick(scoringTeam.Players, rng)
		}
		if rng.Float64() > 0.8 {
			ev.Penalty = fmt.Sprintf("%s received a penalty", pick(scoringTeam.Players, rng))
		}
		events = append(events, ev)
	}

	return Result{
		Team1:  team1.Name,
		Team2:  team2.Name,
		Score1: score1,
		Score2: score2,
		Events: events,
		Date:   time.Now(),
	}, nil
}

func pick(players []string, rng *rand.Rand) string {
	return players[rng.Intn(len(players))]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
