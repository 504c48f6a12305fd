package roster

import (
	"strings"

	"github.com/fortuna/hockeyhook/internal/nhl"
)

// Skater is one player's boxscore row: identity, position, ice time and
// per-game counting stats. Immutable per game.
type Skater struct {
	ID       int64
	Name     string
	Position string
	TOI      string
	Goals    int
	Assists  int
	Shots    int
	Hits     int
	PIM      int
}

// TeamSkaters groups a team's boxscore skaters by role.
type TeamSkaters struct {
	Abbrev   string
	TeamName string
	Forwards []Skater
	Defense  []Skater
	Goalies  []Skater
}

// GameTeams carries the boxscore-level team identity needed to attribute
// plays: abbreviations, feed team ids and final score.
type GameTeams struct {
	AwayAbbr  string
	HomeAbbr  string
	AwayID    int64
	HomeID    int64
	AwayName  string
	HomeName  string
	AwayScore int
	HomeScore int
}

// Teams extracts both teams' identity from a boxscore payload.
func Teams(box map[string]interface{}) GameTeams {
	away := nhl.ExtractMap(box, "awayTeam")
	home := nhl.ExtractMap(box, "homeTeam")

	t := GameTeams{
		AwayAbbr: strings.ToUpper(nhl.FirstString(away, "abbrev", "abbreviation")),
		HomeAbbr: strings.ToUpper(nhl.FirstString(home, "abbrev", "abbreviation")),
		AwayID:   nhl.FirstID(away, "id", "teamId"),
		HomeID:   nhl.FirstID(home, "id", "teamId"),
		AwayName: nhl.DefaultName(away["commonName"]),
		HomeName: nhl.DefaultName(home["commonName"]),
	}
	if t.AwayName == "" {
		t.AwayName = t.AwayAbbr
	}
	if t.HomeName == "" {
		t.HomeName = t.HomeAbbr
	}
	if n, ok := nhl.FirstNumber(away, "score"); ok {
		t.AwayScore = int(n)
	}
	if n, ok := nhl.FirstNumber(home, "score"); ok {
		t.HomeScore = int(n)
	}
	return t
}

// ExtractSkaters pulls per-team skater groups from a boxscore payload.
// Players live under playerByGameStats.awayTeam/homeTeam, not under the
// top-level team objects.
func ExtractSkaters(box map[string]interface{}) map[string]*TeamSkaters {
	out := make(map[string]*TeamSkaters, 2)
	byStats := nhl.ExtractMap(box, "playerByGameStats")

	for _, side := range []string{"awayTeam", "homeTeam"} {
		teamInfo := nhl.ExtractMap(box, side)
		abbr := strings.ToUpper(nhl.FirstString(teamInfo, "abbrev", "abbreviation"))
		if abbr == "" {
			abbr = strings.ToUpper(side)
		}

		name := nhl.DefaultName(teamInfo["commonName"])
		if name == "" {
			name = abbr
		}

		stats := nhl.ExtractMap(byStats, side)
		out[abbr] = &TeamSkaters{
			Abbrev:   abbr,
			TeamName: name,
			Forwards: parseSkaterGroup(nhl.ExtractArray(stats, "forwards")),
			Defense:  parseSkaterGroup(nhl.ExtractArray(stats, "defense")),
			Goalies:  parseSkaterGroup(nhl.ExtractArray(stats, "goalies")),
		}
	}
	return out
}

func parseSkaterGroup(players []interface{}) []Skater {
	out := make([]Skater, 0, len(players))
	for _, raw := range players {
		p, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		sk := Skater{
			ID:       playerID(p),
			Name:     playerName(p),
			Position: normalizePosition(nhl.FirstString(p, "position", "positionCode")),
			TOI:      nhl.FirstString(p, "toi", "timeOnIce"),
		}
		if n, ok := nhl.FirstNumber(p, "goals"); ok {
			sk.Goals = int(n)
		}
		if n, ok := nhl.FirstNumber(p, "assists"); ok {
			sk.Assists = int(n)
		}
		if n, ok := nhl.FirstNumber(p, "sog", "shots"); ok {
			sk.Shots = int(n)
		}
		if n, ok := nhl.FirstNumber(p, "hits"); ok {
			sk.Hits = int(n)
		}
		if n, ok := nhl.FirstNumber(p, "pim", "penaltyMinutes"); ok {
			sk.PIM = int(n)
		}
		out = append(out, sk)
	}
	return out
}

// playerID reads a player id from any of the historical field names.
func playerID(p map[string]interface{}) int64 {
	if id := nhl.FirstID(p, "playerId", "id"); id > 0 {
		return id
	}
	return nhl.FirstID(nhl.ExtractMap(p, "player"), "id")
}

// playerName assembles a display name from the name-object or the split
// firstName/lastName variants.
func playerName(p map[string]interface{}) string {
	if nm := nhl.DefaultName(p["name"]); nm != "" {
		return nm
	}
	first := nhl.DefaultName(p["firstName"])
	last := nhl.DefaultName(p["lastName"])
	return strings.TrimSpace(first + " " + last)
}

// normalizePosition maps roster position codes to the L/LW etc. set used
// by the line approximator. Single-letter wing codes become two-letter.
func normalizePosition(pos string) string {
	p := strings.ToUpper(strings.TrimSpace(pos))
	switch p {
	case "L":
		return "LW"
	case "R":
		return "RW"
	}
	return p
}
