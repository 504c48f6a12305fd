// Package pbp turns the NHL play-by-play feed into a flat list of
// goal and penalty events. The feed's record shape varies across API
// versions, so every concept (scorer id, team abbreviation, strength,
// ...) is read through one ordered fallback chain defined here.
package pbp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fortuna/hockeyhook/internal/nhl"
	"github.com/fortuna/hockeyhook/internal/roster"
)

// Kind tags an extracted event.
type Kind int

const (
	KindGoal Kind = iota
	KindPenalty
)

// PlayEvent is one extracted goal or penalty, in chronological order.
type PlayEvent struct {
	Kind       Kind
	Period     int
	PeriodType string // "OT", "SO" or ""
	Time       string
	Team       string // attributed team abbreviation, may be ""

	// Goal fields.
	Scorer    int64
	Assist1   int64
	Assist2   int64
	Strength  string
	ShotType  string
	AwayScore int
	HomeScore int

	// Penalty fields.
	CommittedBy int64
	DrawnBy     int64
	Label       string
	Minutes     int // 0 when the feed carries no duration
}

// Extract walks the play-by-play payload and returns goal/penalty events
// in chronological order. Plays are re-sorted by their explicit sort
// order (falling back to event id, then arrival index); arrival order is
// never trusted. Goals without a resolvable scorer and penalties without
// a committing player are dropped here, before rendering.
func Extract(payload map[string]interface{}, teams roster.GameTeams) []PlayEvent {
	plays := rawPlays(payload)

	curAway, curHome := 0, 0
	var events []PlayEvent

	for _, play := range plays {
		key := typeKey(play)
		details := detailsOf(play)
		isGoal := key == "goal" || (strings.Contains(key, "goal") && !strings.Contains(key, "shot"))
		isPenalty := key == "penalty" || strings.Contains(key, "penalty")
		if !isGoal && !isPenalty {
			continue
		}

		ev := PlayEvent{
			Period:     periodNumber(play),
			PeriodType: periodType(play),
			Time:       timeInPeriod(play),
			Team:       teamAbbr(details, teams),
		}

		if isGoal {
			ev.Kind = KindGoal
			ev.Scorer = scorerID(details)
			if ev.Scorer == 0 {
				continue
			}
			ev.Assist1, ev.Assist2 = assistIDs(details)
			ev.Strength = strengthTag(details)
			ev.ShotType = shotType(details)

			// Prefer the feed's score-after-goal pair; otherwise credit
			// the attributed team with one.
			if a, aok := nhl.FirstNumber(details, "awayScore", "goalsAway"); aok {
				if h, hok := nhl.FirstNumber(details, "homeScore", "goalsHome"); hok {
					curAway, curHome = int(a), int(h)
				}
			} else {
				switch ev.Team {
				case teams.AwayAbbr:
					curAway++
				case teams.HomeAbbr:
					curHome++
				}
			}
			ev.AwayScore, ev.HomeScore = curAway, curHome
		} else {
			ev.Kind = KindPenalty
			ev.CommittedBy, ev.DrawnBy = penaltyPlayers(details)
			if ev.CommittedBy == 0 {
				continue
			}
			ev.Label = penaltyLabel(details)
			if n, ok := nhl.FirstNumber(details, "duration", "penaltyMinutes", "minutes"); ok {
				ev.Minutes = int(n)
			}
		}

		events = append(events, ev)
	}

	return events
}

// rawPlays locates the play list across feed versions and sorts it.
func rawPlays(payload map[string]interface{}) []map[string]interface{} {
	plays := nhl.FirstArray(payload, "plays")
	if plays == nil {
		plays = nhl.FirstArray(nhl.ExtractMap(payload, "gamecenter"), "plays")
	}
	if plays == nil {
		live := nhl.ExtractMap(payload, "liveData")
		plays = nhl.FirstArray(nhl.ExtractMap(live, "plays"), "allPlays")
	}

	type ordered struct {
		play map[string]interface{}
		key  float64
	}
	out := make([]ordered, 0, len(plays))
	for i, raw := range plays {
		play, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		key, ok := nhl.FirstNumber(play, "sortOrder", "eventId")
		if !ok {
			key, ok = nhl.FirstNumber(nhl.ExtractMap(play, "about"), "eventIdx")
		}
		if !ok {
			key = float64(i)
		}
		out = append(out, ordered{play: play, key: key})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].key < out[b].key })

	sorted := make([]map[string]interface{}, len(out))
	for i, o := range out {
		sorted[i] = o.play
	}
	return sorted
}

func typeKey(play map[string]interface{}) string {
	key := nhl.ExtractString(play, "typeDescKey")
	if key == "" {
		key = nhl.ExtractString(nhl.ExtractMap(play, "result"), "eventTypeId")
	}
	return strings.ToLower(strings.TrimSpace(key))
}

func detailsOf(play map[string]interface{}) map[string]interface{} {
	if d := nhl.ExtractMap(play, "details"); len(d) > 0 {
		return d
	}
	return nhl.ExtractMap(play, "result")
}

func periodNumber(play map[string]interface{}) int {
	if n, ok := nhl.FirstNumber(nhl.ExtractMap(play, "periodDescriptor"), "number"); ok {
		return int(n)
	}
	if n, ok := nhl.FirstNumber(nhl.ExtractMap(play, "about"), "period"); ok {
		return int(n)
	}
	return 0
}

func periodType(play map[string]interface{}) string {
	pt := nhl.ExtractString(nhl.ExtractMap(play, "periodDescriptor"), "periodType")
	if pt == "" {
		pt = nhl.ExtractString(nhl.ExtractMap(play, "about"), "periodType")
	}
	pt = strings.ToUpper(strings.TrimSpace(pt))
	switch pt {
	case "OT", "SO":
		return pt
	}
	return ""
}

func timeInPeriod(play map[string]interface{}) string {
	if t := nhl.ExtractString(play, "timeInPeriod"); t != "" {
		return t
	}
	return nhl.ExtractString(nhl.ExtractMap(play, "about"), "periodTime")
}

// teamAbbr attributes a play: explicit abbreviation first, then team id
// matched against the boxscore teams, else "".
func teamAbbr(details map[string]interface{}, teams roster.GameTeams) string {
	ab := nhl.FirstString(details,
		"eventOwnerTeamAbbrev", "teamAbbrev", "penaltyTeamAbbrev", "scoringTeamAbbrev")
	if ab != "" {
		return strings.ToUpper(strings.TrimSpace(ab))
	}

	tid := nhl.FirstID(details, "eventOwnerTeamId", "teamId", "ownerTeamId", "scoringTeamId")
	switch {
	case tid != 0 && tid == teams.AwayID:
		return teams.AwayAbbr
	case tid != 0 && tid == teams.HomeID:
		return teams.HomeAbbr
	}
	return ""
}

func scorerID(details map[string]interface{}) int64 {
	return nhl.FirstID(details, "scoringPlayerId", "scorerPlayerId", "scorerId", "playerId")
}

func assistIDs(details map[string]interface{}) (int64, int64) {
	a1 := nhl.FirstID(details, "assist1PlayerId", "assistOnePlayerId", "primaryAssistPlayerId")
	a2 := nhl.FirstID(details, "assist2PlayerId", "assistTwoPlayerId", "secondaryAssistPlayerId")
	return a1, a2
}

func penaltyPlayers(details map[string]interface{}) (committed, drawn int64) {
	// servedByPlayerId last: bench minors attach only a serving player.
	committed = nhl.FirstID(details, "committedByPlayerId", "penaltyPlayerId", "playerId", "servedByPlayerId")
	drawn = nhl.FirstID(details, "drawnByPlayerId", "drawnBy", "victimPlayerId", "againstPlayerId")
	return committed, drawn
}

func penaltyLabel(details map[string]interface{}) string {
	label := Titleize(nhl.FirstString(details, "descKey", "typeCode", "penaltyType", "penaltyName"))
	if label == "" {
		return "Penalty"
	}
	return label
}

func shotType(details map[string]interface{}) string {
	return Titleize(nhl.FirstString(details, "shotType", "shotTypeDescKey", "shotTypeCode", "scoringShotType"))
}

var ratioPattern = regexp.MustCompile(`^\d+v\d+$`)

// strengthTag normalizes the feed's strength/situation value into the
// fixed vocabulary: PP, SH, EV, PS, a literal "<N>v<M>" ratio, or an
// upper-cased pass-through for anything else non-empty.
func strengthTag(details map[string]interface{}) string {
	raw := strings.ToLower(strings.TrimSpace(nhl.FirstString(details,
		"situationCode", "strength", "strengthCode", "eventStrength", "scoringStrength")))
	if raw == "" {
		return ""
	}
	switch {
	case raw == "pp" || strings.Contains(raw, "power"):
		return "PP"
	case raw == "sh" || strings.Contains(raw, "short"):
		return "SH"
	case raw == "ev" || strings.Contains(raw, "even"):
		return "EV"
	case raw == "ps" || strings.Contains(raw, "penaltyshot"):
		return "PS"
	case ratioPattern.MatchString(raw):
		return strings.ToUpper(raw)
	}
	return strings.ToUpper(raw)
}

// Titleize converts a feed description key ("hooking", "too_many_men")
// into a display label ("Hooking", "Too Many Men").
func Titleize(s string) string {
	s = strings.TrimSpace(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
	if s == "" {
		return ""
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
