// Package render groups extracted events by period and formats them
// into Discord-sized embed descriptions.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fortuna/hockeyhook/internal/pbp"
	"github.com/fortuna/hockeyhook/internal/roster"
)

const (
	// MaxDescription is Discord's embed description limit.
	MaxDescription = 4096
	// ChunkBudget keeps chunks comfortably under MaxDescription.
	ChunkBudget = 3800

	emptyPeriodText = "_No goals or penalties recorded._"
)

// Embed is one title+description block for the delivery payload.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PeriodBucket holds a period's rendered lines in chronological order.
type PeriodBucket struct {
	Key   string
	Label string
	Lines []string
}

// Group renders events into ordered period buckets: regulation periods
// ascending, then overtime, shootout and finally anything unknown.
func Group(events []pbp.PlayEvent, res *roster.Resolver) []PeriodBucket {
	buckets := make(map[string]*PeriodBucket)
	var order []string

	push := func(ev pbp.PlayEvent, line string) {
		key, label := periodKey(ev)
		b, ok := buckets[key]
		if !ok {
			b = &PeriodBucket{Key: key, Label: label}
			buckets[key] = b
			order = append(order, key)
		}
		b.Lines = append(b.Lines, line)
	}

	for _, ev := range events {
		switch ev.Kind {
		case pbp.KindGoal:
			if line, ok := goalLine(ev, res); ok {
				push(ev, line)
			}
		case pbp.KindPenalty:
			if line, ok := penaltyLine(ev, res); ok {
				push(ev, line)
			}
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return periodRank(order[a]) < periodRank(order[b])
	})

	out := make([]PeriodBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out
}

func periodKey(ev pbp.PlayEvent) (key, label string) {
	switch ev.PeriodType {
	case "OT":
		return "OT", "Overtime"
	case "SO":
		return "SO", "Shootout"
	}
	if ev.Period > 0 {
		return fmt.Sprintf("%d", ev.Period), fmt.Sprintf("Period %d", ev.Period)
	}
	return "Other", "Other"
}

func periodRank(key string) int {
	switch key {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "OT":
		return 90
	case "SO":
		return 95
	case "Other":
		return 999
	}
	// Extra regulation-numbered periods land between 3 and OT.
	var n int
	if _, err := fmt.Sscanf(key, "%d", &n); err == nil {
		return 80 + n
	}
	return 999
}

// goalLine renders one goal. Events whose scorer does not resolve to a
// name are dropped: a placeholder-only goal line is never emitted.
func goalLine(ev pbp.PlayEvent, res *roster.Resolver) (string, bool) {
	if !res.Known(ev.Scorer) {
		return "", false
	}

	timeTxt := ev.Time
	if timeTxt == "" {
		timeTxt = roster.Placeholder
	}
	teamPrefix := ""
	if ev.Team != "" {
		teamPrefix = fmt.Sprintf("**%s** ", ev.Team)
	}

	tagTxt := ""
	if ev.Strength != "" {
		tagTxt = fmt.Sprintf(" (%s)", ev.Strength)
	}
	shotTxt := ""
	if ev.ShotType != "" {
		shotTxt = fmt.Sprintf(" — %s", ev.ShotType)
	}

	var assists []string
	for _, id := range []int64{ev.Assist1, ev.Assist2} {
		if id != 0 && res.Known(id) {
			assists = append(assists, res.Resolve(id))
		}
	}
	assistsTxt := ""
	if len(assists) > 0 {
		assistsTxt = "\n↳ Assists: " + strings.Join(assists, ", ")
	}

	return fmt.Sprintf("🥅 **%s** %s%s%s%s  •  Score: %d–%d%s",
		timeTxt, teamPrefix, res.Resolve(ev.Scorer), tagTxt, shotTxt,
		ev.AwayScore, ev.HomeScore, assistsTxt), true
}

// penaltyLine renders one penalty; dropped when the committing player
// does not resolve, to avoid a generic "—: Penalty" line.
func penaltyLine(ev pbp.PlayEvent, res *roster.Resolver) (string, bool) {
	if !res.Known(ev.CommittedBy) {
		return "", false
	}

	timeTxt := ev.Time
	if timeTxt == "" {
		timeTxt = roster.Placeholder
	}
	teamPrefix := ""
	if ev.Team != "" {
		teamPrefix = fmt.Sprintf("**%s** ", ev.Team)
	}

	minsTxt := ""
	if ev.Minutes > 0 {
		minsTxt = fmt.Sprintf(" (%d)", ev.Minutes)
	}
	drawnTxt := ""
	if ev.DrawnBy != 0 && res.Known(ev.DrawnBy) {
		drawnTxt = "\n↳ Drawn by: " + res.Resolve(ev.DrawnBy)
	}

	return fmt.Sprintf("🟨 **%s** %s%s: **%s**%s%s",
		timeTxt, teamPrefix, res.Resolve(ev.CommittedBy), ev.Label, minsTxt, drawnTxt), true
}

// ChunkLines splits rendered lines into groups whose joined text (with
// two-line spacing) stays within maxLen. A line longer than the budget
// gets a chunk of its own rather than being truncated.
func ChunkLines(lines []string, maxLen int) [][]string {
	var out [][]string
	var cur []string
	curLen := 0

	for _, ln := range lines {
		addLen := len(ln) + 2
		if curLen+addLen > maxLen && len(cur) > 0 {
			out = append(out, cur)
			cur = nil
			curLen = 0
		}
		cur = append(cur, ln)
		curLen += addLen
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// PeriodEmbeds renders one bucket into embeds, splitting long periods
// into "(cont.)" continuation embeds under the chunk budget.
func PeriodEmbeds(b PeriodBucket) []Embed {
	if len(b.Lines) == 0 {
		return []Embed{{Title: b.Label, Description: emptyPeriodText}}
	}

	chunks := ChunkLines(b.Lines, ChunkBudget)
	embeds := make([]Embed, 0, len(chunks))
	for i, group := range chunks {
		title := b.Label
		if i > 0 {
			title = b.Label + " (cont.)"
		}
		embeds = append(embeds, Embed{
			Title:       title,
			Description: strings.Join(group, "\n\n"),
		})
	}
	return embeds
}

// HeaderEmbed renders the game summary header posted at the top of a
// game thread.
func HeaderEmbed(gameID int64, teams roster.GameTeams, date string) Embed {
	return Embed{
		Title: fmt.Sprintf("🏒 %s @ %s", teams.AwayName, teams.HomeName),
		Description: fmt.Sprintf("**Final:** %d–%d\n**Game:** %d\n**Date (UTC):** %s",
			teams.AwayScore, teams.HomeScore, gameID, date),
	}
}

// GameEmbeds renders the full per-period embed sequence for a game.
func GameEmbeds(buckets []PeriodBucket) []Embed {
	var embeds []Embed
	for _, b := range buckets {
		embeds = append(embeds, PeriodEmbeds(b)...)
	}
	if len(embeds) == 0 {
		embeds = append(embeds, Embed{
			Title:       "Play By Play",
			Description: "_No goals or penalties found in feed._",
		})
	}
	return embeds
}
