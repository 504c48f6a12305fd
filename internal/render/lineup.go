package render

import (
	"fmt"
	"strings"

	"github.com/fortuna/hockeyhook/internal/roster"
)

func slotOrDash(name string) string {
	if strings.TrimSpace(name) == "" {
		return roster.Placeholder
	}
	return name
}

// Lineup renders a team's character line sheet as a plain-content
// message for the roster poster.
func Lineup(team string, sheet roster.TeamSheet, usedFallback bool) string {
	var fLines []string
	for i, ln := range sheet.F {
		if i >= 4 {
			break
		}
		fLines = append(fLines, fmt.Sprintf("L%d: %s — %s — %s",
			i+1, slotOrDash(ln.LW), slotOrDash(ln.C), slotOrDash(ln.RW)))
	}

	var dPairs []string
	for i, pr := range sheet.D {
		if i >= 3 {
			break
		}
		dPairs = append(dPairs, fmt.Sprintf("D%d: %s — %s",
			i+1, slotOrDash(pr.LD), slotOrDash(pr.RD)))
	}

	var goalies []string
	for i, g := range sheet.G {
		if i >= 2 {
			break
		}
		goalies = append(goalies, fmt.Sprintf("G%d: %s", i+1, slotOrDash(g.G)))
	}

	joinOrDash := func(lines []string) string {
		if len(lines) == 0 {
			return roster.Placeholder
		}
		return strings.Join(lines, "\n")
	}

	fallbackNote := "_No live roster fallback used_"
	if usedFallback {
		fallbackNote = "_Filled blanks from live NHL roster_"
	}

	return strings.Join([]string{
		fmt.Sprintf("🏒 **%s — Character Lines**", team),
		fallbackNote,
		"",
		"**Forwards**",
		joinOrDash(fLines),
		"",
		"**Defense**",
		joinOrDash(dPairs),
		"",
		"**Goalies**",
		joinOrDash(goalies),
	}, "\n")
}
