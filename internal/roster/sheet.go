package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fortuna/hockeyhook/internal/nhl"
)

// ForwardSlots is one configured forward trio.
type ForwardSlots struct {
	LW string `json:"LW"`
	C  string `json:"C"`
	RW string `json:"RW"`
}

// DefenseSlots is one configured defense pair.
type DefenseSlots struct {
	LD string `json:"LD"`
	RD string `json:"RD"`
}

// GoalieSlot is one configured goalie slot.
type GoalieSlot struct {
	G string `json:"G"`
}

// TeamSheet holds a team's configured character aliases by slot.
type TeamSheet struct {
	F []ForwardSlots `json:"F"`
	D []DefenseSlots `json:"D"`
	G []GoalieSlot   `json:"G"`
}

// CharacterSheet maps team abbreviation to its alias slots. Loaded once
// from the rosters file; read-only afterwards.
type CharacterSheet map[string]TeamSheet

// LoadSheet reads the character roster configuration. A missing file is
// not an error: it yields an empty sheet, so every player falls back to
// their real name.
func LoadSheet(path string) (CharacterSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return CharacterSheet{}, nil
		}
		return nil, fmt.Errorf("read roster sheet: %w", err)
	}

	var sheet CharacterSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse roster sheet %s: %w", path, err)
	}
	return sheet, nil
}

// Teams returns the configured team abbreviations.
func (cs CharacterSheet) Teams() []string {
	out := make([]string, 0, len(cs))
	for abbr := range cs {
		out = append(out, abbr)
	}
	return out
}

func (ts TeamSheet) forward(i int) ForwardSlots {
	if i < len(ts.F) {
		return ts.F[i]
	}
	return ForwardSlots{}
}

func (ts TeamSheet) defensePair(i int) DefenseSlots {
	if i < len(ts.D) {
		return ts.D[i]
	}
	return DefenseSlots{}
}

func (ts TeamSheet) goalie(i int) GoalieSlot {
	if i < len(ts.G) {
		return ts.G[i]
	}
	return GoalieSlot{}
}

// SheetFromRoster approximates a TeamSheet from a live roster payload:
// flatten the roster groups, bucket by position code, then fill the
// 4-3-2 template in listing order. Used by the roster poster to fill
// blanks the character sheet leaves open.
func SheetFromRoster(rosterJSON map[string]interface{}) TeamSheet {
	type player struct {
		name string
		pos  string
	}

	var players []player
	for _, v := range rosterJSON {
		group, ok := v.([]interface{})
		if !ok {
			continue
		}
		for _, raw := range group {
			p, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			name := nhl.FirstString(p, "fullName")
			if name == "" {
				name = playerName(p)
			}
			if name == "" {
				continue
			}
			pos := normalizePosition(nhl.FirstString(p, "positionCode", "position"))
			players = append(players, player{name: name, pos: pos})
		}
	}

	pool := func(positions ...string) []string {
		var out []string
		for _, p := range players {
			for _, pos := range positions {
				if p.pos == pos {
					out = append(out, p.name)
					break
				}
			}
		}
		return out
	}

	lws := pool("LW")
	centers := pool("C")
	rws := pool("RW")
	defenders := pool("D")
	goalies := pool("G")

	var flex []string
	for _, p := range players {
		switch p.pos {
		case "LW", "C", "RW", "D", "G":
		default:
			flex = append(flex, p.name)
		}
	}

	takeName := func(pools ...*[]string) string {
		for _, pl := range pools {
			if len(*pl) > 0 {
				name := (*pl)[0]
				*pl = (*pl)[1:]
				return name
			}
		}
		return ""
	}

	sheet := TeamSheet{}
	for i := 0; i < 4; i++ {
		sheet.F = append(sheet.F, ForwardSlots{
			LW: takeName(&lws, &centers, &rws, &flex),
			C:  takeName(&centers, &lws, &rws, &flex),
			RW: takeName(&rws, &centers, &lws, &flex),
		})
	}
	for i := 0; i < 3; i++ {
		sheet.D = append(sheet.D, DefenseSlots{
			LD: takeName(&defenders, &flex),
			RD: takeName(&defenders, &flex),
		})
	}
	for i := 0; i < 2; i++ {
		sheet.G = append(sheet.G, GoalieSlot{G: takeName(&goalies)})
	}
	return sheet
}

// MergeSheets fills blank slots in base from fallback, slot by slot.
// Configured names always win; fallback only covers the gaps.
func MergeSheets(base, fallback TeamSheet) TeamSheet {
	merged := TeamSheet{}

	nF := maxInt(4, len(base.F), len(fallback.F))
	for i := 0; i < nF; i++ {
		b, f := base.forward(i), fallback.forward(i)
		merged.F = append(merged.F, ForwardSlots{
			LW: pick(b.LW, f.LW),
			C:  pick(b.C, f.C),
			RW: pick(b.RW, f.RW),
		})
	}

	nD := maxInt(3, len(base.D), len(fallback.D))
	for i := 0; i < nD; i++ {
		b, f := base.defensePair(i), fallback.defensePair(i)
		merged.D = append(merged.D, DefenseSlots{
			LD: pick(b.LD, f.LD),
			RD: pick(b.RD, f.RD),
		})
	}

	nG := maxInt(2, len(base.G), len(fallback.G))
	for i := 0; i < nG; i++ {
		merged.G = append(merged.G, GoalieSlot{G: pick(base.goalie(i).G, fallback.goalie(i).G)})
	}

	return merged
}

func pick(base, fallback string) string {
	if strings.TrimSpace(base) != "" {
		return base
	}
	return fallback
}

func maxInt(vals ...int) int {
	m := 0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}
