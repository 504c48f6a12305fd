package roster

import (
	"regexp"
	"sort"
	"strconv"
)

// LineAssignment is a TOI-based approximation of a team's deployment:
// four forward trios (LW, C, RW), three defense pairs and up to two
// goalies ordered starter-first. Slots hold nil when the team dressed
// fewer players than the template. This is a heuristic; it is not
// expected to match the official line combinations.
type LineAssignment struct {
	Forwards [4][3]*Skater
	Defense  [3][2]*Skater
	Goalies  []*Skater
}

var toiPattern = regexp.MustCompile(`^(\d+):(\d{2})$`)

// TOISeconds parses "MM:SS" ice time into seconds. Malformed or missing
// values parse to 0 so they sort last.
func TOISeconds(toi string) int {
	m := toiPattern.FindStringSubmatch(toi)
	if m == nil {
		return 0
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	return mins*60 + secs
}

// BuildLines approximates a team's lines from boxscore skaters.
//
// Forwards are sorted by TOI descending and partitioned into LW/C/RW
// pools (anything else is an unclassified pool). Each of the four trios
// greedily takes one player per slot, preferring the natural pool and
// falling back through the remaining pools so a slot is never left empty
// while unassigned forwards remain. Defense is paired in raw TOI order
// (the feed carries no left/right defense labels). Goalies keep TOI
// order, starter first.
func BuildLines(ts *TeamSkaters) *LineAssignment {
	la := &LineAssignment{}

	forwards := sortByTOI(ts.Forwards)
	defense := sortByTOI(ts.Defense)
	goalies := sortByTOI(ts.Goalies)

	var lw, c, rw, other []*Skater
	for _, p := range forwards {
		switch p.Position {
		case "LW":
			lw = append(lw, p)
		case "C":
			c = append(c, p)
		case "RW":
			rw = append(rw, p)
		default:
			other = append(other, p)
		}
	}

	takeAny := func() *Skater {
		for _, pool := range []*[]*Skater{&lw, &c, &rw, &other} {
			if p := take(pool); p != nil {
				return p
			}
		}
		return nil
	}
	takeOr := func(pool *[]*Skater) *Skater {
		if p := take(pool); p != nil {
			return p
		}
		return takeAny()
	}

	for i := 0; i < 4; i++ {
		la.Forwards[i][0] = takeOr(&lw)
		la.Forwards[i][1] = takeOr(&c)
		la.Forwards[i][2] = takeOr(&rw)
	}

	for i := 0; i < 3; i++ {
		if i*2 < len(defense) {
			la.Defense[i][0] = defense[i*2]
		}
		if i*2+1 < len(defense) {
			la.Defense[i][1] = defense[i*2+1]
		}
	}

	if len(goalies) > 2 {
		goalies = goalies[:2]
	}
	la.Goalies = goalies

	return la
}

// BuildAllLines approximates lines for every team in a boxscore.
func BuildAllLines(skaters map[string]*TeamSkaters) map[string]*LineAssignment {
	out := make(map[string]*LineAssignment, len(skaters))
	for abbr, ts := range skaters {
		out[abbr] = BuildLines(ts)
	}
	return out
}

func sortByTOI(skaters []Skater) []*Skater {
	out := make([]*Skater, len(skaters))
	for i := range skaters {
		out[i] = &skaters[i]
	}
	sort.SliceStable(out, func(a, b int) bool {
		return TOISeconds(out[a].TOI) > TOISeconds(out[b].TOI)
	})
	return out
}

func take(pool *[]*Skater) *Skater {
	if len(*pool) == 0 {
		return nil
	}
	p := (*pool)[0]
	*pool = (*pool)[1:]
	return p
}
