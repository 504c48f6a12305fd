package roster

import "strings"

// Placeholder is rendered when a player id resolves to nothing.
const Placeholder = "—"

// Resolver maps player ids to display strings. A configured character
// alias (bolded) takes precedence over the real name.
type Resolver struct {
	aliases map[int64]string
	real    map[int64]string
}

// NewResolver builds a Resolver from alias and real-name maps.
func NewResolver(aliases, real map[int64]string) *Resolver {
	if aliases == nil {
		aliases = map[int64]string{}
	}
	if real == nil {
		real = map[int64]string{}
	}
	return &Resolver{aliases: aliases, real: real}
}

// Resolve returns the display string for a player id: bolded alias,
// then real name, then the placeholder.
func (r *Resolver) Resolve(id int64) string {
	if id == 0 {
		return Placeholder
	}
	if alias, ok := r.aliases[id]; ok && alias != "" {
		return "**" + alias + "**"
	}
	if name, ok := r.real[id]; ok && name != "" {
		return name
	}
	return Placeholder
}

// Known reports whether the id resolves to something other than the placeholder.
func (r *Resolver) Known(id int64) bool {
	return r.Resolve(id) != Placeholder
}

// BuildNameMap indexes every boxscore skater's real name by player id.
func BuildNameMap(skaters map[string]*TeamSkaters) map[int64]string {
	names := make(map[int64]string)
	add := func(group []Skater) {
		for _, p := range group {
			if p.ID != 0 && p.Name != "" {
				names[p.ID] = p.Name
			}
		}
	}
	for _, ts := range skaters {
		add(ts.Forwards)
		add(ts.Defense)
		add(ts.Goalies)
	}
	return names
}

// BuildAliasMap projects the character sheet onto the approximated
// lines: the player occupying a slot inherits that slot's alias. Teams
// without a configured sheet contribute nothing.
func BuildAliasMap(sheet CharacterSheet, lines map[string]*LineAssignment) map[int64]string {
	aliases := make(map[int64]string)

	assign := func(p *Skater, alias string) {
		alias = strings.TrimSpace(alias)
		if p == nil || p.ID == 0 || alias == "" {
			return
		}
		aliases[p.ID] = alias
	}

	for abbr, la := range lines {
		ts, ok := sheet[abbr]
		if !ok {
			continue
		}
		for i := 0; i < 4; i++ {
			slots := ts.forward(i)
			assign(la.Forwards[i][0], slots.LW)
			assign(la.Forwards[i][1], slots.C)
			assign(la.Forwards[i][2], slots.RW)
		}
		for i := 0; i < 3; i++ {
			slots := ts.defensePair(i)
			assign(la.Defense[i][0], slots.LD)
			assign(la.Defense[i][1], slots.RD)
		}
		for i := 0; i < 2; i++ {
			if i < len(la.Goalies) {
				assign(la.Goalies[i], ts.goalie(i).G)
			}
		}
	}
	return aliases
}
