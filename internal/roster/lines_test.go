package roster

import (
	"fmt"
	"testing"
)

func TestTOISeconds(t *testing.T) {
	tests := []struct {
		name string
		toi  string
		want int
	}{
		{"typical shift total", "18:42", 18*60 + 42},
		{"goalie full game", "60:00", 3600},
		{"single digit minutes", "7:05", 425},
		{"zero", "0:00", 0},
		{"empty", "", 0},
		{"missing seconds digit", "18:4", 0},
		{"garbage", "a lot", 0},
		{"negative-ish", "-5:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TOISeconds(tt.toi); got != tt.want {
				t.Errorf("TOISeconds(%q) = %d, want %d", tt.toi, got, tt.want)
			}
		})
	}
}

func fwd(id int64, pos, toi string) Skater {
	return Skater{ID: id, Name: fmt.Sprintf("Player %d", id), Position: pos, TOI: toi}
}

func TestBuildLinesFullRoster(t *testing.T) {
	// 4 LW, 4 C, 4 RW with descending TOI inside each pool.
	var forwards []Skater
	id := int64(1)
	for _, pos := range []string{"LW", "C", "RW"} {
		for line := 0; line < 4; line++ {
			forwards = append(forwards, fwd(id, pos, fmt.Sprintf("%d:00", 20-line)))
			id++
		}
	}
	defense := []Skater{
		fwd(101, "D", "24:00"), fwd(102, "D", "23:00"),
		fwd(103, "D", "20:00"), fwd(104, "D", "19:00"),
		fwd(105, "D", "15:00"), fwd(106, "D", "14:00"),
	}
	goalies := []Skater{fwd(201, "G", "12:00"), fwd(202, "G", "48:00")}

	la := BuildLines(&TeamSkaters{Forwards: forwards, Defense: defense, Goalies: goalies})

	for line := 0; line < 4; line++ {
		for slot := 0; slot < 3; slot++ {
			if la.Forwards[line][slot] == nil {
				t.Fatalf("forward slot [%d][%d] is empty", line, slot)
			}
		}
	}

	// Natural pools: line 1 should be the top-TOI LW, C, RW.
	if got := la.Forwards[0][0].ID; got != 1 {
		t.Errorf("L1 LW = player %d, want 1", got)
	}
	if got := la.Forwards[0][1].ID; got != 5 {
		t.Errorf("L1 C = player %d, want 5", got)
	}
	if got := la.Forwards[0][2].ID; got != 9 {
		t.Errorf("L1 RW = player %d, want 9", got)
	}

	// Defense pairs follow raw TOI order.
	wantPairs := [3][2]int64{{101, 102}, {103, 104}, {105, 106}}
	for i, pair := range wantPairs {
		for j, want := range pair {
			if la.Defense[i][j] == nil || la.Defense[i][j].ID != want {
				t.Errorf("defense pair [%d][%d] != player %d", i, j, want)
			}
		}
	}

	// Goalie with more ice time is the starter.
	if len(la.Goalies) != 2 || la.Goalies[0].ID != 202 {
		t.Errorf("starter = %+v, want player 202 first", la.Goalies)
	}
}

func TestBuildLinesPoolFallback(t *testing.T) {
	// Centers only: every slot must still fill while forwards remain.
	var forwards []Skater
	for i := int64(1); i <= 12; i++ {
		forwards = append(forwards, fwd(i, "C", fmt.Sprintf("%02d:00", 21-i)))
	}

	la := BuildLines(&TeamSkaters{Forwards: forwards})

	assigned := map[int64]bool{}
	for line := 0; line < 4; line++ {
		for slot := 0; slot < 3; slot++ {
			p := la.Forwards[line][slot]
			if p == nil {
				t.Fatalf("slot [%d][%d] empty despite 12 available forwards", line, slot)
			}
			if assigned[p.ID] {
				t.Fatalf("player %d assigned twice", p.ID)
			}
			assigned[p.ID] = true
		}
	}
	if len(assigned) != 12 {
		t.Errorf("assigned %d players, want 12", len(assigned))
	}
}

func TestBuildLinesShortBench(t *testing.T) {
	forwards := []Skater{
		fwd(1, "C", "20:00"),
		fwd(2, "LW", "18:00"),
	}
	la := BuildLines(&TeamSkaters{Forwards: forwards, Defense: []Skater{fwd(50, "D", "25:00")}})

	filled := 0
	for line := 0; line < 4; line++ {
		for slot := 0; slot < 3; slot++ {
			if la.Forwards[line][slot] != nil {
				filled++
			}
		}
	}
	if filled != 2 {
		t.Errorf("filled %d forward slots, want 2", filled)
	}
	if la.Defense[0][0] == nil || la.Defense[0][1] != nil {
		t.Errorf("lone defenseman should occupy exactly the first pair slot")
	}
	if len(la.Goalies) != 0 {
		t.Errorf("expected no goalies, got %d", len(la.Goalies))
	}
}
