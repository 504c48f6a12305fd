package pbp

import (
	"testing"

	"github.com/fortuna/hockeyhook/internal/roster"
)

var testTeams = roster.GameTeams{
	AwayAbbr: "WSH", HomeAbbr: "PIT",
	AwayID: 15, HomeID: 5,
}

func goalPlay(sortOrder float64, details map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"typeDescKey":      "goal",
		"sortOrder":        sortOrder,
		"timeInPeriod":     "05:00",
		"periodDescriptor": map[string]interface{}{"number": float64(1), "periodType": "REG"},
		"details":          details,
	}
}

func TestExtractClassification(t *testing.T) {
	tests := []struct {
		name    string
		typeKey string
		details map[string]interface{}
		want    int // extracted event count
	}{
		{
			name:    "plain goal",
			typeKey: "goal",
			details: map[string]interface{}{"scoringPlayerId": float64(8)},
			want:    1,
		},
		{
			name:    "empty-net goal variant",
			typeKey: "empty-net-goal",
			details: map[string]interface{}{"scoringPlayerId": float64(8)},
			want:    1,
		},
		{
			name:    "shot on goal is not a goal",
			typeKey: "shot-on-goal",
			details: map[string]interface{}{"scoringPlayerId": float64(8)},
			want:    0,
		},
		{
			name:    "penalty",
			typeKey: "penalty",
			details: map[string]interface{}{"committedByPlayerId": float64(43), "descKey": "hooking"},
			want:    1,
		},
		{
			name:    "faceoff ignored",
			typeKey: "faceoff",
			details: map[string]interface{}{},
			want:    0,
		},
		{
			name:    "goal without scorer is dropped",
			typeKey: "goal",
			details: map[string]interface{}{},
			want:    0,
		},
		{
			name:    "penalty without committer is dropped",
			typeKey: "penalty",
			details: map[string]interface{}{"descKey": "bench"},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]interface{}{
				"plays": []interface{}{
					map[string]interface{}{
						"typeDescKey": tt.typeKey,
						"sortOrder":   float64(1),
						"details":     tt.details,
					},
				},
			}
			if got := len(Extract(payload, testTeams)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractSortsBySortOrder(t *testing.T) {
	payload := map[string]interface{}{
		"plays": []interface{}{
			goalPlay(30, map[string]interface{}{"scoringPlayerId": float64(3)}),
			goalPlay(10, map[string]interface{}{"scoringPlayerId": float64(1)}),
			goalPlay(20, map[string]interface{}{"scoringPlayerId": float64(2)}),
		},
	}
	events := Extract(payload, testTeams)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []int64{1, 2, 3} {
		if events[i].Scorer != want {
			t.Errorf("events[%d].Scorer = %d, want %d", i, events[i].Scorer, want)
		}
	}
}

func TestExtractRunningScoreExplicit(t *testing.T) {
	payload := map[string]interface{}{
		"plays": []interface{}{
			goalPlay(1, map[string]interface{}{
				"scoringPlayerId": float64(8),
				"awayScore":       float64(1),
				"homeScore":       float64(0),
			}),
			goalPlay(2, map[string]interface{}{
				"scoringPlayerId": float64(9),
				"awayScore":       float64(1),
				"homeScore":       float64(2),
			}),
		},
	}
	events := Extract(payload, testTeams)
	if events[0].AwayScore != 1 || events[0].HomeScore != 0 {
		t.Errorf("first goal score = %d–%d, want 1–0", events[0].AwayScore, events[0].HomeScore)
	}
	if events[1].AwayScore != 1 || events[1].HomeScore != 2 {
		t.Errorf("second goal score = %d–%d, want 1–2", events[1].AwayScore, events[1].HomeScore)
	}
}

func TestExtractRunningScoreIncrement(t *testing.T) {
	payload := map[string]interface{}{
		"plays": []interface{}{
			goalPlay(1, map[string]interface{}{
				"scoringPlayerId":      float64(8),
				"eventOwnerTeamAbbrev": "WSH",
			}),
			goalPlay(2, map[string]interface{}{
				"scoringPlayerId":  float64(71),
				"eventOwnerTeamId": float64(5), // home team id
			}),
			goalPlay(3, map[string]interface{}{
				"scoringPlayerId": float64(99), // unattributable: score holds
			}),
		},
	}
	events := Extract(payload, testTeams)
	if events[0].AwayScore != 1 || events[0].HomeScore != 0 {
		t.Errorf("away goal = %d–%d, want 1–0", events[0].AwayScore, events[0].HomeScore)
	}
	if events[1].Team != "PIT" {
		t.Errorf("team id attribution = %q, want PIT", events[1].Team)
	}
	if events[1].AwayScore != 1 || events[1].HomeScore != 1 {
		t.Errorf("home goal = %d–%d, want 1–1", events[1].AwayScore, events[1].HomeScore)
	}
	if events[2].AwayScore != 1 || events[2].HomeScore != 1 {
		t.Errorf("unattributed goal must not move the score, got %d–%d",
			events[2].AwayScore, events[2].HomeScore)
	}
}

func TestExtractLegacyLiveDataShape(t *testing.T) {
	payload := map[string]interface{}{
		"liveData": map[string]interface{}{
			"plays": map[string]interface{}{
				"allPlays": []interface{}{
					map[string]interface{}{
						"result": map[string]interface{}{
							"eventTypeId": "GOAL",
							"playerId":    float64(8),
						},
						"about": map[string]interface{}{
							"eventIdx":   float64(12),
							"period":     float64(2),
							"periodTime": "10:30",
						},
					},
				},
			},
		},
	}
	events := Extract(payload, testTeams)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Period != 2 || events[0].Time != "10:30" || events[0].Scorer != 8 {
		t.Errorf("legacy shape mis-parsed: %+v", events[0])
	}
}

func TestExtractPenaltyFields(t *testing.T) {
	payload := map[string]interface{}{
		"plays": []interface{}{
			map[string]interface{}{
				"typeDescKey":      "penalty",
				"sortOrder":        float64(1),
				"timeInPeriod":     "08:15",
				"periodDescriptor": map[string]interface{}{"number": float64(3)},
				"details": map[string]interface{}{
					"committedByPlayerId": float64(43),
					"drawnByPlayerId":     float64(8),
					"descKey":             "too_many_men",
					"duration":            float64(2),
				},
			},
		},
	}
	events := Extract(payload, testTeams)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != KindPenalty || ev.CommittedBy != 43 || ev.DrawnBy != 8 {
		t.Errorf("penalty players mis-parsed: %+v", ev)
	}
	if ev.Label != "Too Many Men" {
		t.Errorf("label = %q, want %q", ev.Label, "Too Many Men")
	}
	if ev.Minutes != 2 {
		t.Errorf("minutes = %d, want 2", ev.Minutes)
	}
}

func TestStrengthTag(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"power play", "powerplay", "PP"},
		{"pp literal", "pp", "PP"},
		{"shorthanded", "shorthanded", "SH"},
		{"even strength", "even", "EV"},
		{"penalty shot", "penaltyshot", "PS"},
		{"ratio passthrough", "5v5", "5V5"},
		{"odd ratio", "6v5", "6V5"},
		{"unknown upper passthrough", "weird", "WEIRD"},
		{"empty omitted", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strengthTag(map[string]interface{}{"strength": tt.raw})
			if got != tt.want {
				t.Errorf("strengthTag(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTitleize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hooking", "Hooking"},
		{"too_many_men", "Too Many Men"},
		{"WRIST SHOT", "Wrist Shot"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Titleize(tt.in); got != tt.want {
			t.Errorf("Titleize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
