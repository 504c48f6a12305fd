// Package pipeline runs the postgame flow: fetch the day's games,
// render each completed game's play-by-play and deliver it, recording
// every delivered game in the idempotency registry.
//
// Execution is strictly sequential: one game is fully fetched, rendered
// and delivered before the next begins. That keeps delivery ordering
// deterministic and stays under the webhook's rate limit.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fortuna/hockeyhook/internal/discord"
	"github.com/fortuna/hockeyhook/internal/nhl"
	"github.com/fortuna/hockeyhook/internal/pbp"
	"github.com/fortuna/hockeyhook/internal/registry"
	"github.com/fortuna/hockeyhook/internal/render"
	"github.com/fortuna/hockeyhook/internal/roster"
)

// Config holds the per-run pipeline settings.
type Config struct {
	Date           string // YYYY-MM-DD (UTC)
	ForceAll       bool   // bypass the completed-games filter
	IgnorePosted   bool   // bypass the idempotency registry
	InterPostDelay time.Duration
	InterGameDelay time.Duration
}

// Runner wires the upstream client, delivery client and registry.
type Runner struct {
	nhl   *nhl.Client
	hook  *discord.Client
	reg   registry.Registry
	sheet roster.CharacterSheet
	cfg   Config
}

// NewRunner creates a pipeline runner.
func NewRunner(client *nhl.Client, hook *discord.Client, reg registry.Registry, sheet roster.CharacterSheet, cfg Config) *Runner {
	if cfg.InterPostDelay == 0 {
		cfg.InterPostDelay = 300 * time.Millisecond
	}
	if cfg.InterGameDelay == 0 {
		cfg.InterGameDelay = 600 * time.Millisecond
	}
	return &Runner{nhl: client, hook: hook, reg: reg, sheet: sheet, cfg: cfg}
}

// Run processes every candidate game for the configured date. Fetch and
// delivery errors are fatal for the run; games recorded before the
// failure stay recorded.
func (r *Runner) Run(ctx context.Context) error {
	score, err := r.nhl.Score(ctx, r.cfg.Date)
	if err != nil {
		return fmt.Errorf("fetch score sheet: %w", err)
	}

	games := nhl.ExtractArray(score, "games")
	var candidates []map[string]interface{}
	for _, raw := range games {
		g, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if r.cfg.ForceAll || isFinal(g) {
			candidates = append(candidates, g)
		}
	}

	log.Printf("[pipeline] Date=%s games=%d candidates=%d forceAll=%v ignorePosted=%v",
		r.cfg.Date, len(games), len(candidates), r.cfg.ForceAll, r.cfg.IgnorePosted)

	if len(candidates) == 0 {
		_, err := r.hook.Post(ctx, discord.Message{
			Embeds: []render.Embed{{
				Title:       fmt.Sprintf("🏒 HOCKEYHOOK — %s", r.cfg.Date),
				Description: "No postable games found.",
			}},
		}, "")
		return err
	}

	for _, g := range candidates {
		gameID := nhl.FirstID(g, "id", "gameId")
		if gameID == 0 {
			log.Printf("[pipeline] ⚠️  Skipping game with no id")
			continue
		}

		if !r.cfg.IgnorePosted {
			posted, err := r.reg.Contains(ctx, gameID)
			if err != nil {
				return fmt.Errorf("registry lookup for game %d: %w", gameID, err)
			}
			if posted {
				log.Printf("[pipeline] ⊘ Skipping already posted game %d", gameID)
				continue
			}
		}

		if err := r.processGame(ctx, gameID); err != nil {
			return fmt.Errorf("game %d: %w", gameID, err)
		}

		if !r.cfg.IgnorePosted {
			if err := r.reg.Add(ctx, gameID); err != nil {
				return fmt.Errorf("record game %d: %w", gameID, err)
			}
		}

		sleepCtx(ctx, r.cfg.InterGameDelay)
	}

	log.Printf("[pipeline] ✓ Done")
	return nil
}

// processGame fetches, renders and delivers one game's play-by-play.
func (r *Runner) processGame(ctx context.Context, gameID int64) error {
	box, err := r.nhl.Boxscore(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetch boxscore: %w", err)
	}
	feed, err := r.nhl.PlayByPlay(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetch play-by-play: %w", err)
	}

	teams := roster.Teams(box)
	skaters := roster.ExtractSkaters(box)
	lines := roster.BuildAllLines(skaters)
	resolver := roster.NewResolver(
		roster.BuildAliasMap(r.sheet, lines),
		roster.BuildNameMap(skaters),
	)

	events := pbp.Extract(feed, teams)
	buckets := render.Group(events, resolver)

	threadName := fmt.Sprintf("%s • %s @ %s • %d", r.cfg.Date, teams.AwayName, teams.HomeName, gameID)
	created, err := r.hook.Post(ctx, discord.Message{
		ThreadName: threadName,
		Embeds:     []render.Embed{render.HeaderEmbed(gameID, teams, r.cfg.Date)},
	}, "")
	if err != nil {
		return fmt.Errorf("create thread: %w", err)
	}
	threadID := created.ThreadID()
	log.Printf("[pipeline] Created thread %s for game %d (%s @ %s)",
		threadID, gameID, teams.AwayAbbr, teams.HomeAbbr)

	for _, batch := range discord.ChunkEmbeds(render.GameEmbeds(buckets)) {
		if _, err := r.hook.Post(ctx, discord.Message{Embeds: batch}, threadID); err != nil {
			return fmt.Errorf("post period embeds: %w", err)
		}
		sleepCtx(ctx, r.cfg.InterPostDelay)
	}

	log.Printf("[pipeline] ✓ Posted game %d (%d events)", gameID, len(events))
	return nil
}

// isFinal reports whether the score-sheet entry describes a completed game.
func isFinal(g map[string]interface{}) bool {
	state := strings.ToUpper(nhl.FirstString(g, "gameState", "gameStatus"))
	if state == "OFF" || state == "FINAL" {
		return true
	}
	if id, ok := nhl.FirstNumber(g, "gameStateId", "gameStatusId"); ok && int(id) == 7 {
		return true
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
