package main

import (
	"context"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/fortuna/hockeyhook/internal/discord"
	"github.com/fortuna/hockeyhook/internal/lines"
	"github.com/fortuna/hockeyhook/internal/nhl"
	"github.com/fortuna/hockeyhook/internal/render"
	"github.com/fortuna/hockeyhook/internal/roster"
)

const (
	serviceName    = "rosterbot"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Character Lineup Poster", serviceName, serviceVersion)

	config := loadConfig()

	if config.WebhookURL == "" {
		log.Fatalf("DISCORD_WEBHOOK_URL is required")
	}

	sheet, err := roster.LoadSheet(config.RostersPath)
	if err != nil {
		log.Fatalf("Failed to load character rosters: %v", err)
	}

	// TEAM narrows the run to one team; otherwise every configured
	// team gets a lineup post.
	var teams []string
	if config.Team != "" {
		teams = []string{strings.ToUpper(config.Team)}
	} else {
		for team := range sheet {
			teams = append(teams, team)
		}
		sort.Strings(teams)
	}
	if len(teams) == 0 {
		log.Fatalf("No teams to post: set TEAM or configure %s", config.RostersPath)
	}

	ctx := context.Background()

	var scraper *lines.Scraper
	if config.UseDailyFaceoff {
		scraper, err = lines.NewScraper()
		if err != nil {
			log.Printf("⚠️  Daily Faceoff scraper unavailable: %v", err)
			scraper = nil
		} else {
			defer scraper.Close()
		}
	}

	client := nhl.New(config.NHLAPIBase)
	hook := discord.New(config.WebhookURL, config.WebhookUsername)

	for _, team := range teams {
		merged := sheet[team]
		usedFallback := false

		if scraper != nil {
			if dfo, err := scraper.TeamSheet(ctx, team); err != nil {
				log.Printf("⚠️  Daily Faceoff lines unavailable for %s: %v", team, err)
			} else {
				merged = roster.MergeSheets(merged, dfo)
				usedFallback = true
				log.Printf("✓ %s: filled blanks from Daily Faceoff lines", team)
			}
		}

		if live, err := client.Roster(ctx, team); err != nil {
			log.Printf("⚠️  Live roster unavailable for %s: %v", team, err)
		} else {
			merged = roster.MergeSheets(merged, roster.SheetFromRoster(live))
			usedFallback = true
			log.Printf("✓ %s: filled blanks from live NHL roster", team)
		}

		if _, err := hook.Post(ctx, discord.Message{
			Content: render.Lineup(team, merged, usedFallback),
		}, ""); err != nil {
			log.Fatalf("Failed to post %s lineup: %v", team, err)
		}
		log.Printf("✓ Posted %s character lineup", team)
	}
}

type Config struct {
	Team            string
	WebhookURL      string
	WebhookUsername string
	RostersPath     string
	NHLAPIBase      string
	UseDailyFaceoff bool
}

func loadConfig() Config {
	return Config{
		Team:            getEnv("TEAM", ""),
		WebhookURL:      getEnv("DISCORD_WEBHOOK_URL", ""),
		WebhookUsername: getEnv("WEBHOOK_USERNAME", "HockeyHook"),
		RostersPath:     getEnv("ROSTERS_PATH", "rosters.json"),
		NHLAPIBase:      getEnv("NHL_API_BASE", "https://api-web.nhle.com/v1"),
		UseDailyFaceoff: getEnv("USE_DAILYFACEOFF", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
