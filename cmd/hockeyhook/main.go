package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/hockeyhook/internal/discord"
	"github.com/fortuna/hockeyhook/internal/nhl"
	"github.com/fortuna/hockeyhook/internal/pipeline"
	"github.com/fortuna/hockeyhook/internal/registry"
	"github.com/fortuna/hockeyhook/internal/roster"
)

const (
	serviceName    = "hockeyhook"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Postgame Play-by-Play Poster", serviceName, serviceVersion)

	config := loadConfig()

	if config.WebhookURL == "" {
		log.Fatalf("DISCORD_WEBHOOK_URL is required")
	}

	sheet, err := roster.LoadSheet(config.RostersPath)
	if err != nil {
		log.Fatalf("Failed to load character rosters: %v", err)
	}
	log.Printf("✓ Loaded character rosters for %d teams", len(sheet))

	reg, err := registry.Open(registry.Config{
		Backend:  config.RegistryBackend,
		FilePath: config.PostedPath,
		RedisURL: config.RedisURL,
		DSN:      config.RegistryDSN,
	})
	if err != nil {
		log.Fatalf("Failed to open posted-game registry: %v", err)
	}
	defer reg.Close()
	log.Printf("✓ Posted-game registry ready (backend: %s)", config.RegistryBackend)

	runner := pipeline.NewRunner(
		nhl.New(config.NHLAPIBase),
		discord.New(config.WebhookURL, config.WebhookUsername),
		reg,
		sheet,
		pipeline.Config{
			Date:         config.Date,
			ForceAll:     config.ForceAll,
			IgnorePosted: config.IgnorePosted,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("✓ %s finished", serviceName)
}

type Config struct {
	Date            string
	ForceAll        bool
	IgnorePosted    bool
	WebhookURL      string
	WebhookUsername string
	RostersPath     string
	PostedPath      string
	NHLAPIBase      string
	RegistryBackend string
	RegistryDSN     string
	RedisURL        string
}

func loadConfig() Config {
	return Config{
		Date:            getEnv("DATE", time.Now().UTC().Format("2006-01-02")),
		ForceAll:        getEnv("FORCE_ALL", "false") == "true",
		IgnorePosted:    getEnv("IGNORE_POSTED", "false") == "true",
		WebhookURL:      getEnv("DISCORD_WEBHOOK_URL", ""),
		WebhookUsername: getEnv("WEBHOOK_USERNAME", "HockeyHook"),
		RostersPath:     getEnv("ROSTERS_PATH", "rosters.json"),
		PostedPath:      getEnv("POSTED_PATH", "posted-games.json"),
		NHLAPIBase:      getEnv("NHL_API_BASE", "https://api-web.nhle.com/v1"),
		RegistryBackend: getEnv("REGISTRY_BACKEND", "file"),
		RegistryDSN:     getEnv("REGISTRY_DSN", ""),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
