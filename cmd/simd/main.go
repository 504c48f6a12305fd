package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/hockeyhook/internal/api/rest"
	"github.com/fortuna/hockeyhook/internal/api/websocket"
	"github.com/fortuna/hockeyhook/internal/sim"
)

const (
	serviceName    = "simd"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Exhibition Game Simulator", serviceName, serviceVersion)

	config := loadConfig()

	teams := sim.DefaultTeams()
	history := sim.NewHistory(config.HistoryPath)
	stats := sim.NewStatBook(config.StatsPath, teams)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	wsServer := websocket.NewServer()
	go func() {
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)

	handler := rest.NewHandler(teams, history, stats, wsServer, rng)
	restServer := rest.NewServer(config.RESTPort, handler)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()
	log.Printf("✓ REST API server listening on :%s", config.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	RESTPort    string
	WSPort      string
	HistoryPath string
	StatsPath   string
}

func loadConfig() Config {
	return Config{
		RESTPort:    getEnv("REST_PORT", "8080"),
		WSPort:      getEnv("WS_PORT", "8081"),
		HistoryPath: getEnv("HISTORY_PATH", "game-history.json"),
		StatsPath:   getEnv("STATS_PATH", "player-stats.json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
