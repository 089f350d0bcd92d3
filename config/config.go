package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file when present. Running without one is fine; the
// getters below all have defaults.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] no .env file found, using environment")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// ServerURL is the websocket endpoint of the game server.
func ServerURL() string {
	return getEnv("SERVER_URL", "ws://localhost:8080/ws")
}

// GameID is the game the demo client joins at startup.
func GameID() string {
	return getEnv("GAME_ID", "demo")
}

// PlayerName is the display name this client joins under.
func PlayerName() string {
	return getEnv("PLAYER_NAME", "anonymous")
}

// Port is where the debug HTTP API listens.
func Port() string {
	return getEnv("PORT", "8081")
}

// RedisURL selects the redis-backed store when set; empty means the
// in-memory store.
func RedisURL() string {
	return getEnv("REDIS_URL", "")
}

// Autoplay enables the random card picker loop.
func Autoplay() bool {
	return getEnv("AUTOPLAY", "false") == "true"
}
