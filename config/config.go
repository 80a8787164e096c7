package config

import (
	"os"
	"time"
)

// Database configuration
var PostgresHost string
var PostgresPort string
var PostgresUser string
var PostgresPassword string
var PostgresDB string

// Redis configuration
var RedisAddr string
var RedisPassword string

// Auth configuration
var JWTSecret string

// YouTube sync configuration
var YouTubeAPIKey string
var LeetCodePlaylistID string
var CodeforcesPlaylistID string
var CodeChefPlaylistID string

// SyncInterval is the delay between scheduled playlist sync runs.
var SyncInterval = 6 * time.Hour

// ContestCacheTTL is how long the aggregated live contest list is kept in Redis.
var ContestCacheTTL = 5 * time.Minute

// LoadConfig reads configuration from environment variables, applying
// defaults suitable for local development. godotenv is expected to have
// populated the environment from .env before this is called.
func LoadConfig() {
	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "contest_tracker")

	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "change-me-in-production")

	YouTubeAPIKey = getEnv("YOUTUBE_API_KEY", "")
	LeetCodePlaylistID = getEnv("LEETCODE_PLAYLIST_ID", "PLcXpkI9A-RZI6FhydNz3JBt_-p_i25Cbr")
	CodeforcesPlaylistID = getEnv("CODEFORCES_PLAYLIST_ID", "PLcXpkI9A-RZLUfBSNp-YQBCOezZKbDSgB")
	CodeChefPlaylistID = getEnv("CODECHEF_PLAYLIST_ID", "PLcXpkI9A-RZIZ6lsE0KCcLWeKNoG45fYr")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
