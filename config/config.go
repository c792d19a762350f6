package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Input/Output
	InputCSVPath string // when set, the scraper is skipped and raw rows come from this file
	RawCSVPath   string // where the raw scrape snapshot is written
	CleanCSVPath string // where the cleaned dataset is written
	LogFilePath  string // optional log tee, empty disables

	// Database (optional: empty disables the Postgres sink)
	DatabaseURL string

	// Scraper
	BookingURL     string
	MaxPages       int
	RateLimitDelay int // milliseconds between page loads
	MaxRetries     int
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		InputCSVPath:   getEnv("INPUT_CSV_PATH", ""),
		RawCSVPath:     getEnv("RAW_CSV_PATH", "output/raw_hotels.csv"),
		CleanCSVPath:   getEnv("CLEAN_CSV_PATH", "output/hotels_clean.csv"),
		LogFilePath:    getEnv("LOG_FILE_PATH", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		BookingURL:     getEnv("BOOKING_URL", "https://www.booking.com/searchresults.html?ss=Ireland&group_adults=2&no_rooms=1"),
		MaxPages:       getEnvInt("MAX_PAGES", 3),
		RateLimitDelay: getEnvInt("RATE_LIMIT_DELAY_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
