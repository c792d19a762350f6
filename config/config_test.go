package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Empty(t, cfg.InputCSVPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "output/raw_hotels.csv", cfg.RawCSVPath)
	assert.Equal(t, "output/hotels_clean.csv", cfg.CleanCSVPath)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.Equal(t, 2000, cfg.RateLimitDelay)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Contains(t, cfg.BookingURL, "booking.com")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INPUT_CSV_PATH", "data/hotels.csv")
	t.Setenv("CLEAN_CSV_PATH", "data/clean.csv")
	t.Setenv("DATABASE_URL", "postgres://localhost/hotels")
	t.Setenv("MAX_PAGES", "7")
	t.Setenv("RATE_LIMIT_DELAY_MS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "data/hotels.csv", cfg.InputCSVPath)
	assert.Equal(t, "data/clean.csv", cfg.CleanCSVPath)
	assert.Equal(t, "postgres://localhost/hotels", cfg.DatabaseURL)
	assert.Equal(t, 7, cfg.MaxPages)
	// Unparsable numeric env falls back to the default
	assert.Equal(t, 2000, cfg.RateLimitDelay)
}
