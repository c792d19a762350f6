package storage

import (
	"database/sql"
	"fmt"
	"time"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter handles storing clean hotel records in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the hotels table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS hotels (
		id                SERIAL PRIMARY KEY,
		name              TEXT          NOT NULL,
		city              TEXT          NOT NULL,
		price             NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		score             NUMERIC(4,2)  CHECK (score >= 0 AND score <= 10),
		review_count      INTEGER       CHECK (review_count >= 0),
		review_category   TEXT,
		free_cancellation BOOLEAN,
		rooms_left        INTEGER,
		popularity        NUMERIC(8,4),
		description       TEXT,
		url               TEXT,
		scraped_at        TIMESTAMP,
		UNIQUE (name, city, url)
	);

	CREATE INDEX IF NOT EXISTS idx_hotels_price      ON hotels (price);
	CREATE INDEX IF NOT EXISTS idx_hotels_city       ON hotels (city);
	CREATE INDEX IF NOT EXISTS idx_hotels_score      ON hotels (score);
	CREATE INDEX IF NOT EXISTS idx_hotels_popularity ON hotels (popularity);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'hotels' is ready")
	return nil
}

// BatchInsert inserts clean hotels in a single transaction, skipping rows
// already present under the same (name, city, url)
func (w *PostgresWriter) BatchInsert(hotels []*models.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO hotels (name, city, price, score, review_count, review_category,
		                    free_cancellation, rooms_left, popularity, description, url, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (name, city, url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, h := range hotels {
		var scrapedAt interface{}
		if !h.ScrapedAt.IsZero() {
			scrapedAt = h.ScrapedAt
		}
		_, err = stmt.Exec(
			h.Name,
			h.City,
			h.Price,
			h.Score,
			h.ReviewCount,
			nullString(h.ReviewCategory),
			h.FreeCancellation,
			h.RoomsLeft,
			h.Popularity,
			nullString(h.Description),
			nullString(h.URL),
			scrapedAt,
		)
		if err != nil {
			w.logger.Warn("Skipping insert for '%s': %v", h.Name, err)
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Inserted %d/%d hotels into PostgreSQL", inserted, len(hotels))
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
