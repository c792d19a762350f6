package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"
)

// CSVWriter handles writing raw and cleaned hotel datasets to CSV files
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteRawHotels writes a snapshot of the raw scrape, matching the header
// the CSVReader expects back
func (w *CSVWriter) WriteRawHotels(hotels []*models.RawHotel) error {
	file, err := w.create()
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(rawColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range hotels {
		row := []string{
			h.Name,
			h.RawPrice,
			h.Location,
			h.RawScore,
			h.RawReviewCount,
			h.ReviewCategory,
			h.RawCancellation,
			h.RawRoomsLeft,
			h.Distance,
			h.Description,
			h.URL,
			formatTime(h.ScrapedAt),
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write raw CSV row for '%s': %v", h.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Raw hotels written to: %s (%d rows)", w.filePath, len(hotels))
	return nil
}

// WriteHotels writes the cleaned dataset. Column order and number
// formatting are fixed, so the same input always produces the same bytes.
func (w *CSVWriter) WriteHotels(hotels []*models.Hotel) error {
	file, err := w.create()
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"name", "city", "price", "score", "review_count",
		"review_category", "free_cancellation", "rooms_left",
		"popularity", "description", "url", "scraped_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range hotels {
		row := []string{
			h.Name,
			h.City,
			strconv.FormatFloat(h.Price, 'f', 2, 64),
			formatFloatPtr(h.Score, 1),
			formatIntPtr(h.ReviewCount),
			h.ReviewCategory,
			formatBoolPtr(h.FreeCancellation),
			formatIntPtr(h.RoomsLeft),
			formatFloatPtr(h.Popularity, 4),
			h.Description,
			h.URL,
			formatTime(h.ScrapedAt),
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", h.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("Clean hotels written to: %s (%d rows)", w.filePath, len(hotels))
	return nil
}

func (w *CSVWriter) create() (*os.File, error) {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(w.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}
	return file, nil
}

func formatFloatPtr(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBoolPtr(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
