package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"
)

// rawColumns is the expected raw-extract header. The first five are
// required; the rest default to empty when the column is absent.
var rawColumns = []string{
	"name", "price", "location", "score", "review_count",
	"review_category", "free_cancellation", "rooms_left",
	"distance", "description", "url", "scraped_at",
}

const requiredRawColumns = 5

// SchemaError reports required columns missing from the input header.
// It is fatal: the run aborts rather than producing partial output.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// CSVReader loads a raw hotel extract from a delimited file
type CSVReader struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVReader creates a new CSVReader
func NewCSVReader(filePath string, logger *utils.Logger) *CSVReader {
	return &CSVReader{filePath: filePath, logger: logger}
}

// ReadRawHotels reads the whole input file into RawHotel rows. Column order
// is resolved from the header; a missing required column yields a
// SchemaError. Rows shorter than the header are padded with empty fields.
func (r *CSVReader) ReadRawHotels() ([]*models.RawHotel, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // row width validated against the header below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var missing []string
	for _, col := range rawColumns[:requiredRawColumns] {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var hotels []*models.RawHotel
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		scrapedAt, _ := time.Parse(time.RFC3339, cell(row, "scraped_at"))

		hotels = append(hotels, &models.RawHotel{
			Name:            cell(row, "name"),
			RawPrice:        cell(row, "price"),
			Location:        cell(row, "location"),
			RawScore:        cell(row, "score"),
			RawReviewCount:  cell(row, "review_count"),
			ReviewCategory:  cell(row, "review_category"),
			RawCancellation: cell(row, "free_cancellation"),
			RawRoomsLeft:    cell(row, "rooms_left"),
			Distance:        cell(row, "distance"),
			Description:     cell(row, "description"),
			URL:             cell(row, "url"),
			ScrapedAt:       scrapedAt,
		})
	}

	r.logger.Info("Read %d raw rows from: %s", len(hotels), r.filePath)
	return hotels, nil
}
