package storage

import "hotel-pipeline/models"

// RawSource loads the raw extract the cleaning pass consumes
type RawSource interface {
	ReadRawHotels() ([]*models.RawHotel, error)
}

// RawSink stores the raw scrape snapshot
type RawSink interface {
	WriteRawHotels(hotels []*models.RawHotel) error
}

// CleanSink stores the cleaned, normalized dataset
type CleanSink interface {
	WriteHotels(hotels []*models.Hotel) error
}

var (
	_ RawSource = (*CSVReader)(nil)
	_ RawSink   = (*CSVWriter)(nil)
	_ CleanSink = (*CSVWriter)(nil)
)
