package models

import "time"

// RawHotel represents one unprocessed search-result row, exactly as scraped
// from Booking.com or read back from a raw CSV extract
type RawHotel struct {
	Name            string
	RawPrice        string // e.g. "€ 1,150"
	Location        string // e.g. "Temple Bar, Dublin"
	RawScore        string // e.g. "Scored 8.5"
	RawReviewCount  string // e.g. "1,204 reviews"
	ReviewCategory  string // e.g. "Excellent"
	RawCancellation string // e.g. "Free cancellation"
	RawRoomsLeft    string // e.g. "Only 3 rooms left"
	Distance        string
	Description     string
	URL             string
	ScrapedAt       time.Time
}

// Hotel represents a cleaned, normalized record ready for CSV/DB storage.
// Optional numeric fields are pointers: nil means the raw row carried no
// usable value.
type Hotel struct {
	Name             string
	City             string
	Price            float64
	Score            *float64 // bounded [0,10]
	ReviewCount      *int
	ReviewCategory   string
	FreeCancellation *bool // nil when the raw text was unrecognized
	RoomsLeft        *int
	Popularity       *float64 // score * log10(review_count+10), nil unless both inputs present
	Description      string
	URL              string
	ScrapedAt        time.Time
}

// SkipReason classifies why a raw row was excluded from the cleaned dataset
type SkipReason string

const (
	SkipDuplicate   SkipReason = "duplicate (name, city, url)"
	SkipBadPrice    SkipReason = "unparsable price"
	SkipMissingName SkipReason = "missing hotel name"
	SkipMissingCity SkipReason = "unresolvable city"
)

// CleanReport accounts for every raw row: Kept + Skipped == TotalRaw
type CleanReport struct {
	TotalRaw  int
	Kept      int
	Skipped   int
	SkippedBy map[SkipReason]int
}

// Skip records one dropped row under the given reason
func (r *CleanReport) Skip(reason SkipReason) {
	if r.SkippedBy == nil {
		r.SkippedBy = make(map[SkipReason]int)
	}
	r.SkippedBy[reason]++
	r.Skipped++
}

// InsightReport holds computed analytics from the cleaned dataset
type InsightReport struct {
	TotalHotels      int
	AveragePrice     float64
	MinPrice         float64
	MaxPrice         float64
	AverageScore     float64
	MostExpensive    *Hotel
	TopRated         []*Hotel
	TopPopular       []*Hotel
	HotelsByCity     map[string]int
	FreeCancellation int // hotels with free_cancellation == true
}
