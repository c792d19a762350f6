package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"
)

var (
	numberRegex   = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	intRegex      = regexp.MustCompile(`(\d+)`)
	districtRegex = regexp.MustCompile(`\s+\d+$`)
)

// maxScore is the upper bound of the Booking.com review scale
const maxScore = 10.0

// Cleaner normalizes raw scraped rows into clean Hotel records.
// The pass is pure: same input slice, same output, no hidden state.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a new Cleaner
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows to clean Hotels in input order, dropping and
// counting rows that are duplicates, lack identity fields, or carry an
// unparsable price. The returned report always satisfies
// Kept + Skipped == TotalRaw.
func (c *Cleaner) Clean(raw []*models.RawHotel) ([]*models.Hotel, *models.CleanReport) {
	report := &models.CleanReport{
		TotalRaw:  len(raw),
		SkippedBy: make(map[models.SkipReason]int),
	}

	seen := make(map[string]bool)
	var cleaned []*models.Hotel

	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		location := strings.TrimSpace(r.Location)

		// Some extracts fold the location into the name ("Sample Inn, Dublin 2")
		if location == "" {
			if idx := strings.Index(name, ","); idx != -1 {
				location = strings.TrimSpace(name[idx+1:])
				name = strings.TrimSpace(name[:idx])
			}
		}

		if name == "" {
			report.Skip(models.SkipMissingName)
			c.logger.Debug("Skipping row with empty hotel name")
			continue
		}

		city := deriveCity(location)
		if city == "" {
			report.Skip(models.SkipMissingCity)
			c.logger.Debug("Skipping '%s': no city in location %q", name, r.Location)
			continue
		}

		price, ok := parsePrice(r.RawPrice)
		if !ok {
			report.Skip(models.SkipBadPrice)
			c.logger.Debug("Skipping '%s': unparsable price %q", name, r.RawPrice)
			continue
		}

		url := strings.TrimSpace(r.URL)
		key := name + "|" + city + "|" + url
		if seen[key] {
			report.Skip(models.SkipDuplicate)
			c.logger.Debug("Skipping duplicate: %s (%s)", name, city)
			continue
		}
		seen[key] = true

		score := parseScore(r.RawScore)
		reviewCount := parseReviewCount(r.RawReviewCount)

		hotel := &models.Hotel{
			Name:             name,
			City:             city,
			Price:            price,
			Score:            score,
			ReviewCount:      reviewCount,
			ReviewCategory:   strings.TrimSpace(r.ReviewCategory),
			FreeCancellation: parseCancellation(r.RawCancellation),
			RoomsLeft:        parseRoomsLeft(r.RawRoomsLeft),
			Popularity:       popularityIndex(score, reviewCount),
			Description:      strings.TrimSpace(r.Description),
			URL:              url,
			// Zero when the extract carries no timestamp; kept as-is so
			// rerunning on the same input stays byte-identical
			ScrapedAt: r.ScrapedAt,
		}

		cleaned = append(cleaned, hotel)
	}

	report.Kept = len(cleaned)
	c.logger.Info("Cleaned %d hotels from %d raw rows (%d skipped)",
		report.Kept, report.TotalRaw, report.Skipped)
	return cleaned, report
}

// parsePrice extracts a non-negative amount from strings like "€ 1,150" or
// "US$99.50". The second return is false when no number is present.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	matches := numberRegex.FindStringSubmatch(cleaned)
	if len(matches) < 2 {
		return 0, false
	}
	val, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// parseScore extracts a review score from strings like "Scored 8.5" and
// clamps it into [0, maxScore]. Returns nil when no number is present.
func parseScore(raw string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if cleaned == "" {
		return nil
	}
	matches := numberRegex.FindStringSubmatch(cleaned)
	if len(matches) < 2 {
		return nil
	}
	val, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return nil
	}
	if val > maxScore {
		val = maxScore
	}
	return &val
}

// parseReviewCount extracts a non-negative count from strings like
// "1,204 reviews". Returns nil when no number is present.
func parseReviewCount(raw string) *int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	matches := intRegex.FindStringSubmatch(cleaned)
	if len(matches) < 2 {
		return nil
	}
	val, err := strconv.Atoi(matches[1])
	if err != nil || val < 0 {
		return nil
	}
	return &val
}

// parseCancellation maps the cancellation badge text to a tri-state bool:
// recognized affirmatives -> true, negatives -> false, anything else -> nil
func parseCancellation(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free cancellation", "yes", "true", "1":
		v := true
		return &v
	case "no", "false", "0", "non-refundable":
		v := false
		return &v
	}
	return nil
}

// parseRoomsLeft extracts the count from badges like "Only 3 rooms left".
// Empty or "unknown" yields nil.
func parseRoomsLeft(raw string) *int {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "unknown") {
		return nil
	}
	matches := intRegex.FindStringSubmatch(cleaned)
	if len(matches) < 2 {
		return nil
	}
	val, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil
	}
	return &val
}

// deriveCity extracts the city from a composite location string: the first
// comma-delimited token, with a trailing postal district stripped
// ("Dublin 2, Dublin" -> "Dublin")
func deriveCity(location string) string {
	city := strings.TrimSpace(location)
	if idx := strings.Index(city, ","); idx != -1 {
		city = strings.TrimSpace(city[:idx])
	}
	city = districtRegex.ReplaceAllString(city, "")
	city = strings.TrimSpace(city)
	if intRegex.FindString(city) == city {
		// A bare number is a district, not a city
		return ""
	}
	return city
}

// popularityIndex computes score * log10(reviewCount+10); it is undefined
// (nil) unless both inputs are present
func popularityIndex(score *float64, reviewCount *int) *float64 {
	if score == nil || reviewCount == nil {
		return nil
	}
	v := *score * math.Log10(float64(*reviewCount)+10)
	return &v
}
