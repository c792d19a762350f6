package services

import (
	"sort"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"
)

// InsightService computes analytics from the cleaned dataset
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes all aggregate views from a slice of clean hotels
func (s *InsightService) Generate(hotels []*models.Hotel) *models.InsightReport {
	report := &models.InsightReport{
		HotelsByCity: make(map[string]int),
	}

	if len(hotels) == 0 {
		s.logger.Warn("No hotels to generate insights from")
		return report
	}

	var totalPrice, totalScore float64
	scoredCount := 0
	report.MinPrice = hotels[0].Price
	report.MaxPrice = hotels[0].Price

	for _, h := range hotels {
		report.TotalHotels++

		totalPrice += h.Price
		if h.Price < report.MinPrice {
			report.MinPrice = h.Price
		}
		if h.Price >= report.MaxPrice {
			if h.Price > report.MaxPrice || report.MostExpensive == nil {
				report.MostExpensive = h
			}
			report.MaxPrice = h.Price
		}

		if h.Score != nil {
			totalScore += *h.Score
			scoredCount++
		}

		if h.FreeCancellation != nil && *h.FreeCancellation {
			report.FreeCancellation++
		}

		report.HotelsByCity[h.City]++
	}

	report.AveragePrice = totalPrice / float64(report.TotalHotels)
	if scoredCount > 0 {
		report.AverageScore = totalScore / float64(scoredCount)
	}

	report.TopRated = topBy(hotels, 5, func(h *models.Hotel) *float64 { return h.Score })
	report.TopPopular = topBy(hotels, 5, func(h *models.Hotel) *float64 { return h.Popularity })

	return report
}

// topBy returns up to n hotels with the highest value of the given metric,
// skipping hotels where the metric is unset. Ties break by name so the
// ordering is stable across runs.
func topBy(hotels []*models.Hotel, n int, metric func(*models.Hotel) *float64) []*models.Hotel {
	ranked := make([]*models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if metric(h) != nil {
			ranked = append(ranked, h)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := *metric(ranked[i]), *metric(ranked[j])
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
