package services

import (
	"fmt"
	"sort"
	"strings"

	"hotel-pipeline/models"
)

// PrintInsightReport formats and prints the insight report to terminal
func PrintInsightReport(report *models.InsightReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("HOTEL MARKET INSIGHTS", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n OVERVIEW\n%s\n", thin)
	fmt.Printf("  Total Hotels            : %d\n", report.TotalHotels)
	fmt.Printf("  Average Price/Night     : €%.2f\n", report.AveragePrice)
	fmt.Printf("  Minimum Price/Night     : €%.2f\n", report.MinPrice)
	fmt.Printf("  Maximum Price/Night     : €%.2f\n", report.MaxPrice)
	fmt.Printf("  Average Review Score    : %.2f/10\n", report.AverageScore)
	fmt.Printf("  Free Cancellation       : %d\n", report.FreeCancellation)

	if report.MostExpensive != nil {
		fmt.Printf("\n MOST EXPENSIVE HOTEL\n%s\n", thin)
		fmt.Printf("  Name     : %s\n", report.MostExpensive.Name)
		fmt.Printf("  Price    : €%.2f/night\n", report.MostExpensive.Price)
		fmt.Printf("  City     : %s\n", report.MostExpensive.City)
		fmt.Printf("  URL      : %s\n", report.MostExpensive.URL)
	}

	if len(report.HotelsByCity) > 0 {
		fmt.Printf("\n HOTELS PER CITY\n%s\n", thin)
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range report.HotelsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		// Count descending, name ascending on ties
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			bar := strings.Repeat("▓", cc.count)
			fmt.Printf("  %-25s %3d  %s\n", cc.city+":", cc.count, bar)
		}
	}

	if len(report.TopRated) > 0 {
		fmt.Printf("\n TOP %d HIGHEST RATED HOTELS\n%s\n", len(report.TopRated), thin)
		for i, h := range report.TopRated {
			fmt.Printf("  %d. %-35s %.1f\n", i+1, truncate(h.Name, 35), *h.Score)
		}
	}

	if len(report.TopPopular) > 0 {
		fmt.Printf("\n TOP %d BY POPULARITY INDEX\n%s\n", len(report.TopPopular), thin)
		for i, h := range report.TopPopular {
			fmt.Printf("  %d. %-35s %.2f\n", i+1, truncate(h.Name, 35), *h.Popularity)
		}
	}

	fmt.Printf("\n%s\n\n", border)
}

// PrintCleanReport prints the row accounting so no partial output goes
// downstream without a total/skipped report
func PrintCleanReport(report *models.CleanReport) {
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n CLEANING AUDIT\n%s\n", thin)
	fmt.Printf("  Raw rows     : %d\n", report.TotalRaw)
	fmt.Printf("  Kept         : %d\n", report.Kept)
	fmt.Printf("  Skipped      : %d\n", report.Skipped)

	if len(report.SkippedBy) > 0 {
		reasons := make([]string, 0, len(report.SkippedBy))
		for reason := range report.SkippedBy {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Printf("    %-28s %d\n", reason+":", report.SkippedBy[models.SkipReason(reason)])
		}
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
