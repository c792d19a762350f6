package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pipeline/models"
	"hotel-pipeline/utils"
)

func TestInsightService_Generate(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	hotels := []*models.Hotel{
		{
			Name: "Cheap Stay", City: "Galway", Price: 80,
			Score: floatPtr(6.0), ReviewCount: intPtr(40),
			Popularity: popularityIndex(floatPtr(6.0), intPtr(40)),
			FreeCancellation: boolPtr(true),
		},
		{
			Name: "Mid Hotel", City: "Dublin", Price: 150,
			Score: floatPtr(8.5), ReviewCount: intPtr(120),
			Popularity: popularityIndex(floatPtr(8.5), intPtr(120)),
			FreeCancellation: boolPtr(false),
		},
		{
			Name: "Grand Palace", City: "Dublin", Price: 400,
			Score: floatPtr(9.2), ReviewCount: intPtr(2500),
			Popularity: popularityIndex(floatPtr(9.2), intPtr(2500)),
		},
		{
			// No score: excluded from score average and both rankings
			Name: "New Opening", City: "Cork", Price: 120,
		},
	}

	report := svc.Generate(hotels)

	assert.Equal(t, 4, report.TotalHotels)
	assert.Equal(t, 80.0, report.MinPrice)
	assert.Equal(t, 400.0, report.MaxPrice)
	assert.InDelta(t, 187.5, report.AveragePrice, 1e-9)
	assert.InDelta(t, (6.0+8.5+9.2)/3, report.AverageScore, 1e-9)
	assert.Equal(t, 1, report.FreeCancellation)

	require.NotNil(t, report.MostExpensive)
	assert.Equal(t, "Grand Palace", report.MostExpensive.Name)

	assert.Equal(t, map[string]int{"Dublin": 2, "Galway": 1, "Cork": 1}, report.HotelsByCity)

	require.Len(t, report.TopRated, 3)
	assert.Equal(t, "Grand Palace", report.TopRated[0].Name)
	assert.Equal(t, "Mid Hotel", report.TopRated[1].Name)

	require.Len(t, report.TopPopular, 3)
	assert.Equal(t, "Grand Palace", report.TopPopular[0].Name)
}

func TestInsightService_Generate_Empty(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())

	report := svc.Generate(nil)

	assert.Equal(t, 0, report.TotalHotels)
	assert.Empty(t, report.HotelsByCity)
	assert.Nil(t, report.MostExpensive)
}

func TestTopBy_TieBreaksByName(t *testing.T) {
	hotels := []*models.Hotel{
		{Name: "Zeta", Score: floatPtr(8.0)},
		{Name: "Alpha", Score: floatPtr(8.0)},
		{Name: "Mid", Score: floatPtr(9.0)},
	}

	top := topBy(hotels, 5, func(h *models.Hotel) *float64 { return h.Score })

	require.Len(t, top, 3)
	assert.Equal(t, "Mid", top[0].Name)
	assert.Equal(t, "Alpha", top[1].Name)
	assert.Equal(t, "Zeta", top[2].Name)
}
