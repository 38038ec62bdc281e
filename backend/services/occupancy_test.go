// ABOUTME: Tests for the occupancy slab calculator
// ABOUTME: Covers slab boundaries, rate table walk, recommendations and export

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

func calculateOccupancy(t *testing.T, in models.OccupancyInput) models.OccupancyResult {
	t.Helper()
	result, err := NewOccupancyCalculator().Calculate(in)
	require.NoError(t, err)
	return result
}

func TestOccupancyCalculator_FourSlabProperty(t *testing.T) {
	result := calculateOccupancy(t, models.OccupancyInput{
		Inventory: 30, UsualOccupancy: 60, PeakOccupancy: 90, BaseRate: 2000, MaxRate: 5000,
	})

	require.Len(t, result.Slabs, 4)
	assert.Equal(t, 4, result.Config.NumSlabs)

	type want struct {
		start, end int
		increment  float64
		rateStart  float64
		rateEnd    float64
		desc       string
	}
	expected := []want{
		{0, 1, 0, 2000, 2000, "Base rate - No increment for first booking"},
		{2, 15, 43, 2000, 2602, "Below usual occupancy (50%) - Gradual increase"},
		{16, 27, 88, 2602, 3658, "Usual to peak occupancy (90%) - Moderate increase"},
		{28, 30, 450, 3658, 5008, "Above peak - Premium pricing"},
	}
	for i, w := range expected {
		s := result.Slabs[i]
		assert.Equal(t, i+1, s.SlabNumber)
		assert.Equal(t, w.start, s.Start, "slab %d start", i+1)
		assert.Equal(t, w.end, s.End, "slab %d end", i+1)
		assert.Equal(t, w.increment, s.Increment, "slab %d increment", i+1)
		assert.Equal(t, w.increment, s.StepPerRoom)
		assert.Equal(t, w.rateStart, s.RateStart, "slab %d rateStart", i+1)
		assert.Equal(t, w.rateEnd, s.RateEnd, "slab %d rateEnd", i+1)
		assert.Equal(t, w.desc, s.Description)
	}
	assert.Equal(t, 14, result.Slabs[1].RoomsInSlab)
	assert.Equal(t, float64(602), result.Slabs[1].TotalIncrease)

	require.Len(t, result.RatesData, 31)
	assert.Equal(t, float64(2000), result.RatesData[0].Rate)
	assert.Equal(t, float64(2000), result.RatesData[1].Rate)
	assert.Equal(t, float64(2043), result.RatesData[2].Rate)
	assert.Equal(t, float64(2602), result.RatesData[15].Rate)
	assert.Equal(t, float64(3658), result.RatesData[27].Rate)
	assert.Equal(t, float64(5008), result.RatesData[30].Rate)
	assert.Equal(t, 2, result.RatesData[15].Slab)
	assert.Equal(t, 4, result.RatesData[30].Slab)

	assert.Empty(t, result.Recommendations)
	assert.NotNil(t, result.Recommendations)
}

func TestOccupancyCalculator_FiveSlabProperty(t *testing.T) {
	result := calculateOccupancy(t, models.OccupancyInput{
		Inventory: 100, UsualOccupancy: 70, PeakOccupancy: 90, BaseRate: 1000, MaxRate: 3000,
	})

	require.Len(t, result.Slabs, 5)
	assert.Equal(t, 5, result.Config.NumSlabs)

	assert.Equal(t, []int{0, 2, 51, 61, 91}, slabStarts(result.Slabs))
	assert.Equal(t, []float64{0, 4, 40, 20, 80}, slabIncrements(result.Slabs))
	assert.Equal(t, "Low occupancy (below 50%) - Minimal increase", result.Slabs[1].Description)
	assert.Equal(t, "Approaching usual (60%) - Light increase", result.Slabs[2].Description)
	assert.Equal(t, "Usual to peak (90%) - Moderate increase", result.Slabs[3].Description)
	assert.Equal(t, "Above peak - Premium pricing", result.Slabs[4].Description)

	assert.Equal(t, float64(2996), result.RatesData[100].Rate)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, models.RecommendationStrategy, result.Recommendations[0].Type)
	assert.Contains(t, result.Recommendations[0].Message, "Large property")
}

func TestSlabCount_Threshold(t *testing.T) {
	assert.Equal(t, 4, SlabCount(1))
	assert.Equal(t, 4, SlabCount(35))
	assert.Equal(t, 5, SlabCount(36))
	assert.Equal(t, 5, SlabCount(MaxInventory))
}

func TestOccupancyCalculator_RateTableProperties(t *testing.T) {
	inputs := []models.OccupancyInput{
		{Inventory: 30, UsualOccupancy: 60, PeakOccupancy: 90, BaseRate: 2000, MaxRate: 5000},
		{Inventory: 35, UsualOccupancy: 65, PeakOccupancy: 85, BaseRate: 1500, MaxRate: 4000},
		{Inventory: 36, UsualOccupancy: 65, PeakOccupancy: 85, BaseRate: 1500, MaxRate: 4000},
		{Inventory: 120, UsualOccupancy: 55, PeakOccupancy: 95, BaseRate: 89.5, MaxRate: 249.99},
		{Inventory: 50, UsualOccupancy: 80, PeakOccupancy: 80, BaseRate: 100, MaxRate: 100},
	}
	for _, in := range inputs {
		result := calculateOccupancy(t, in)

		require.Len(t, result.RatesData, in.Inventory+1)
		assert.Equal(t, roundHalfUp(in.BaseRate), result.RatesData[0].Rate)
		for occ := 1; occ <= in.Inventory; occ++ {
			assert.Equal(t, occ, result.RatesData[occ].Occupancy)
			assert.GreaterOrEqual(t, result.RatesData[occ].Rate, result.RatesData[occ-1].Rate,
				"rate must not drop at occupancy %d (inventory %d)", occ, in.Inventory)
		}

		// Slabs tile [0, inventory] with no gaps or overlaps.
		assert.Equal(t, 0, result.Slabs[0].Start)
		assert.Equal(t, in.Inventory, result.Slabs[len(result.Slabs)-1].End)
		for i := 1; i < len(result.Slabs); i++ {
			assert.Equal(t, result.Slabs[i-1].End+1, result.Slabs[i].Start)
		}
		for _, s := range result.Slabs {
			assert.GreaterOrEqual(t, s.Increment, float64(0))
		}
	}
}

func TestOccupancyCalculator_InvertedBandsKeepZeroIncrement(t *testing.T) {
	result := calculateOccupancy(t, models.OccupancyInput{
		Inventory: 10, UsualOccupancy: 10, PeakOccupancy: 10, BaseRate: 100, MaxRate: 200,
	})

	// Second slab is pinned to end at room 2 while peak ends at room 1.
	inverted := result.Slabs[2]
	assert.Equal(t, 3, inverted.Start)
	assert.Equal(t, 1, inverted.End)
	assert.Equal(t, float64(0), inverted.Increment)
	assert.Equal(t, -1, inverted.RoomsInSlab)

	assert.Equal(t, float64(20), result.Slabs[1].Increment)
	assert.Equal(t, float64(5), result.Slabs[3].Increment)
	assert.Equal(t, float64(120), result.RatesData[2].Rate)
	assert.Equal(t, float64(160), result.RatesData[10].Rate)
}

func TestOccupancyCalculator_Recommendations(t *testing.T) {
	tests := []struct {
		name  string
		input models.OccupancyInput
		want  []models.RecommendationType
	}{
		{
			name:  "wide gap, low usual, small property",
			input: models.OccupancyInput{Inventory: 10, UsualOccupancy: 40, PeakOccupancy: 80, BaseRate: 100, MaxRate: 200},
			want:  []models.RecommendationType{models.RecommendationInsight, models.RecommendationSuggestion, models.RecommendationStrategy},
		},
		{
			name:  "high usual occupancy",
			input: models.OccupancyInput{Inventory: 30, UsualOccupancy: 80, PeakOccupancy: 95, BaseRate: 100, MaxRate: 200},
			want:  []models.RecommendationType{models.RecommendationOpportunity},
		},
		{
			name:  "gap of exactly 30 is not flagged",
			input: models.OccupancyInput{Inventory: 30, UsualOccupancy: 60, PeakOccupancy: 90, BaseRate: 100, MaxRate: 200},
			want:  []models.RecommendationType{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculateOccupancy(t, tt.input)
			got := make([]models.RecommendationType, 0, len(result.Recommendations))
			for _, r := range result.Recommendations {
				got = append(got, r.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	result := calculateOccupancy(t, tests[0].input)
	assert.Equal(t, "🔍", result.Recommendations[0].Icon)
	assert.Equal(t,
		"Your peak occupancy (80%) is significantly higher than usual (40%). Consider more aggressive pricing during peak periods.",
		result.Recommendations[0].Message)
}

func TestOccupancyCalculator_Idempotent(t *testing.T) {
	in := models.OccupancyInput{Inventory: 42, UsualOccupancy: 63.5, PeakOccupancy: 88, BaseRate: 1799, MaxRate: 4200}
	assert.Equal(t, calculateOccupancy(t, in), calculateOccupancy(t, in))
}

func TestOccupancyCalculator_RejectsInvalidInput(t *testing.T) {
	_, err := NewOccupancyCalculator().Calculate(models.OccupancyInput{
		Inventory: 30, UsualOccupancy: 80, PeakOccupancy: 60, BaseRate: 100, MaxRate: 200,
	})
	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "peakOccupancy", inputErr.Field)
}

func TestBuildOccupancyExport(t *testing.T) {
	result := calculateOccupancy(t, models.OccupancyInput{
		Inventory: 30, UsualOccupancy: 60, PeakOccupancy: 90, BaseRate: 2000, MaxRate: 5000,
	})
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	export := BuildOccupancyExport(result, at)

	assert.True(t, export.OccupancyPricing.Enabled)
	assert.Equal(t, float64(2000), export.OccupancyPricing.BaseRate)
	assert.Equal(t, float64(5000), export.OccupancyPricing.MaxRate)
	assert.Equal(t, 30, export.OccupancyPricing.Inventory)
	require.Len(t, export.OccupancyPricing.Slabs, len(result.Slabs))
	for i, s := range export.OccupancyPricing.Slabs {
		assert.Equal(t, result.Slabs[i].Start, s.Start)
		assert.Equal(t, result.Slabs[i].End, s.End)
		assert.Equal(t, result.Slabs[i].Increment, s.Increment)
		assert.Equal(t, result.Slabs[i].RateStart, s.RateStart)
		assert.Equal(t, result.Slabs[i].RateEnd, s.RateEnd)
	}

	assert.Equal(t, float64(60), export.Metadata.UsualOccupancy)
	assert.Equal(t, float64(90), export.Metadata.PeakOccupancy)
	assert.Equal(t, 4, export.Metadata.NumSlabs)
	assert.Equal(t, time.UTC, export.Metadata.GeneratedAt.Location())
	assert.True(t, at.Equal(export.Metadata.GeneratedAt))
}

func slabStarts(slabs []models.Slab) []int {
	out := make([]int, len(slabs))
	for i, s := range slabs {
		out[i] = s.Start
	}
	return out
}

func slabIncrements(slabs []models.Slab) []float64 {
	out := make([]float64, len(slabs))
	for i, s := range slabs {
		out[i] = s.Increment
	}
	return out
}
