// ABOUTME: Occupancy-based pricing calculator that splits inventory into rate slabs
// ABOUTME: Produces per-room increments, a full rate table, and pricing recommendations

package services

import (
	"fmt"
	"time"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

const (
	// Properties above this many rooms get the finer five-slab layout.
	fiveSlabThreshold = 35
	// The second slab always ends at room 2 or later.
	minSecondSlabEnd = 2

	baseSlabDescription = "Base rate - No increment for first booking"
	abovePeakDescription = "Above peak - Premium pricing"
)

// band is one increment-bearing slab before rates are attached.
type band struct {
	start, end  int
	rooms       int
	share       float64
	description string
}

// OccupancyCalculator derives rate slabs from a property's occupancy profile.
type OccupancyCalculator struct{}

func NewOccupancyCalculator() *OccupancyCalculator {
	return &OccupancyCalculator{}
}

// SlabCount returns the number of slabs used for an inventory size,
// including the base slab.
func SlabCount(inventory int) int {
	if inventory > fiveSlabThreshold {
		return 5
	}
	return 4
}

// Calculate builds slabs, the rate table and recommendations for the input.
func (c *OccupancyCalculator) Calculate(input models.OccupancyInput) (models.OccupancyResult, error) {
	if err := ValidateOccupancyInput(input); err != nil {
		return models.OccupancyResult{}, err
	}

	slabs := buildSlabs(input, buildBands(input))

	return models.OccupancyResult{
		Slabs:           slabs,
		RatesData:       buildRateTable(input, slabs),
		Recommendations: occupancyRecommendations(input),
		Config: models.OccupancyConfig{
			Inventory:      input.Inventory,
			UsualOccupancy: input.UsualOccupancy,
			PeakOccupancy:  input.PeakOccupancy,
			BaseRate:       input.BaseRate,
			MaxRate:        input.MaxRate,
			NumSlabs:       SlabCount(input.Inventory),
		},
	}, nil
}

// buildBands computes slab boundaries. Boundaries are not forced to be
// ordered: a low usual occupancy on a small property can produce a band
// whose end precedes its start, which then carries a zero increment.
func buildBands(input models.OccupancyInput) []band {
	inv := input.Inventory
	total := float64(inv)

	belowUsual := input.UsualOccupancy - 10
	usualEnd := max(minSecondSlabEnd, int(roundHalfUp(belowUsual/100*total)))
	peakEnd := int(roundHalfUp(input.PeakOccupancy / 100 * total))

	if SlabCount(inv) == 4 {
		return []band{
			{
				start: 2, end: usualEnd, rooms: usualEnd - 2 + 1, share: 0.20,
				description: fmt.Sprintf("Below usual occupancy (%s%%) - Gradual increase", formatNumber(belowUsual)),
			},
			{
				start: usualEnd + 1, end: peakEnd, rooms: peakEnd - usualEnd, share: 0.35,
				description: fmt.Sprintf("Usual to peak occupancy (%s%%) - Moderate increase", formatNumber(input.PeakOccupancy)),
			},
			{
				start: peakEnd + 1, end: inv, rooms: inv - peakEnd, share: 0.45,
				description: abovePeakDescription,
			},
		}
	}

	lowOcc := input.UsualOccupancy - 20
	lowEnd := int(roundHalfUp(lowOcc / 100 * total))
	return []band{
		{
			start: 2, end: lowEnd, rooms: lowEnd - 2 + 1, share: 0.10,
			description: fmt.Sprintf("Low occupancy (below %s%%) - Minimal increase", formatNumber(lowOcc)),
		},
		{
			start: lowEnd + 1, end: usualEnd, rooms: usualEnd - lowEnd, share: 0.20,
			description: fmt.Sprintf("Approaching usual (%s%%) - Light increase", formatNumber(belowUsual)),
		},
		{
			start: usualEnd + 1, end: peakEnd, rooms: peakEnd - usualEnd, share: 0.30,
			description: fmt.Sprintf("Usual to peak (%s%%) - Moderate increase", formatNumber(input.PeakOccupancy)),
		},
		{
			start: peakEnd + 1, end: inv, rooms: inv - peakEnd, share: 0.40,
			description: abovePeakDescription,
		},
	}
}

// buildSlabs prepends the base slab and attaches increments and rate ranges.
func buildSlabs(input models.OccupancyInput, bands []band) []models.Slab {
	spread := input.MaxRate - input.BaseRate

	slabs := make([]models.Slab, 0, len(bands)+1)
	slabs = append(slabs, models.Slab{Start: 0, End: 1, Description: baseSlabDescription})
	for _, b := range bands {
		var inc float64
		if b.rooms > 0 {
			inc = roundHalfUp(spread * b.share / float64(b.rooms))
		}
		slabs = append(slabs, models.Slab{Start: b.start, End: b.end, Increment: inc, Description: b.description})
	}

	rateStart := input.BaseRate
	for i := range slabs {
		s := &slabs[i]
		rooms := s.End - s.Start + 1
		increase := s.Increment * float64(rooms)

		s.SlabNumber = i + 1
		s.StepPerRoom = s.Increment
		s.RoomsInSlab = rooms
		s.TotalIncrease = roundHalfUp(increase)
		s.RateStart = roundHalfUp(rateStart)
		s.RateEnd = roundHalfUp(rateStart + increase)

		rateStart += increase
	}
	return slabs
}

// slabFor returns the index of the first slab containing occ, or -1.
func slabFor(slabs []models.Slab, occ int) int {
	for i, s := range slabs {
		if occ >= s.Start && occ <= s.End {
			return i
		}
	}
	return -1
}

// buildRateTable walks occupancy from 0 to inventory, adding the increment
// of the owning slab for every room sold after the first.
func buildRateTable(input models.OccupancyInput, slabs []models.Slab) []models.RateTableEntry {
	rates := make([]models.RateTableEntry, 0, input.Inventory+1)
	current := input.BaseRate
	for occ := 0; occ <= input.Inventory; occ++ {
		idx := slabFor(slabs, occ)
		if idx >= 0 && occ > 0 {
			current += slabs[idx].Increment
		}
		rates = append(rates, models.RateTableEntry{
			Occupancy: occ,
			Rate:      roundHalfUp(current),
			Slab:      idx + 1,
		})
	}
	return rates
}

func occupancyRecommendations(input models.OccupancyInput) []models.Recommendation {
	recs := []models.Recommendation{}

	if input.PeakOccupancy-input.UsualOccupancy > 30 {
		recs = append(recs, models.Recommendation{
			Type: models.RecommendationInsight,
			Icon: "🔍",
			Message: fmt.Sprintf("Your peak occupancy (%s%%) is significantly higher than usual (%s%%). Consider more aggressive pricing during peak periods.",
				formatNumber(input.PeakOccupancy), formatNumber(input.UsualOccupancy)),
		})
	}
	if input.UsualOccupancy < 50 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationSuggestion,
			Icon:    "💭",
			Message: "With usual occupancy below 50%, focus on competitive base rates to drive volume. Consider promotional rates for low-occupancy periods.",
		})
	}
	if input.UsualOccupancy > 75 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationOpportunity,
			Icon:    "🎯",
			Message: "High usual occupancy indicates strong demand. You have room to increase base rates or be more aggressive with occupancy-based increments.",
		})
	}
	if input.Inventory < 20 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationStrategy,
			Icon:    "📋",
			Message: "Small property with limited inventory. Each room sold significantly impacts remaining availability - consider steeper increments in upper slabs.",
		})
	}
	if input.Inventory > 50 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationStrategy,
			Icon:    "📋",
			Message: "Large property with good inventory buffer. You can afford more gradual pricing to maintain competitiveness in early slabs.",
		})
	}
	return recs
}

// BuildOccupancyExport converts a calculation into the RMS import document.
func BuildOccupancyExport(result models.OccupancyResult, generatedAt time.Time) models.OccupancyExport {
	slabs := make([]models.ExportSlab, 0, len(result.Slabs))
	for _, s := range result.Slabs {
		slabs = append(slabs, models.ExportSlab{
			Start:     s.Start,
			End:       s.End,
			Increment: s.Increment,
			RateStart: s.RateStart,
			RateEnd:   s.RateEnd,
		})
	}
	return models.OccupancyExport{
		OccupancyPricing: models.OccupancyPricingExport{
			Enabled:   true,
			BaseRate:  result.Config.BaseRate,
			MaxRate:   result.Config.MaxRate,
			Inventory: result.Config.Inventory,
			Slabs:     slabs,
		},
		Metadata: models.ExportMetadata{
			UsualOccupancy: result.Config.UsualOccupancy,
			PeakOccupancy:  result.Config.PeakOccupancy,
			NumSlabs:       result.Config.NumSlabs,
			GeneratedAt:    generatedAt.UTC(),
		},
	}
}
