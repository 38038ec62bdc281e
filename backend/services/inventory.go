// ABOUTME: Inventory reallocation calculator that pools similarly priced room types
// ABOUTME: Classifies room types by price gap to the cheapest and splits the pool by percentage

package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

// Price gap bands, as a percentage above the base category.
const (
	similarGapPercent     = 15
	moderateGapPercent    = 30
	significantGapPercent = 50
)

// Pool share tuning.
const (
	basePriorityFactor = 0.3
	maxBasePriority    = 20
	maxBasePercent     = 80
	middleDampening    = 0.8
	minMiddlePercent   = 10
)

// InventoryCalculator decides which room types share a reallocation pool.
type InventoryCalculator struct{}

func NewInventoryCalculator() *InventoryCalculator {
	return &InventoryCalculator{}
}

// Calculate classifies every room type and sizes the reallocation pool.
func (c *InventoryCalculator) Calculate(input models.InventoryInput) (models.InventoryResult, error) {
	if err := ValidateInventoryInput(input); err != nil {
		return models.InventoryResult{}, err
	}

	sorted := make([]models.RoomType, len(input.RoomTypes))
	copy(sorted, input.RoomTypes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BasePrice < sorted[j].BasePrice
	})
	base := sorted[0]

	entries := make([]models.ReallocationEntry, 0, len(sorted))
	recs := []models.Recommendation{}
	for i, rt := range sorted {
		entry, rec := classifyRoomType(i, rt, base)
		entries = append(entries, entry)
		if rec != nil {
			recs = append(recs, *rec)
		}
	}

	var pooled []int
	poolSize := 0
	for i, e := range entries {
		if e.ShouldReallocate {
			pooled = append(pooled, i)
			poolSize += e.Count
		}
	}
	allocatePool(entries, pooled, poolSize)

	pool := models.Pool{Types: make([]models.PoolType, 0, len(pooled)), TotalSize: poolSize}
	for _, idx := range pooled {
		e := entries[idx]
		pool.Types = append(pool.Types, models.PoolType{
			Name:             e.Name,
			OriginalCount:    e.Count,
			PoolPercent:      e.PoolPercent,
			ReallocatedCount: e.ReallocatedCount,
		})
	}

	recs = poolRecommendations(recs, entries, pool, len(sorted))

	return models.InventoryResult{
		ReallocationConfig: entries,
		Recommendations:    recs,
		Pool:               pool,
		Summary: models.InventorySummary{
			TotalRooms:     input.TotalRooms,
			RoomTypeCount:  len(input.RoomTypes),
			PooledTypes:    len(pooled),
			PoolSize:       poolSize,
			NonPooledRooms: input.TotalRooms - poolSize,
			BaseCategory:   base.Name,
		},
	}, nil
}

// classifyRoomType places a room type into a price gap band. Types priced
// well above the base come with a caution or warning recommendation.
func classifyRoomType(index int, rt, base models.RoomType) (models.ReallocationEntry, *models.Recommendation) {
	diff := rt.BasePrice - base.BasePrice
	var diffPercent float64
	if base.BasePrice > 0 {
		diffPercent = roundHalfUp(diff / base.BasePrice * 100)
	}
	pct := formatNumber(diffPercent)

	entry := models.ReallocationEntry{
		Name:             rt.Name,
		Count:            rt.Count,
		BasePrice:        rt.BasePrice,
		PriceDiff:        diff,
		PriceDiffPercent: diffPercent,
	}

	var rec *models.Recommendation
	switch {
	case index == 0:
		entry.ShouldReallocate = true
		entry.Reason = "Base category - primary room type, gets priority in pool allocation"
	case diffPercent <= similarGapPercent:
		entry.ShouldReallocate = true
		entry.Reason = fmt.Sprintf("Only %s%% price difference - similar value perception, ideal for pooling", pct)
	case diffPercent <= moderateGapPercent:
		entry.ShouldReallocate = true
		entry.Reason = fmt.Sprintf("%s%% price difference - moderate gap, can pool but monitor guest expectations", pct)
	case diffPercent <= significantGapPercent:
		entry.Reason = fmt.Sprintf("%s%% price difference - significant gap, may devalue premium positioning", pct)
		rec = &models.Recommendation{
			Type:    models.RecommendationCaution,
			Icon:    "⚠️",
			Message: fmt.Sprintf("%s: %s%% higher than base. Including in pool may train guests to expect free upgrades.", rt.Name, pct),
		}
	default:
		entry.Reason = fmt.Sprintf("%s%% price difference - too large, will erode premium brand value", pct)
		rec = &models.Recommendation{
			Type:    models.RecommendationWarning,
			Icon:    "🚫",
			Message: fmt.Sprintf("%s: %s%% premium. Keep OUT of reallocation pool to protect premium positioning.", rt.Name, pct),
		}
	}
	entry.InPool = entry.ShouldReallocate
	return entry, rec
}

// allocatePool assigns pool percentages and reallocated counts to the pooled
// entries, in price order. The base type gets a priority bonus, middle types
// are dampened but capped at what is left, and the last type takes whatever
// percentage remains, so a lone pooled type gets 100%. Rounding drift in the
// counts is absorbed by the base type.
func allocatePool(entries []models.ReallocationEntry, pooled []int, poolSize int) {
	if len(pooled) == 0 || poolSize == 0 {
		return
	}

	remaining := 100.0
	allocated := 0
	for i, idx := range pooled {
		e := &entries[idx]
		natural := roundHalfUp(float64(e.Count) / float64(poolSize) * 100)

		var percent float64
		switch {
		case i == len(pooled)-1:
			percent = remaining
		case i == 0:
			bonus := math.Min(maxBasePriority, roundHalfUp((100-natural)*basePriorityFactor))
			percent = math.Min(natural+bonus, maxBasePercent)
		default:
			percent = math.Min(math.Max(minMiddlePercent, roundHalfUp(natural*middleDampening)), remaining)
		}
		remaining -= percent

		e.PoolPercent = percent
		e.ReallocatedCount = int(roundHalfUp(percent / 100 * float64(poolSize)))
		allocated += e.ReallocatedCount
	}

	if allocated != poolSize {
		entries[pooled[0]].ReallocatedCount += poolSize - allocated
	}
}

func poolRecommendations(recs []models.Recommendation, entries []models.ReallocationEntry, pool models.Pool, roomTypeCount int) []models.Recommendation {
	switch {
	case len(pool.Types) >= 2:
		names := make([]string, 0, len(pool.Types))
		shares := make([]string, 0, len(pool.Types))
		for _, p := range pool.Types {
			names = append(names, p.Name)
			shares = append(shares, fmt.Sprintf("%s → %d (%s%%)", p.Name, p.ReallocatedCount, formatNumber(p.PoolPercent)))
		}
		created := models.Recommendation{
			Type:    models.RecommendationSuccess,
			Icon:    "✅",
			Message: fmt.Sprintf("Reallocation Pool Created: %s = %d rooms total", strings.Join(names, " + "), pool.TotalSize),
		}
		recs = append([]models.Recommendation{created}, recs...)
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationInfo,
			Icon:    "🔄",
			Message: "Pool will dynamically redistribute: " + strings.Join(shares, ", "),
		})
	case len(pool.Types) == 1:
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationInfo,
			Icon:    "ℹ️",
			Message: "Only one room type eligible for pooling. Add another similar-priced room type to enable reallocation.",
		})
	}

	if roomTypeCount == 1 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationInfo,
			Icon:    "ℹ️",
			Message: "Single room type property - inventory reallocation not applicable. Focus on occupancy-based pricing.",
		})
	}

	var kept []string
	keptRooms := 0
	for _, e := range entries {
		if !e.ShouldReallocate {
			kept = append(kept, e.Name)
			keptRooms += e.Count
		}
	}
	if len(kept) > 0 {
		recs = append(recs, models.Recommendation{
			Type:    models.RecommendationInsight,
			Icon:    "💎",
			Message: fmt.Sprintf("%s kept separate - premium inventory protected (%d rooms)", strings.Join(kept, ", "), keptRooms),
		})
	}
	return recs
}
