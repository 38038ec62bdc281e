// ABOUTME: Data models for occupancy-based rate slab calculation
// ABOUTME: Request body, validated input, slabs, rate table, and export document

package models

import "time"

// OccupancyRequest is the raw request body for the occupancy calculator
type OccupancyRequest struct {
	Inventory      Number `json:"inventory"`
	UsualOccupancy Number `json:"usualOccupancy"`
	PeakOccupancy  Number `json:"peakOccupancy"`
	BaseRate       Number `json:"baseRate"`
	MaxRate        Number `json:"maxRate"`
}

// OccupancyInput is the validated, typed calculator input
type OccupancyInput struct {
	Inventory      int     `json:"inventory"`
	UsualOccupancy float64 `json:"usualOccupancy"`
	PeakOccupancy  float64 `json:"peakOccupancy"`
	BaseRate       float64 `json:"baseRate"`
	MaxRate        float64 `json:"maxRate"`
}

// Slab is a contiguous range of rooms sold sharing one per-room increment
type Slab struct {
	SlabNumber    int     `json:"slabNumber"`
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Increment     float64 `json:"increment"`
	StepPerRoom   float64 `json:"stepPerRoom"`
	Description   string  `json:"description"`
	RoomsInSlab   int     `json:"roomsInSlab"`
	TotalIncrease float64 `json:"totalIncrease"`
	RateStart     float64 `json:"rateStart"`
	RateEnd       float64 `json:"rateEnd"`
}

// RateTableEntry is the rate charged once Occupancy rooms are sold
type RateTableEntry struct {
	Occupancy int     `json:"occupancy"`
	Rate      float64 `json:"rate"`
	Slab      int     `json:"slab"`
}

// OccupancyConfig echoes the inputs together with the chosen slab count
type OccupancyConfig struct {
	Inventory      int     `json:"inventory"`
	UsualOccupancy float64 `json:"usualOccupancy"`
	PeakOccupancy  float64 `json:"peakOccupancy"`
	BaseRate       float64 `json:"baseRate"`
	MaxRate        float64 `json:"maxRate"`
	NumSlabs       int     `json:"numSlabs"`
}

// OccupancyResult is the full calculator output
type OccupancyResult struct {
	Slabs           []Slab           `json:"slabs"`
	RatesData       []RateTableEntry `json:"ratesData"`
	Recommendations []Recommendation `json:"recommendations"`
	Config          OccupancyConfig  `json:"config"`
}

// OccupancyResponse wraps the result for the HTTP API
type OccupancyResponse struct {
	Success bool `json:"success"`
	OccupancyResult
}

// ExportSlab is a slab as consumed by an RMS import
type ExportSlab struct {
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Increment float64 `json:"increment"`
	RateStart float64 `json:"rateStart"`
	RateEnd   float64 `json:"rateEnd"`
}

// OccupancyPricingExport is the occupancyPricing section of an export
type OccupancyPricingExport struct {
	Enabled   bool         `json:"enabled"`
	BaseRate  float64      `json:"baseRate"`
	MaxRate   float64      `json:"maxRate"`
	Inventory int          `json:"inventory"`
	Slabs     []ExportSlab `json:"slabs"`
}

// ExportMetadata describes where an export came from
type ExportMetadata struct {
	UsualOccupancy float64   `json:"usualOccupancy"`
	PeakOccupancy  float64   `json:"peakOccupancy"`
	NumSlabs       int       `json:"numSlabs"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// OccupancyExport is the RMS-compatible configuration document
type OccupancyExport struct {
	OccupancyPricing OccupancyPricingExport `json:"occupancyPricing"`
	Metadata         ExportMetadata         `json:"metadata"`
}
