// ABOUTME: Data models for inventory reallocation pooling
// ABOUTME: Room types in, per-type reallocation config, pool and summary out

package models

// RoomTypeRequest is one room type as received over the API
type RoomTypeRequest struct {
	Name      string `json:"name"`
	Count     Number `json:"count"`
	BasePrice Number `json:"basePrice"`
}

// InventoryRequest is the raw request body for the reallocation calculator
type InventoryRequest struct {
	TotalRooms Number            `json:"totalRooms"`
	RoomTypes  []RoomTypeRequest `json:"roomTypes"`
}

// RoomType is a validated room category
type RoomType struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	BasePrice float64 `json:"basePrice"`
}

// InventoryInput is the validated, typed calculator input
type InventoryInput struct {
	TotalRooms int        `json:"totalRooms"`
	RoomTypes  []RoomType `json:"roomTypes"`
}

// ReallocationEntry is a room type annotated with its pooling decision
type ReallocationEntry struct {
	Name             string  `json:"name"`
	Count            int     `json:"count"`
	BasePrice        float64 `json:"basePrice"`
	PriceDiff        float64 `json:"priceDiff"`
	PriceDiffPercent float64 `json:"priceDiffPercent"`
	ShouldReallocate bool    `json:"shouldReallocate"`
	Reason           string  `json:"reason"`
	InPool           bool    `json:"inPool"`
	PoolPercent      float64 `json:"poolPercent"`
	ReallocatedCount int     `json:"reallocatedCount"`
}

// PoolType is a pooled room type's share of the reallocation pool
type PoolType struct {
	Name             string  `json:"name"`
	OriginalCount    int     `json:"originalCount"`
	PoolPercent      float64 `json:"poolPercent"`
	ReallocatedCount int     `json:"reallocatedCount"`
}

// Pool is the shared reallocation inventory
type Pool struct {
	Types     []PoolType `json:"types"`
	TotalSize int        `json:"totalSize"`
}

// InventorySummary gives headline numbers for the calculation
type InventorySummary struct {
	TotalRooms     int    `json:"totalRooms"`
	RoomTypeCount  int    `json:"roomTypeCount"`
	PooledTypes    int    `json:"pooledTypes"`
	PoolSize       int    `json:"poolSize"`
	NonPooledRooms int    `json:"nonPooledRooms"`
	BaseCategory   string `json:"baseCategory"`
}

// InventoryResult is the full calculator output
type InventoryResult struct {
	ReallocationConfig []ReallocationEntry `json:"reallocationConfig"`
	Recommendations    []Recommendation    `json:"recommendations"`
	Pool               Pool                `json:"pool"`
	Summary            InventorySummary    `json:"summary"`
}

// InventoryResponse wraps the result for the HTTP API
type InventoryResponse struct {
	Success bool `json:"success"`
	InventoryResult
}
