// ABOUTME: Request parsing and validation for the occupancy and inventory calculators
// ABOUTME: Converts lenient JSON numbers into typed inputs and reports the offending field

package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

const (
	// MsgOccupancyFieldsRequired is returned when any occupancy field is absent or zero.
	MsgOccupancyFieldsRequired = "All fields are required"
	// MsgInventoryFieldsRequired is returned when total rooms or room types are absent.
	MsgInventoryFieldsRequired = "Total rooms and room types are required"

	// MaxInventory bounds the rate table length.
	MaxInventory = 500
)

// InvalidInputError reports a request field that failed validation.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

func isWhole(v float64) bool {
	return v == math.Trunc(v)
}

// ParseOccupancyRequest converts a decoded request body into calculator input.
// Absent or zero fields yield MsgOccupancyFieldsRequired for the first such field.
func ParseOccupancyRequest(req models.OccupancyRequest) (models.OccupancyInput, error) {
	fields := []struct {
		name string
		num  models.Number
	}{
		{"inventory", req.Inventory},
		{"usualOccupancy", req.UsualOccupancy},
		{"peakOccupancy", req.PeakOccupancy},
		{"baseRate", req.BaseRate},
		{"maxRate", req.MaxRate},
	}
	for _, f := range fields {
		if f.num.Missing() {
			return models.OccupancyInput{}, &InvalidInputError{Field: f.name, Message: MsgOccupancyFieldsRequired}
		}
		if !f.num.Valid() {
			return models.OccupancyInput{}, invalid(f.name, "must be a number, got %q", sanitizeForLog(f.num.Raw))
		}
	}
	if !isWhole(req.Inventory.Value) {
		return models.OccupancyInput{}, invalid("inventory", "must be a whole number of rooms")
	}

	input := models.OccupancyInput{
		Inventory:      int(req.Inventory.Value),
		UsualOccupancy: req.UsualOccupancy.Value,
		PeakOccupancy:  req.PeakOccupancy.Value,
		BaseRate:       req.BaseRate.Value,
		MaxRate:        req.MaxRate.Value,
	}
	if err := ValidateOccupancyInput(input); err != nil {
		return models.OccupancyInput{}, err
	}
	return input, nil
}

// ValidateOccupancyInput checks the value ranges of an occupancy calculation.
func ValidateOccupancyInput(in models.OccupancyInput) error {
	for _, err := range []error{
		CheckInventory(in.Inventory),
		CheckUsualOccupancy(in.UsualOccupancy),
		CheckPeakOccupancy(in.UsualOccupancy, in.PeakOccupancy),
		CheckBaseRate(in.BaseRate),
		CheckMaxRate(in.BaseRate, in.MaxRate),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckInventory and the other Check functions validate one occupancy field
// each, so interactive front ends can report errors as fields are entered.
func CheckInventory(inventory int) error {
	if inventory < 1 || inventory > MaxInventory {
		return invalid("inventory", "must be between 1 and %d", MaxInventory)
	}
	return nil
}

func CheckUsualOccupancy(usual float64) error {
	if usual <= 0 || usual > 100 {
		return invalid("usualOccupancy", "must be greater than 0 and at most 100")
	}
	return nil
}

func CheckPeakOccupancy(usual, peak float64) error {
	if peak < usual || peak > 100 {
		return invalid("peakOccupancy", "must be between usualOccupancy (%s) and 100", formatNumber(usual))
	}
	return nil
}

func CheckBaseRate(base float64) error {
	if base <= 0 {
		return invalid("baseRate", "must be greater than 0")
	}
	return nil
}

func CheckMaxRate(base, maxRate float64) error {
	if maxRate < base {
		return invalid("maxRate", "must be greater than or equal to baseRate (%s)", formatNumber(base))
	}
	return nil
}

// ParseInventoryRequest converts a decoded request body into calculator input.
func ParseInventoryRequest(req models.InventoryRequest) (models.InventoryInput, error) {
	if req.TotalRooms.Missing() {
		return models.InventoryInput{}, &InvalidInputError{Field: "totalRooms", Message: MsgInventoryFieldsRequired}
	}
	if len(req.RoomTypes) == 0 {
		return models.InventoryInput{}, &InvalidInputError{Field: "roomTypes", Message: MsgInventoryFieldsRequired}
	}
	if !req.TotalRooms.Valid() || !isWhole(req.TotalRooms.Value) {
		return models.InventoryInput{}, invalid("totalRooms", "must be a whole number")
	}

	input := models.InventoryInput{
		TotalRooms: int(req.TotalRooms.Value),
		RoomTypes:  make([]models.RoomType, 0, len(req.RoomTypes)),
	}
	for i, rt := range req.RoomTypes {
		field := fmt.Sprintf("roomTypes[%d]", i)
		if !rt.Count.Valid() || !isWhole(rt.Count.Value) {
			return models.InventoryInput{}, invalid(field+".count", "must be a whole number")
		}
		if !rt.BasePrice.Valid() {
			return models.InventoryInput{}, invalid(field+".basePrice", "must be a number")
		}
		input.RoomTypes = append(input.RoomTypes, models.RoomType{
			Name:      strings.TrimSpace(rt.Name),
			Count:     int(rt.Count.Value),
			BasePrice: rt.BasePrice.Value,
		})
	}
	if err := ValidateInventoryInput(input); err != nil {
		return models.InventoryInput{}, err
	}
	return input, nil
}

// ValidateInventoryInput checks room type names, counts and prices.
func ValidateInventoryInput(in models.InventoryInput) error {
	if in.TotalRooms <= 0 {
		return invalid("totalRooms", "must be greater than 0")
	}
	if len(in.RoomTypes) == 0 {
		return &InvalidInputError{Field: "roomTypes", Message: MsgInventoryFieldsRequired}
	}
	seen := make(map[string]bool, len(in.RoomTypes))
	for i, rt := range in.RoomTypes {
		field := fmt.Sprintf("roomTypes[%d]", i)
		if rt.Name == "" {
			return invalid(field+".name", "is required")
		}
		if seen[rt.Name] {
			return invalid(field+".name", "duplicate room type %q", sanitizeForLog(rt.Name))
		}
		seen[rt.Name] = true
		if rt.Count <= 0 {
			return invalid(field+".count", "must be greater than 0")
		}
		if rt.BasePrice <= 0 {
			return invalid(field+".basePrice", "must be greater than 0")
		}
	}
	return nil
}
