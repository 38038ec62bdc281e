// ABOUTME: Tests for occupancy pricing wizard
// ABOUTME: Validates input collection, step flow and validation messages

package wizard

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

func TestWizardDefaults(t *testing.T) {
	w := New(models.OccupancyInput{Inventory: 30, UsualOccupancy: 65, BaseRate: 2000})

	if w.inventory != "30" {
		t.Errorf("expected inventory default 30, got %q", w.inventory)
	}
	if w.usual != "65" {
		t.Errorf("expected usual default 65, got %q", w.usual)
	}
	if w.peak != "" {
		t.Errorf("expected empty peak, got %q", w.peak)
	}
	if w.baseRate != "2000" {
		t.Errorf("expected base rate 2000, got %q", w.baseRate)
	}
	if w.step != 1 {
		t.Errorf("expected to start on step 1, got %d", w.step)
	}
}

func TestWizardAdvanceCollectsInput(t *testing.T) {
	w := New(models.OccupancyInput{})
	w.inventory = "40"
	w.advanceStep()
	if w.step != 2 || w.input.Inventory != 40 {
		t.Fatalf("expected step 2 with inventory 40, got step %d inventory %d", w.step, w.input.Inventory)
	}

	w.usual = "60"
	w.peak = "95.5"
	w.advanceStep()
	if w.step != 3 {
		t.Fatalf("expected step 3, got %d", w.step)
	}

	w.baseRate = "2500"
	w.maxRate = "6000"
	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Error("expected quit command after last step")
	}

	input, ok := w.Input()
	if !ok {
		t.Fatal("expected completed wizard")
	}
	want := models.OccupancyInput{Inventory: 40, UsualOccupancy: 60, PeakOccupancy: 95.5, BaseRate: 2500, MaxRate: 6000}
	if input != want {
		t.Errorf("expected %+v, got %+v", want, input)
	}
	if w.View() != "" {
		t.Error("expected empty view once done")
	}
}

func TestWizardEscCancels(t *testing.T) {
	w := New(models.OccupancyInput{})
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !w.Cancelled() {
		t.Error("expected wizard to be cancelled")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if _, ok := w.Input(); ok {
		t.Error("cancelled wizard must not report completion")
	}
}

func TestWizardRoomsHint(t *testing.T) {
	w := New(models.OccupancyInput{Inventory: 30})

	if got := w.roomsHint("65", "on a typical day"); got != "That's approximately 20 rooms on a typical day" {
		t.Errorf("unexpected hint %q", got)
	}
	if got := w.roomsHint("", "on a typical day"); !strings.HasPrefix(got, "Enter a percentage") {
		t.Errorf("expected placeholder hint, got %q", got)
	}
}

func TestWizardRenderProgress(t *testing.T) {
	w := New(models.OccupancyInput{})
	w.width = 80

	out := w.renderProgress()
	for _, name := range stepNames {
		if !strings.Contains(out, name) {
			t.Errorf("expected progress to mention %q", name)
		}
	}
	if !strings.Contains(out, "Occupancy Pricing Setup") {
		t.Error("expected wizard title in progress header")
	}
}

func TestValidateInventory(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1", false},
		{"30", false},
		{"500", false},
		{"0", true},
		{"501", true},
		{"12.5", true},
		{"abc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateInventory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateInventory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsual(t *testing.T) {
	if err := validateUsual("65"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateUsual("100"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateUsual("0.5"); err != nil {
		t.Errorf("fractional percentage above 0 should pass: %v", err)
	}
	err := validateUsual("0")
	if err == nil || err.Error() != "Please enter a percentage above 0 and at most 100" {
		t.Errorf("expected percentage message, got %v", err)
	}
	if validateUsual("101") == nil {
		t.Error("expected error above 100")
	}
}

func TestValidatePeak(t *testing.T) {
	if err := validatePeak("60", "60"); err != nil {
		t.Errorf("peak equal to usual should pass: %v", err)
	}
	if err := validatePeak("60", "100"); err != nil {
		t.Errorf("peak of 100 should pass: %v", err)
	}
	err := validatePeak("60", "50")
	if err == nil || err.Error() != "Please enter a percentage between 60% and 100%" {
		t.Errorf("expected range message, got %v", err)
	}
	if validatePeak("60", "101") == nil {
		t.Error("expected error above 100")
	}
}

func TestValidateRates(t *testing.T) {
	if validateBaseRate("0") == nil {
		t.Error("expected error for zero base rate")
	}
	if err := validateBaseRate("1999.50"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateMaxRate("2000", "2000"); err != nil {
		t.Errorf("max equal to base should pass: %v", err)
	}
	err := validateMaxRate("2000", "1500")
	if err == nil || err.Error() != "Please enter a rate of at least 2000" {
		t.Errorf("expected minimum rate message, got %v", err)
	}
}

func TestValidatorsAgreeWithCalculator(t *testing.T) {
	tests := []struct {
		name                                     string
		inventory, usual, peak, baseRate, maxRate string
	}{
		{"fractional values", "30", "0.5", "90", "0.01", "0.01"},
		{"upper bounds", "500", "100", "100", "1", "1"},
		{"inventory too large", "501", "60", "90", "1", "2"},
		{"usual zero", "30", "0", "90", "1", "2"},
		{"peak below usual", "30", "60", "59.9", "1", "2"},
		{"max below base", "30", "60", "90", "2", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wizardOK := validateInventory(tt.inventory) == nil &&
				validateUsual(tt.usual) == nil &&
				validatePeak(tt.usual, tt.peak) == nil &&
				validateBaseRate(tt.baseRate) == nil &&
				validateMaxRate(tt.baseRate, tt.maxRate) == nil

			inv, _ := strconv.Atoi(tt.inventory)
			num := func(s string) float64 {
				v, _ := strconv.ParseFloat(s, 64)
				return v
			}
			calcErr := services.ValidateOccupancyInput(models.OccupancyInput{
				Inventory:      inv,
				UsualOccupancy: num(tt.usual),
				PeakOccupancy:  num(tt.peak),
				BaseRate:       num(tt.baseRate),
				MaxRate:        num(tt.maxRate),
			})

			if wizardOK != (calcErr == nil) {
				t.Errorf("wizard accepted=%v but calculator error=%v", wizardOK, calcErr)
			}
		})
	}
}
