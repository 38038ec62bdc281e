// ABOUTME: Tests for the occupancy command
// ABOUTME: Verifies local and remote calculation, export, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

var sampleOccupancy = models.OccupancyInput{
	Inventory:      30,
	UsualOccupancy: 60,
	PeakOccupancy:  90,
	BaseRate:       2000,
	MaxRate:        5000,
}

func fixedLocalCalculator() *localCalculator {
	calc := newCalculator("").(*localCalculator)
	calc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return calc
}

func TestRunOccupancy_LocalHuman(t *testing.T) {
	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	output := buf.String()
	for _, want := range []string{"Occupancy Pricing", "30 rooms in 4 slabs", "Rooms Sold", "2000 to 5000"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "░") {
		t.Error("rate table should only be printed with --rates")
	}
	if !strings.Contains(output, "Curve:") {
		t.Error("expected rate curve sparkline")
	}
}

func TestRunOccupancy_WithRates(t *testing.T) {
	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{showRates: true})

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "░") {
		t.Errorf("expected rate table with occupancy bars, got:\n%s", buf.String())
	}
}

func TestRunOccupancy_JSONMatchesCalculator(t *testing.T) {
	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{jsonOut: true})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var got models.OccupancyResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	want, err := services.NewOccupancyCalculator().Calculate(sampleOccupancy)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(got.Slabs) != len(want.Slabs) || len(got.RatesData) != len(want.RatesData) {
		t.Errorf("expected %d slabs and %d rates, got %d and %d",
			len(want.Slabs), len(want.RatesData), len(got.Slabs), len(got.RatesData))
	}
	if got.RatesData[len(got.RatesData)-1].Rate != want.RatesData[len(want.RatesData)-1].Rate {
		t.Error("expected last rate to match the calculator")
	}
}

func TestRunOccupancy_InvalidInput(t *testing.T) {
	input := sampleOccupancy
	input.PeakOccupancy = 40

	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), input, occupancyOptions{})

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "peakOccupancy:") {
		t.Errorf("expected field-level message, got %q", buf.String())
	}
}

func TestRunOccupancy_ExportToStdout(t *testing.T) {
	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{exportPath: "-"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var export models.OccupancyExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !export.OccupancyPricing.Enabled || export.OccupancyPricing.Inventory != 30 {
		t.Errorf("unexpected export: %+v", export.OccupancyPricing)
	}
	if !export.Metadata.GeneratedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected generatedAt %v", export.Metadata.GeneratedAt)
	}
}

func TestRunOccupancy_ExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slabs.json")

	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{exportPath: path})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Exported json") {
		t.Errorf("expected confirmation, got %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var export models.OccupancyExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(export.OccupancyPricing.Slabs) != 4 {
		t.Errorf("expected 4 slabs, got %d", len(export.OccupancyPricing.Slabs))
	}
}

func TestRunOccupancy_ExportFormats(t *testing.T) {
	dir := t.TempDir()

	xlsxPath := filepath.Join(dir, "slabs.xlsx")
	var buf bytes.Buffer
	if code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{exportPath: xlsxPath}); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	data, err := os.ReadFile(xlsxPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("expected xlsx workbook")
	}

	buf.Reset()
	if code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{exportPath: "-", format: "yaml"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.HasPrefix(buf.String(), "occupancyPricing:") {
		t.Errorf("expected yaml document, got %q", buf.String())
	}

	buf.Reset()
	if code := runOccupancy(context.Background(), &buf, fixedLocalCalculator(), sampleOccupancy, occupancyOptions{exportPath: "-", format: "csv"}); code != 1 {
		t.Errorf("expected exit code 1 for unknown format, got %d", code)
	}
}

func TestRunOccupancy_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/occupancy/calculate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		result, _ := services.NewOccupancyCalculator().Calculate(sampleOccupancy)
		json.NewEncoder(w).Encode(models.OccupancyResponse{Success: true, OccupancyResult: result})
	}))
	defer server.Close()

	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, newCalculator(server.URL), sampleOccupancy, occupancyOptions{})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "30 rooms in 4 slabs") {
		t.Errorf("expected slab summary, got:\n%s", buf.String())
	}
}

func TestRunOccupancy_RemoteValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "must be greater than 0", Field: "baseRate", Code: 400})
	}))
	defer server.Close()

	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, newCalculator(server.URL), sampleOccupancy, occupancyOptions{})
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "baseRate: must be greater than 0") {
		t.Errorf("expected field-level message, got %q", buf.String())
	}
}

func TestRunOccupancy_RemoteUnavailable(t *testing.T) {
	var buf bytes.Buffer
	code := runOccupancy(context.Background(), &buf, newCalculator("http://localhost:99999"), sampleOccupancy, occupancyOptions{})
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestMissingFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("inventory", 0, "")
	cmd.Flags().Float64("usual", 0, "")
	if err := cmd.Flags().Set("inventory", "30"); err != nil {
		t.Fatal(err)
	}

	missing := missingFlags(cmd, []string{"inventory", "usual"})
	if len(missing) != 1 || missing[0] != "--usual" {
		t.Errorf("expected [--usual], got %v", missing)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		2000:    "2000",
		1999.5:  "1999.50",
		0:       "0",
		33.3333: "33.33",
	}
	for in, want := range tests {
		if got := formatAmount(in); got != want {
			t.Errorf("formatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}
