// ABOUTME: Renders occupancy pricing exports as JSON, YAML or an XLSX workbook
// ABOUTME: Shared by the export endpoint and the CLI so both produce identical files

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

// Format is an export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names
var ErrUnknownFormat = errors.New("unsupported export format")

// ParseFormat maps a format name to a Format. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatForPath infers the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatJSON
	}
	return f
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Filename returns the download name for an export generated at t
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("occupancy-pricing-%s.%s", t.UTC().Format("20060102-150405"), f)
}

// Write renders the export document for result in format f.
func Write(w io.Writer, f Format, result models.OccupancyResult, generatedAt time.Time) error {
	doc := services.BuildOccupancyExport(result, generatedAt)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		return writeYAML(w, doc)
	case FormatXLSX:
		return writeXLSX(w, result, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// writeYAML re-reads the JSON form into a node tree so keys keep the JSON
// names and order, then emits it in block style.
func writeYAML(w io.Writer, doc models.OccupancyExport) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert export: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

const (
	sheetSummary = "Summary"
	sheetSlabs   = "Slabs"
	sheetRates   = "Rates"
)

func writeXLSX(w io.Writer, result models.OccupancyResult, doc models.OccupancyExport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetSlabs, sheetRates} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"7C3AED"}},
	})
	if err != nil {
		return err
	}

	cfg := result.Config
	summary := [][]any{
		{"Setting", "Value"},
		{"Inventory", cfg.Inventory},
		{"Usual occupancy %", cfg.UsualOccupancy},
		{"Peak occupancy %", cfg.PeakOccupancy},
		{"Base rate", cfg.BaseRate},
		{"Max rate", cfg.MaxRate},
		{"Slabs", cfg.NumSlabs},
		{"Generated at", doc.Metadata.GeneratedAt.Format(time.RFC3339)},
	}
	if err := writeSheet(f, sheetSummary, summary, header); err != nil {
		return err
	}

	slabs := [][]any{{"Slab", "Start", "End", "Rooms", "Increment", "Rate start", "Rate end", "Description"}}
	for _, s := range result.Slabs {
		slabs = append(slabs, []any{s.SlabNumber, s.Start, s.End, s.RoomsInSlab, s.Increment, s.RateStart, s.RateEnd, s.Description})
	}
	if err := writeSheet(f, sheetSlabs, slabs, header); err != nil {
		return err
	}

	rates := [][]any{{"Rooms sold", "Slab", "Rate"}}
	for _, r := range result.RatesData {
		rates = append(rates, []any{r.Occupancy, r.Slab, r.Rate})
	}
	if err := writeSheet(f, sheetRates, rates, header); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeSheet writes rows from A1 and styles the first row as a header.
func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
