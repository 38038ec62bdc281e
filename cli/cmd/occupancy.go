// ABOUTME: Occupancy command for hotel-rms CLI
// ABOUTME: Computes rate slabs from flags or an interactive wizard

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Bazzook4/hotel-setup-tool/backend/export"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/icons"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/styles"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/widgets"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/wizard"
)

var (
	occInput       models.OccupancyInput
	occInteractive bool
	occShowRates   bool
	occExportPath  string
	occFormat      string
)

// occupancyFlags are the flags required when not running the wizard
var occupancyFlags = []string{"inventory", "usual", "peak", "base-rate", "max-rate"}

var occupancyCmd = &cobra.Command{
	Use:   "occupancy",
	Short: "Calculate occupancy-based rate slabs",
	Long: `Split a property's inventory into pricing slabs and compute the rate
charged at every occupancy level.

Exit codes:
  0 - Calculation succeeded
  1 - Invalid input
  2 - Error (connectivity, backend failure)

Examples:
  hotel-rms occupancy --inventory 30 --usual 60 --peak 90 --base-rate 2000 --max-rate 5000
  hotel-rms occupancy --interactive --rates
  hotel-rms occupancy --inventory 40 --usual 55 --peak 85 --base-rate 1800 --max-rate 4200 --export slabs.xlsx
  hotel-rms occupancy --inventory 40 --usual 55 --peak 85 --base-rate 1800 --max-rate 4200 --export - --format yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		input := occInput
		if occInteractive {
			collected, ok, err := runOccupancyWizard(input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "Cancelled.")
				return
			}
			input = collected
		} else if missing := missingFlags(cmd, occupancyFlags); len(missing) > 0 {
			fmt.Fprintf(os.Stderr, "Error: missing required flags: %s (or use --interactive)\n", strings.Join(missing, ", "))
			os.Exit(2)
		}

		opts := occupancyOptions{showRates: occShowRates, exportPath: occExportPath, format: occFormat, jsonOut: IsJSONOutput()}
		if code := runOccupancy(ctx, os.Stdout, newCalculator(GetAPIURL()), input, opts); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(occupancyCmd)
	occupancyCmd.Flags().IntVar(&occInput.Inventory, "inventory", 0, "Total room inventory (1-500)")
	occupancyCmd.Flags().Float64Var(&occInput.UsualOccupancy, "usual", 0, "Usual occupancy percentage")
	occupancyCmd.Flags().Float64Var(&occInput.PeakOccupancy, "peak", 0, "Peak occupancy percentage")
	occupancyCmd.Flags().Float64Var(&occInput.BaseRate, "base-rate", 0, "Base room rate")
	occupancyCmd.Flags().Float64Var(&occInput.MaxRate, "max-rate", 0, "Maximum room rate")
	occupancyCmd.Flags().BoolVarP(&occInteractive, "interactive", "i", false, "Collect inputs with the setup wizard")
	occupancyCmd.Flags().BoolVar(&occShowRates, "rates", false, "Print the rate for every occupancy level")
	occupancyCmd.Flags().StringVar(&occExportPath, "export", "", "Write the RMS export document to a file (- for stdout)")
	occupancyCmd.Flags().StringVar(&occFormat, "format", "", "Export format: json, yaml or xlsx (default: from file extension)")
}

// missingFlags returns the names of required flags the user did not set
func missingFlags(cmd *cobra.Command, names []string) []string {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	return missing
}

// runOccupancyWizard runs the setup wizard, pre-filled with any flag values
func runOccupancyWizard(defaults models.OccupancyInput) (models.OccupancyInput, bool, error) {
	w := wizard.New(defaults)
	if _, err := tea.NewProgram(w).Run(); err != nil {
		return models.OccupancyInput{}, false, fmt.Errorf("wizard failed: %w", err)
	}
	input, ok := w.Input()
	return input, ok, nil
}

type occupancyOptions struct {
	showRates  bool
	exportPath string
	format     string
	jsonOut    bool
}

// runOccupancy executes the calculation and returns exit code
func runOccupancy(ctx context.Context, w io.Writer, calc calculator, input models.OccupancyInput, opts occupancyOptions) int {
	if opts.exportPath != "" {
		return runOccupancyExport(ctx, w, calc, input, opts.exportPath, opts.format)
	}

	result, err := calc.Occupancy(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if opts.jsonOut {
		fmt.Fprintln(w, formatJSON(result))
	} else {
		fmt.Fprintln(w, formatOccupancyHuman(result, opts.showRates))
	}
	return 0
}

func runOccupancyExport(ctx context.Context, w io.Writer, calc calculator, input models.OccupancyInput, path, formatName string) int {
	format := export.FormatForPath(path)
	if formatName != "" {
		f, err := export.ParseFormat(formatName)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		format = f
	}

	data, err := calc.Export(ctx, input, format)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if path == "-" {
		w.Write(data)
		return 0
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(w, "Error: failed to write export: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "%s Exported %s to %s\n", icons.CheckOK, format, path)
	return 0
}

// formatJSON renders v as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// formatOccupancyHuman formats the slab breakdown for human readability
func formatOccupancyHuman(result models.OccupancyResult, showRates bool) string {
	cfg := result.Config
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Occupancy Pricing", icons.Hotel)))
	sb.WriteString("\n")
	sb.WriteString(keyValue("Inventory", fmt.Sprintf("%d rooms in %d slabs", cfg.Inventory, cfg.NumSlabs)))
	sb.WriteString(keyValue("Occupancy", fmt.Sprintf("%s%% usual, %s%% peak", formatAmount(cfg.UsualOccupancy), formatAmount(cfg.PeakOccupancy))))
	sb.WriteString(keyValue("Rates", fmt.Sprintf("%s to %s", formatAmount(cfg.BaseRate), formatAmount(cfg.MaxRate))))
	if curve := rateCurve(result.RatesData); curve != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", styles.KeyStyle.Render(icons.TrendUp.String()+" Curve:"), curve))
	}
	sb.WriteString("\n")

	rows := make([][]string, 0, len(result.Slabs))
	for _, s := range result.Slabs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.SlabNumber),
			fmt.Sprintf("%d-%d", s.Start, s.End),
			formatAmount(s.Increment),
			formatAmount(s.StepPerRoom),
			fmt.Sprintf("%s-%s", formatAmount(s.RateStart), formatAmount(s.RateEnd)),
			s.Description,
		})
	}
	sb.WriteString(renderTable([]string{"Slab", "Rooms Sold", "Increment", "Per Room", "Rate", "Description"}, rows))
	sb.WriteString("\n")

	if showRates {
		sb.WriteString("\n")
		sb.WriteString(formatRateTable(result))
		sb.WriteString("\n")
	}

	sb.WriteString(formatRecommendations(result.Recommendations))
	return strings.TrimRight(sb.String(), "\n")
}

// rateCurveWidth caps the sparkline so large properties fit on one line
const rateCurveWidth = 40

func rateCurve(rates []models.RateTableEntry) string {
	values := make([]float64, len(rates))
	for i, r := range rates {
		values[i] = r.Rate
	}
	return widgets.Sparkline(values, min(len(values), rateCurveWidth), styles.Accent)
}

// formatRateTable lists the rate at every occupancy level with a fill bar
func formatRateTable(result models.OccupancyResult) string {
	inventory := result.Config.Inventory
	rows := make([][]string, 0, len(result.RatesData))
	for _, r := range result.RatesData {
		percent := 0.0
		if inventory > 0 {
			percent = float64(r.Occupancy) / float64(inventory) * 100
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Occupancy),
			fmt.Sprintf("%d", r.Slab),
			formatAmount(r.Rate),
			styles.ProgressBar(percent, 20),
		})
	}
	return renderTable([]string{"Sold", "Slab", "Rate", "Occupancy"}, rows)
}

// formatRecommendations renders recommendations styled by type
func formatRecommendations(recs []models.Recommendation) string {
	if len(recs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Recommendations"))
	sb.WriteString("\n")
	for _, rec := range recs {
		line := fmt.Sprintf("%s %s", rec.Icon, rec.Message)
		sb.WriteString(styles.Recommendation(string(rec.Type)).Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderCell
			}
			return styles.Cell
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func keyValue(key, value string) string {
	return fmt.Sprintf("%s %s\n", styles.KeyStyle.Render(key+":"), styles.ValueStyle.Render(value))
}

// formatAmount drops the fraction from whole numbers
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
