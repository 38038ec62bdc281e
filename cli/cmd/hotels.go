// ABOUTME: Hotels command for hotel-rms CLI
// ABOUTME: Searches hotel listings through the backend proxy

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/client"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/icons"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/styles"
)

var (
	hotelCheckIn  string
	hotelCheckOut string
	hotelAdults   int
	hotelCurrency string
	hotelCountry  string
	hotelLanguage string
)

var hotelsCmd = &cobra.Command{
	Use:   "hotels QUERY...",
	Short: "Search hotel listings",
	Long: `Search hotel listings and prices through the backend's search proxy.

A query that names a single property returns its detail and per-source prices.
Searches count against the backend's per-client quota.

Example:
  hotel-rms hotels "beach resorts in goa" --check-in 2026-12-20 --check-out 2026-12-22`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		query := hotelQuery(strings.Join(args, " "))
		if code := runHotels(ctx, os.Stdout, GetAPIURL(), query, IsJSONOutput()); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(hotelsCmd)
	hotelsCmd.Flags().StringVar(&hotelCheckIn, "check-in", "", "Check-in date (YYYY-MM-DD)")
	hotelsCmd.Flags().StringVar(&hotelCheckOut, "check-out", "", "Check-out date (YYYY-MM-DD)")
	hotelsCmd.Flags().IntVar(&hotelAdults, "adults", 0, "Number of adults")
	hotelsCmd.Flags().StringVar(&hotelCurrency, "currency", "", "Currency code for prices")
	hotelsCmd.Flags().StringVar(&hotelCountry, "gl", "", "Country code for the search")
	hotelsCmd.Flags().StringVar(&hotelLanguage, "hl", "", "Language code for the search")
}

// hotelQuery builds the search parameters from the query and flags
func hotelQuery(q string) url.Values {
	query := url.Values{"q": {q}}
	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	set("check_in_date", hotelCheckIn)
	set("check_out_date", hotelCheckOut)
	if hotelAdults > 0 {
		query.Set("adults", strconv.Itoa(hotelAdults))
	}
	set("currency", hotelCurrency)
	set("gl", hotelCountry)
	set("hl", hotelLanguage)
	return query
}

// requireBackend prints an error when no API URL is configured
func requireBackend(w io.Writer, baseURL, command string) bool {
	if baseURL != "" {
		return true
	}
	fmt.Fprintf(w, "Error: %s needs a backend; set --api-url or %s\n", command, apiURLEnv)
	return false
}

// runHotels executes the search and returns exit code
func runHotels(ctx context.Context, w io.Writer, baseURL string, query url.Values, jsonOut bool) int {
	if !requireBackend(w, baseURL, "hotel search") {
		return 2
	}

	result, err := client.New(baseURL).SearchHotels(ctx, query)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOut {
		fmt.Fprintln(w, formatJSON(result))
	} else {
		fmt.Fprintln(w, formatHotelsHuman(result))
	}
	return 0
}

// formatHotelsHuman formats a listing or a single property
func formatHotelsHuman(result *client.SearchResult) string {
	var sb strings.Builder
	if result.PropertyDetail != nil {
		sb.WriteString(formatPropertyDetail(result.PropertyDetail))
	} else {
		sb.WriteString(formatPropertyList(result.Properties))
	}

	if result.Remaining >= 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s %d searches remaining", icons.Info, result.Remaining)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPropertyList(properties []models.PropertySummary) string {
	if len(properties) == 0 {
		return "No properties found.\n"
	}

	rows := make([][]string, 0, len(properties))
	for _, p := range properties {
		rows = append(rows, []string{
			p.Name,
			p.Type,
			formatRating(p.OverallRating, p.Reviews),
			formatOptionalString(p.HotelClass),
			formatRate(p.RatePerNight),
		})
	}
	return styles.Title.Render(fmt.Sprintf("%s %d properties", icons.Hotel, len(properties))) + "\n" +
		renderTable([]string{"Name", "Type", "Rating", "Class", "Lowest Rate"}, rows) + "\n"
}

func formatPropertyDetail(p *models.PropertyDetail) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.Hotel, p.Name)))
	sb.WriteString("\n")
	if p.Address != "" {
		sb.WriteString(keyValue("Address", p.Address))
	}
	if p.Phone != "" {
		sb.WriteString(keyValue("Phone", p.Phone))
	}
	sb.WriteString(keyValue("Rating", formatRating(p.OverallRating, p.Reviews)))
	if p.HotelClass != nil {
		sb.WriteString(keyValue("Class", *p.HotelClass))
	}
	if p.CheckInTime != nil || p.CheckOutTime != nil {
		sb.WriteString(keyValue("Check-in/out", formatOptionalString(p.CheckInTime)+" / "+formatOptionalString(p.CheckOutTime)))
	}
	sb.WriteString(keyValue("Lowest rate", formatRate(p.RatePerNight)))

	if len(p.AllPrices) > 0 {
		sb.WriteString("\n")
		rows := make([][]string, 0, len(p.AllPrices))
		for _, price := range p.AllPrices {
			official := ""
			if price.Official {
				official = icons.CheckOK.String()
			}
			rows = append(rows, []string{price.Source, official, formatRate(price.RatePerNight), fmt.Sprintf("%d", len(price.Rooms))})
		}
		sb.WriteString(renderTable([]string{"Source", "Official", "Rate", "Rooms"}, rows))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRating(rating *float64, reviews int) string {
	if rating == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d reviews)", *rating, reviews)
}

func formatRate(r *models.RatePerNight) string {
	if r == nil || r.ExtractedLowest == nil {
		return "-"
	}
	return formatAmount(*r.ExtractedLowest)
}

func formatOptionalString(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
