// ABOUTME: Health command for hotel-rms CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bazzook4/hotel-setup-tool/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the hotel RMS backend and report search and rate limit status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	if !requireBackend(w, url, "health") {
		return 2
	}

	resp, err := client.New(url).Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	rateLimit := "disabled"
	if resp.RateLimit.Enabled {
		rateLimit = fmt.Sprintf("%d searches per %s", resp.RateLimit.Limit, time.Duration(resp.RateLimit.WindowSeconds)*time.Second)
	}
	uptime := time.Duration(resp.UptimeSeconds) * time.Second

	return fmt.Sprintf(`Backend:      %s
Status:       %s
Search API:   %s
Rate Limit:   %s
Metrics:      %t
Uptime:       %s`, url, resp.Status, resp.SearchAPI, rateLimit, resp.Metrics, uptime)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	return formatJSON(map[string]any{
		"backend":        url,
		"status":         resp.Status,
		"search_api":     resp.SearchAPI,
		"rate_limit":     resp.RateLimit,
		"metrics":        resp.Metrics,
		"uptime_seconds": resp.UptimeSeconds,
	})
}
