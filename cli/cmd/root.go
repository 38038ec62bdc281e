// ABOUTME: Root command for hotel-rms CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const apiURLEnv = "HOTEL_RMS_API_URL"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "hotel-rms",
	Short: "CLI for the hotel revenue management calculators",
	Long: `hotel-rms is a command-line interface for the hotel revenue management tools.

It computes occupancy-based rate slabs and room-type reallocation pools, and
searches hotel listings through the backend proxy.

The calculators run locally unless a backend is configured. Hotel search and
health always need a backend.

Environment Variables:
  HOTEL_RMS_API_URL      Backend API URL (calculators run locally when unset)
  HOTEL_RMS_NERD_FONTS   Set to 1 to use Nerd Font icons`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides "+apiURLEnv+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag or env (in priority order).
// An empty result means calculations run in-process.
func GetAPIURL() string {
	if apiURL != "" {
		return strings.TrimSpace(apiURL)
	}
	return strings.TrimSpace(os.Getenv(apiURLEnv))
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
