// ABOUTME: Inventory command for hotel-rms CLI
// ABOUTME: Pools similarly priced room types for reallocation

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/icons"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/tui/styles"
)

var (
	invTotalRooms int
	invRoomTypes  []string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Calculate room-type reallocation pools",
	Long: `Compare every room type against the cheapest one and pool the types whose
price is close enough to be sold from a shared inventory.

Room types are given as name:count:price. When --total-rooms is omitted the
sum of the room type counts is used.

Exit codes:
  0 - Calculation succeeded
  1 - Invalid input
  2 - Error (connectivity, backend failure)

Example:
  hotel-rms inventory --room-type Deluxe:30:2000 --room-type Superior:15:2200 --room-type Suite:5:4500`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		input, err := buildInventoryInput(invTotalRooms, invRoomTypes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if code := runInventory(ctx, os.Stdout, newCalculator(GetAPIURL()), input, IsJSONOutput()); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.Flags().IntVar(&invTotalRooms, "total-rooms", 0, "Total rooms at the property (default: sum of room type counts)")
	inventoryCmd.Flags().StringArrayVar(&invRoomTypes, "room-type", nil, "Room type as name:count:price (repeatable)")
}

// parseRoomType parses name:count:price. The name may itself contain colons.
func parseRoomType(s string) (models.RoomType, error) {
	priceSep := strings.LastIndex(s, ":")
	if priceSep < 0 {
		return models.RoomType{}, fmt.Errorf("room type %q must be name:count:price", s)
	}
	countSep := strings.LastIndex(s[:priceSep], ":")
	if countSep < 0 {
		return models.RoomType{}, fmt.Errorf("room type %q must be name:count:price", s)
	}

	name := strings.TrimSpace(s[:countSep])
	count, err := strconv.Atoi(strings.TrimSpace(s[countSep+1 : priceSep]))
	if err != nil {
		return models.RoomType{}, fmt.Errorf("room type %q: count must be a whole number", name)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(s[priceSep+1:]), 64)
	if err != nil {
		return models.RoomType{}, fmt.Errorf("room type %q: price must be a number", name)
	}
	return models.RoomType{Name: name, Count: count, BasePrice: price}, nil
}

// buildInventoryInput parses room type flags and fills in the total
func buildInventoryInput(totalRooms int, args []string) (models.InventoryInput, error) {
	if len(args) == 0 {
		return models.InventoryInput{}, fmt.Errorf("at least one --room-type is required")
	}

	input := models.InventoryInput{TotalRooms: totalRooms}
	sum := 0
	for _, arg := range args {
		rt, err := parseRoomType(arg)
		if err != nil {
			return models.InventoryInput{}, err
		}
		input.RoomTypes = append(input.RoomTypes, rt)
		sum += rt.Count
	}
	if input.TotalRooms == 0 {
		input.TotalRooms = sum
	}
	return input, nil
}

// runInventory executes the calculation and returns exit code
func runInventory(ctx context.Context, w io.Writer, calc calculator, input models.InventoryInput, jsonOut bool) int {
	result, err := calc.Inventory(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOut {
		fmt.Fprintln(w, formatJSON(result))
	} else {
		fmt.Fprintln(w, formatInventoryHuman(result))
	}
	return 0
}

// formatInventoryHuman formats the reallocation plan for human readability
func formatInventoryHuman(result models.InventoryResult) string {
	s := result.Summary
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Inventory Reallocation", icons.Bed)))
	sb.WriteString("\n")
	sb.WriteString(keyValue("Rooms", fmt.Sprintf("%d across %d room types", s.TotalRooms, s.RoomTypeCount)))
	sb.WriteString(keyValue("Base category", s.BaseCategory))
	sb.WriteString(keyValue("Pool", fmt.Sprintf("%d rooms from %d types (%d rooms outside the pool)", s.PoolSize, s.PooledTypes, s.NonPooledRooms)))
	sb.WriteString("\n")

	rows := make([][]string, 0, len(result.ReallocationConfig))
	for _, e := range result.ReallocationConfig {
		pooled := "-"
		share := "-"
		if e.InPool {
			pooled = icons.Pool.String()
			share = fmt.Sprintf("%s%% (%d)", formatAmount(e.PoolPercent), e.ReallocatedCount)
		}
		rows = append(rows, []string{
			e.Name,
			fmt.Sprintf("%d", e.Count),
			formatAmount(e.BasePrice),
			fmt.Sprintf("+%s (%s%%)", formatAmount(e.PriceDiff), formatAmount(e.PriceDiffPercent)),
			pooled,
			share,
			e.Reason,
		})
	}
	sb.WriteString(renderTable([]string{"Room Type", "Rooms", "Price", "Difference", "Pool", "Share", "Reason"}, rows))
	sb.WriteString("\n")

	sb.WriteString(formatRecommendations(result.Recommendations))
	return strings.TrimRight(sb.String(), "\n")
}
