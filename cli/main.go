// ABOUTME: Entry point for hotel-rms CLI
// ABOUTME: Command-line tool for occupancy pricing and inventory pooling

package main

import (
	"fmt"
	"os"

	"github.com/Bazzook4/hotel-setup-tool/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
