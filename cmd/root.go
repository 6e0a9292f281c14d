// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "pagesim",
	Short: "Pagesim replays page reference strings against a simulated " +
		"page table.",
	Long: `Pagesim replays page reference strings against a simulated page ` +
		`table with a bounded number of frames, counts the page faults, and ` +
		`compares the FIFO, LRU, and MFU replacement algorithms.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file can provide defaults such as PAGESIM_MONITOR_PORT.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
