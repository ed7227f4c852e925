// cmd/keo/root.go
package keo

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// defaultCSVPath is used by every command when --csv is not given.
const defaultCSVPath = "data/sample_experiments.csv"

// rootCmd is the base Cobra command for the keo application. All subcommands
// are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "keo",
	Short: "Analyze and rank a portfolio of ML experiment runs",
	Long: `keo ingests a CSV log of machine-learning experiment runs and produces
aggregate statistics, best/most-overfit picks, multi-criteria rankings, and
chat-style answers about the portfolio.`,
	SilenceUsage: true,
}

// Execute runs the root Cobra command and all registered subcommands. It
// prints any returned error and exits the process with a non-zero status
// code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
