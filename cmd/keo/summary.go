// cmd/keo/summary.go
package keo

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

var summaryCSVPath string

// summaryCmd implements 'keo summary', which loads the experiments CSV and
// prints the full portfolio report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the full experiment portfolio report",
	Long: `The 'summary' command loads the experiments CSV, computes per-model
aggregates, best/most-overfit picks, and timing statistics, and prints the
text report. It exits non-zero on any load or validation failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := portfolio.RunAnalysis(viper.GetString("summary.csv"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "===== EXPERIMENT PORTFOLIO SUMMARY =====")
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), result.TextReport)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryCSVPath, "csv", "f", defaultCSVPath, "path to the experiments CSV")
	viper.BindPFlag("summary.csv", summaryCmd.Flags().Lookup("csv"))
}
