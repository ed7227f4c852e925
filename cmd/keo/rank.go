// cmd/keo/rank.go
package keo

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

var (
	rankCSVPath  string
	rankStrategy string
)

var rankHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

// rankCmd implements 'keo rank', which scores every run under the chosen
// weighting strategy and prints the runs best first.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank experiments under a weighting strategy",
	Long: `The 'rank' command computes a normalized composite score per experiment
under the chosen strategy (balanced, leaderboard, stability, speed) and
prints the experiments sorted by score, best first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := portfolio.LoadExperiments(viper.GetString("rank.csv"))
		if err != nil {
			return err
		}
		ranked, err := portfolio.Rank(records, portfolio.Strategy(viper.GetString("rank.strategy")))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Ranking strategy: %s\n\n", viper.GetString("rank.strategy"))
		fmt.Fprintln(out, rankHeaderStyle.Render(fmt.Sprintf(
			"%-4s %-12s %-20s %8s %8s %8s %10s",
			"#", "ID", "MODEL", "SCORE", "CV", "GAP", "TIME(S)")))
		for i, r := range ranked {
			fmt.Fprintf(out, "%-4d %-12s %-20s %8.4f %8.4f %8.4f %10.1f\n",
				i+1,
				r.Record.ExperimentID,
				r.Record.ModelType,
				r.Score,
				r.Record.CVMetric,
				r.Record.Gap(),
				r.Record.TrainTimeSeconds,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankCSVPath, "csv", "f", defaultCSVPath, "path to the experiments CSV")
	rankCmd.Flags().StringVarP(&rankStrategy, "strategy", "s", string(portfolio.StrategyBalanced),
		"weighting strategy: balanced, leaderboard, stability, or speed")
	viper.BindPFlag("rank.csv", rankCmd.Flags().Lookup("csv"))
	viper.BindPFlag("rank.strategy", rankCmd.Flags().Lookup("strategy"))
}
