// cmd/keo/ask.go
package keo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Chirag314/kaggle-experiment-orchestrator/llm"
	"github.com/Chirag314/kaggle-experiment-orchestrator/portfolio"
)

var (
	askCSVPath string
	askURL     string
	askModel   string
)

// askCmd implements 'keo ask', a one-shot question answered by an Ollama
// model grounded in the portfolio data. The answer streams to stdout as it
// is generated.
var askCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Ask an Ollama model a question about the portfolio",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model := viper.GetString("ask.model")
		if model == "" {
			return errors.New("--model is required (e.g. --model llama3.2:3b)")
		}

		result, err := portfolio.RunAnalysis(viper.GetString("ask.csv"))
		if err != nil {
			return err
		}

		client := llm.NewClient(viper.GetString("ask.url"), model)
		question := strings.Join(args, " ")

		out := cmd.OutOrStdout()
		meta, err := client.Ask(cmd.Context(), question, result, out)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		if meta.EvalCount > 0 {
			fmt.Fprintf(out, "\n[%s: %d tokens in %.1fs]\n",
				meta.Model, meta.EvalCount, float64(meta.TotalDuration)/1e9)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askCSVPath, "csv", "f", defaultCSVPath, "path to the experiments CSV")
	askCmd.Flags().StringVarP(&askURL, "url", "u", llm.DefaultBaseURL, "Ollama endpoint URL")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Ollama model name")
	viper.BindPFlag("ask.csv", askCmd.Flags().Lookup("csv"))
	viper.BindPFlag("ask.url", askCmd.Flags().Lookup("url"))
	viper.BindPFlag("ask.model", askCmd.Flags().Lookup("model"))
}
