// cmd/keo/chat.go
package keo

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Chirag314/kaggle-experiment-orchestrator/cli"
)

var startChat = cli.StartChat

var chatCfgFile string

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session about the portfolio",
	Long: `The 'chat' command starts an interactive session. Messages are answered
by the local rule-based agent, or by an Ollama model grounded in the
portfolio data when one is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startChat(viper.GetString("chat.config"))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatCfgFile, "config", "c", "keo.config.json", "chat config file")
	viper.BindPFlag("chat.config", chatCmd.Flags().Lookup("config"))
}
