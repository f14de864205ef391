// README: CLI root command, global flags, and logger setup.
package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wayfarer/internal/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Generate AI travel itineraries from the command line",
	Long: `wayfarer turns trip parameters into day-by-day travel itineraries using an
LLM completion provider (OpenAI or Gemini, selected by WAYFARER_AI_PROVIDER).

The plan command calls the provider and prints the result; the prompt
command only prints the text that would be sent, without any network call.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Init(logLevel, "")
	},
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Subcommands register themselves in their
// init functions.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")
}
