package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"tripplanner/cmd/fx/config_fx"
	"tripplanner/cmd/fx/itinerary_fx"
	"tripplanner/cmd/fx/logger_fx"
	"tripplanner/cmd/fx/prompt_fx"
	"tripplanner/internal/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "tripplanner",
	Short: "Few-shot LLM trip itinerary planner",
	Long: `tripplanner drafts a day by day trip itinerary with a completion model and
then asks the model for the typical weather of the trip.

Modes:
  tripplanner        Run the web server (default)
  tripplanner serve  Run the web server
  tripplanner plan   Generate one itinerary and print it as JSON`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runServe,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Environment file loaded before reading configuration; variables already set win")
	rootCmd.AddCommand(serveCmd, planCmd)
}

// coreModules builds everything needed to run the itinerary pipeline.
func coreModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		logger_fx.Module,
		prompt_fx.Module,
		itinerary_fx.Module,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
