// Command guildctl works on a tracker database or on loose files from the
// command line: parsing leaderboard text, printing stats, moving backups.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "guildctl",
		Short:         "Guild boss tracker command line",
		Long:          "guildctl inspects and maintains a guild boss tracker database: parse OCR text, print member stats and move JSON backups in and out.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("db", envOr("DB_PATH", "guild.db"), "Path to the sqlite database")
	root.PersistentFlags().String("log-level", envOr("LOG_LEVEL", "warn"), "Log level")

	root.AddCommand(
		newParseCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetWeekCmd(),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
