package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/config"
	"github.com/juusorepo/ReproRepo/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "reprorepo",
		Short: "Reproducible synthetic panel data for longitudinal research",
		Long: `reprorepo generates and analyzes a synthetic longitudinal dataset of
infant motor development.

It simulates subjects measured over repeated waves, derives a cleaned
dataset from the immutable raw file, and exports descriptive and model
summaries. The same seed always reproduces the same data byte for byte.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for scripted consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newSimulateCmd(),
		newCleanCmd(),
		newStatsCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "reprorepo version %s\n", version)
			}
		},
	}
}

// loadProject resolves the project root flag and loads its configuration and
// logger.
func loadProject(cmd *cobra.Command) (string, *config.Config, *slog.Logger, error) {
	root, _ := cmd.Flags().GetString("root")
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	return root, cfg, logger, nil
}
