package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/config"
)

// projectDirs are created relative to the project root on init.
var projectDirs = []string{
	filepath.Join("data", "raw"),
	filepath.Join("data", "processed"),
	filepath.Join("output", "tables"),
	filepath.Join("output", "figures"),
	".reprorepo",
}

const defaultConfigYAML = `# reprorepo project configuration
simulation:
  seed: 123
  subjects: 100
  waves: 3

paths:
  raw: data/raw/panel_raw.csv
  processed: data/processed/panel_processed.csv
  tables: output/tables

logging:
  level: info
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a reproducible project structure",
		Long: `Create the project directory layout and a default configuration file.

Existing files are never overwritten, so init is safe to re-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			var created []string
			for _, dir := range projectDirs {
				path := filepath.Join(root, dir)
				if _, err := os.Stat(path); os.IsNotExist(err) {
					created = append(created, dir)
				}
				if err := os.MkdirAll(path, 0755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}

			configPath := filepath.Join(root, config.FileName)
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0644); err != nil {
					return fmt.Errorf("failed to create %s: %w", config.FileName, err)
				}
				created = append(created, config.FileName)
			}

			manifestPath := filepath.Join(root, ".reprorepo", "manifest.yaml")
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				manifest := fmt.Sprintf(`# ReproRepo Manifest
version: "1.0"
created: %s

# Run 'reprorepo simulate' to generate the raw dataset
# Run 'reprorepo clean' to derive the processed dataset
# Run 'reprorepo stats' to export analysis tables
`, time.Now().Format(time.RFC3339))
				if err := os.WriteFile(manifestPath, []byte(manifest), 0644); err != nil {
					return fmt.Errorf("failed to create manifest.yaml: %w", err)
				}
				created = append(created, filepath.Join(".reprorepo", "manifest.yaml"))
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":  "initialized",
					"root":    root,
					"created": created,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized project in %s\n", root)
				for _, c := range created {
					fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", c)
				}
				if len(created) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "  (already initialized, nothing to do)")
				}
			}

			return nil
		},
	}
}
