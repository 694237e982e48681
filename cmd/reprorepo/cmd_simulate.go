package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/dataset"
	"github.com/juusorepo/ReproRepo/internal/panel"
	"github.com/juusorepo/ReproRepo/internal/pathutil"
	"github.com/juusorepo/ReproRepo/internal/registry"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate the raw synthetic panel dataset",
		Long: `Generate the synthetic panel dataset and write it to the configured raw
path. Each run is recorded in the project run registry with its seed,
dimensions, and checksum.

The raw file is treated as immutable once written; pass --force to
regenerate it.

Example:
  reprorepo simulate --seed 123 --subjects 100 --waves 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, logger, err := loadProject(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			force, _ := cmd.Flags().GetBool("force")

			simCfg := cfg.PanelConfig()
			if cmd.Flags().Changed("seed") {
				simCfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cmd.Flags().Changed("subjects") {
				simCfg.Subjects, _ = cmd.Flags().GetInt("subjects")
			}
			if cmd.Flags().Changed("waves") {
				simCfg.Waves, _ = cmd.Flags().GetInt("waves")
			}

			rawPath := cfg.Paths.Raw
			if !filepath.IsAbs(rawPath) {
				rawPath = filepath.Join(root, rawPath)
			}
			if err := pathutil.ValidatePath(rawPath, pathutil.ProjectDataDirs(root)); err != nil {
				return err
			}

			if _, statErr := os.Stat(rawPath); statErr == nil && !force {
				return fmt.Errorf("raw dataset already exists at %s (use --force to regenerate)", cfg.Paths.Raw)
			}

			logger.Debug("generating panel",
				"seed", simCfg.Seed, "subjects", simCfg.Subjects, "waves", simCfg.Waves)

			obs, err := panel.Generate(simCfg)
			if err != nil {
				return err
			}

			result, err := dataset.WriteFile(rawPath, obs)
			if err != nil {
				return fmt.Errorf("writing raw dataset: %w", err)
			}

			reg, err := registry.Open(root)
			if err != nil {
				return err
			}
			defer reg.Close()

			runID, err := reg.Record(context.Background(), registry.Run{
				Seed:     simCfg.Seed,
				Subjects: simCfg.Subjects,
				Waves:    simCfg.Waves,
				Rows:     result.Rows,
				Checksum: result.Checksum,
				Path:     cfg.Paths.Raw,
			})
			if err != nil {
				return err
			}

			logger.Info("simulation complete",
				"run", runID, "rows", result.Rows, "path", cfg.Paths.Raw)

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":   "simulated",
					"run_id":   runID,
					"seed":     simCfg.Seed,
					"subjects": simCfg.Subjects,
					"waves":    simCfg.Waves,
					"rows":     result.Rows,
					"checksum": result.Checksum,
					"path":     cfg.Paths.Raw,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Simulated %d subjects x %d waves (seed %d)\n",
					simCfg.Subjects, simCfg.Waves, simCfg.Seed)
				fmt.Fprintf(cmd.OutOrStdout(), "  Rows:     %d\n", result.Rows)
				fmt.Fprintf(cmd.OutOrStdout(), "  Path:     %s\n", cfg.Paths.Raw)
				fmt.Fprintf(cmd.OutOrStdout(), "  Checksum: %s\n", result.Checksum)
				fmt.Fprintf(cmd.OutOrStdout(), "  Run:      %d\n", runID)
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Random seed (overrides config)")
	cmd.Flags().Int("subjects", 0, "Number of subjects (overrides config)")
	cmd.Flags().Int("waves", 0, "Number of waves (overrides config)")
	cmd.Flags().Bool("force", false, "Overwrite an existing raw dataset")

	return cmd
}
