package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/dataset"
	"github.com/juusorepo/ReproRepo/internal/pathutil"
	"github.com/juusorepo/ReproRepo/internal/stats"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset and fit the task duration model",
		Long: `Compute descriptive statistics by mobility category and wave, and
optionally fit a linear model of task duration on age, sleep, and
category.

Examples:
  reprorepo stats                # Descriptives to stdout
  reprorepo stats --model        # Also fit the task duration model
  reprorepo stats --export       # Write summary.csv to the tables directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, logger, err := loadProject(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			fitModel, _ := cmd.Flags().GetBool("model")
			export, _ := cmd.Flags().GetBool("export")

			rawPath := cfg.Paths.Raw
			if !filepath.IsAbs(rawPath) {
				rawPath = filepath.Join(root, rawPath)
			}

			obs, err := dataset.ReadFile(rawPath)
			if err != nil {
				return fmt.Errorf("reading raw dataset: %w", err)
			}

			summaries := stats.Describe(obs)

			var model *stats.Model
			if fitModel {
				model, err = stats.FitTaskModel(obs)
				if err != nil {
					return fmt.Errorf("fitting task model: %w", err)
				}
			}

			var exported []string
			if export {
				tablesDir := cfg.Paths.Tables
				if !filepath.IsAbs(tablesDir) {
					tablesDir = filepath.Join(root, tablesDir)
				}

				summaryPath := filepath.Join(tablesDir, "summary.csv")
				if err := pathutil.ValidatePath(summaryPath, pathutil.ProjectDataDirs(root)); err != nil {
					return err
				}
				header, rows := stats.SummaryTable(summaries)
				if _, err := dataset.WriteTable(summaryPath, header, rows); err != nil {
					return fmt.Errorf("writing summary table: %w", err)
				}
				exported = append(exported, filepath.Join(cfg.Paths.Tables, "summary.csv"))

				if model != nil {
					modelPath := filepath.Join(tablesDir, "model_task.csv")
					modelRows := make([][]string, 0, len(model.Terms))
					for _, term := range model.Terms {
						modelRows = append(modelRows, []string{
							term.Name,
							strconv.FormatFloat(term.Coefficient, 'f', 4, 64),
						})
					}
					if _, err := dataset.WriteTable(modelPath, []string{"term", "coefficient"}, modelRows); err != nil {
						return fmt.Errorf("writing model table: %w", err)
					}
					exported = append(exported, filepath.Join(cfg.Paths.Tables, "model_task.csv"))
				}

				logger.Info("tables exported", "files", strings.Join(exported, ", "))
			}

			if jsonOut {
				out := map[string]any{
					"rows":    len(obs),
					"summary": summaries,
				}
				if model != nil {
					out["model"] = model
				}
				if len(exported) > 0 {
					out["exported"] = exported
				}
				json.NewEncoder(cmd.OutOrStdout()).Encode(out)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset Summary (%d rows)\n", len(obs))
			fmt.Fprintf(cmd.OutOrStdout(), "=========================\n\n")

			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %5s %4s %10s %8s %10s %11s\n",
				"Category", "Wave", "N", "Task Mean", "Task SD", "Sleep Mean", "Engage Mean")
			fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 64))
			for _, s := range summaries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %5d %4d %10.2f %8.2f %10.2f %11.2f\n",
					s.Category, s.Wave, s.N, s.TaskMean, s.TaskSD, s.SleepMean, s.EngagementMean)
			}

			if model != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTask duration model (n=%d, R2=%.3f):\n\n", model.N, model.R2)
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %12s\n", "Term", "Coefficient")
				fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 27))
				for _, term := range model.Terms {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %12.4f\n", term.Name, term.Coefficient)
				}
			}

			if len(exported) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				for _, path := range exported {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("model", false, "Fit the task duration model")
	cmd.Flags().Bool("export", false, "Write tables to the configured tables directory")

	return cmd
}
