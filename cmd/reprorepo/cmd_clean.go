package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/cleaning"
	"github.com/juusorepo/ReproRepo/internal/pathutil"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Derive the processed dataset from the raw file",
		Long: `Read the raw dataset and write the processed copy: snake_case headers,
integer wave indices, lowercased categories, and a derived age bracket.

The raw file is read-only input and is never modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, cfg, logger, err := loadProject(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			rawPath := cfg.Paths.Raw
			if !filepath.IsAbs(rawPath) {
				rawPath = filepath.Join(root, rawPath)
			}
			processedPath := cfg.Paths.Processed
			if !filepath.IsAbs(processedPath) {
				processedPath = filepath.Join(root, processedPath)
			}
			if err := pathutil.ValidatePath(processedPath, pathutil.ProjectDataDirs(root)); err != nil {
				return err
			}

			result, err := cleaning.Process(rawPath, processedPath)
			if err != nil {
				return err
			}

			logger.Info("cleaning complete", "rows", result.Rows, "path", cfg.Paths.Processed)

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":   "cleaned",
					"rows":     result.Rows,
					"checksum": result.Checksum,
					"path":     cfg.Paths.Processed,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Processed %d rows\n", result.Rows)
				fmt.Fprintf(cmd.OutOrStdout(), "  Path:     %s\n", cfg.Paths.Processed)
				fmt.Fprintf(cmd.OutOrStdout(), "  Checksum: %s\n", result.Checksum)
			}

			return nil
		},
	}
}
