package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/juusorepo/ReproRepo/internal/dataset"
	"github.com/juusorepo/ReproRepo/internal/registry"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded simulation runs",
	}

	cmd.AddCommand(newRunsListCmd(), newRunsVerifyCmd())

	return cmd
}

func newRunsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			reg, err := registry.Open(root)
			if err != nil {
				return err
			}
			defer reg.Close()

			runs, err := reg.List(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				if runs == nil {
					runs = []registry.Run{}
				}
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"runs":  runs,
					"count": len(runs),
				})
				return nil
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet. Run 'reprorepo simulate' first.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-20s %10s %8s %5s %6s  %s\n",
				"ID", "Created", "Seed", "Subjects", "Waves", "Rows", "Path")
			fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))
			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-4d %-20s %10d %8d %5d %6d  %s\n",
					run.ID, run.CreatedAt.UTC().Format(time.RFC3339),
					run.Seed, run.Subjects, run.Waves, run.Rows, run.Path)
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of runs to show (0 = all)")

	return cmd
}

func newRunsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <run-id>",
		Short: "Verify a dataset against its recorded checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run ID: %s", args[0])
			}

			reg, err := registry.Open(root)
			if err != nil {
				return err
			}
			defer reg.Close()

			run, err := reg.Get(context.Background(), id)
			if err != nil {
				return err
			}

			path := run.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(root, path)
			}

			checksum, err := dataset.ChecksumFile(path)
			if err != nil {
				return fmt.Errorf("reading dataset: %w", err)
			}

			match := checksum == run.Checksum

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"run_id":   run.ID,
					"path":     run.Path,
					"recorded": run.Checksum,
					"actual":   checksum,
					"match":    match,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %d: %s\n", run.ID, run.Path)
				fmt.Fprintf(cmd.OutOrStdout(), "  Recorded: %s\n", run.Checksum)
				fmt.Fprintf(cmd.OutOrStdout(), "  Actual:   %s\n", checksum)
				if match {
					fmt.Fprintln(cmd.OutOrStdout(), "  Status:   OK")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "  Status:   MISMATCH")
				}
			}

			if !match {
				return fmt.Errorf("checksum mismatch for run %d", run.ID)
			}
			return nil
		},
	}
}
