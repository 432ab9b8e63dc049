// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/papergen/internal/history"
	"github.com/pdiddy/papergen/internal/textutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past generation runs",
	Long: `History lists recorded generation runs, newest first, with the backend,
threshold, number of papers, and outcome of each.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failed, _ := cmd.Flags().GetBool("failed")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(setting(cmd, "history-db", "history_db"))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), limit, failed)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-11s  %-9s  %-6s  %-7s  %s\n",
		"Started", "Backend", "Threshold", "Papers", "Status", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		status := "ok"
		if !r.Success {
			status = "error"
		}
		msg := r.Error
		if short := textutil.Truncate(msg, 37); short != msg {
			msg = short + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-11s  %-9d  %-6d  %-7s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Backend, r.Threshold, r.Papers, status, msg)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().String("history-db", "", "SQLite file recording past runs (default artifacts/history.db)")
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().Bool("failed", false, "list only failed runs")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
