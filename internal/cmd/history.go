package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"flowgen/internal/config"
	"flowgen/internal/store"
)

// historyCmd represents the flowgen history command
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List or show recorded generation runs",
	Long: `List generation runs recorded in .flowgen/history.db, newest first.

With a run id argument, print that run's stored diagram instead.

Examples:
  flowgen history
  flowgen history --limit 5
  flowgen history 12
  flowgen history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int  // --limit
	historyClear bool // --clear
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	configDir, err := config.FindConfigDir(".")
	if err != nil {
		return fmt.Errorf("no .flowgen directory found; run flowgen gen inside a project with one")
	}

	s, err := store.Open(configDir)
	if err != nil {
		return err
	}
	defer s.Close()

	if historyClear {
		if err := s.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		run, err := s.GetRun(id)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), run.Diagram)
		return nil
	}

	runs, err := s.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}

	for _, r := range runs {
		target := r.SourcePath
		if r.MethodFilter != "" {
			target += " " + r.MethodFilter
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %s  (%d nodes, %d edges)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), target, r.NodeCount, r.EdgeCount)
	}
	return nil
}
