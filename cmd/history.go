package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probelab/probe/internal/report"
	"github.com/probelab/probe/internal/result"
)

var flagLimit int

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List past runs, or summarize one run from the history database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Results.HistoryDB == "" {
				return fmt.Errorf("no history_db configured under results")
			}

			history, err := result.OpenHistory(cfg.Results.HistoryDB)
			if err != nil {
				return err
			}
			defer history.Close()
			ctx := context.Background()
			if err := history.Migrate(ctx); err != nil {
				return err
			}

			if len(args) == 1 {
				evals, err := history.RunEvaluations(ctx, args[0])
				if err != nil {
					return err
				}
				if len(evals) == 0 {
					return fmt.Errorf("no evaluations stored for run %s", args[0])
				}
				return report.Generate(report.Summarize(evals, nil), flagFormat, os.Stdout)
			}

			runs, err := history.ListRuns(ctx, flagLimit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %s  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.ID, r.RunDir)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagLimit, "limit", 20, "max runs to list")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format for a single run (table, markdown, json)")
	return cmd
}
