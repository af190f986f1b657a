package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"booklist/internal/config"
	"booklist/internal/fetchlog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

const runTimeLayout = "2006-01-02 15:04:05"

var runCount int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the most recent fetch runs recorded by the server",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runCount, "count", "c", 10, "Number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	if cfg.Database.DSN == "" {
		return errors.New("DB_DSN is not set, no fetch runs to show")
	}
	if runCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", runCount)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect %s: %w", config.RedactDSN(cfg.Database.DSN), err)
	}
	defer pool.Close()

	runs, err := fetchlog.NewPostgresRepo(pool, cfg.Database.Timeout).LatestRuns(ctx, runCount)
	if err != nil {
		return fmt.Errorf("list fetch runs: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
	return nil
}

func renderRuns(runs []fetchlog.Run) string {
	if len(runs) == 0 {
		return footerStyle.Render("No fetch runs recorded")
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		finished := "-"
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Local().Format(runTimeLayout)
		}
		rows = append(rows, []string{
			r.StartedAt.Local().Format(runTimeLayout),
			finished,
			r.Status,
			r.Subject,
			strconv.Itoa(r.RecordsFetched),
			truncate(r.Error, maxCellWidth),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Started", "Finished", "Status", "Subject", "Records", "Error").
		Rows(rows...).
		String()
}
