// Package db implements the run-history inspection command.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	dbpkg "github.com/blurbkit/blurbconv/pkg/db"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists recorded conversion runs, newest first. With a run id
// argument it prints that run's per-file outcomes instead.
func HistoryAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	database, err := dbpkg.Open()
	if err != nil {
		logger.Error("failed to open run-history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	if c.NArg() > 0 {
		runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id: %s", c.Args().First())
		}
		return printRunFiles(database, runID)
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}
	if len(runs) == 0 {
		fmt.Printf("No recorded runs in %s. Run 'blurbconv items' or 'blurbconv creatures' first.\n", database.Path())
		return nil
	}

	fmt.Printf("%-6s %-10s %-20s %10s %8s %7s\n", "RUN", "COMMAND", "STARTED", "CONVERTED", "SKIPPED", "ERRORS")
	for _, r := range runs {
		fmt.Printf("%-6d %-10s %-20s %10d %8d %7d\n",
			r.RunID, r.Command, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Converted, r.Skipped, r.Errors)
	}
	return nil
}

func printRunFiles(database *dbpkg.DB, runID int64) error {
	files, err := database.GetRunFiles(runID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("Run %d has no recorded files.\n", runID)
		return nil
	}
	for _, f := range files {
		if f.Detail != "" {
			fmt.Printf("%-10s %s (%s)\n", f.Status, f.Path, f.Detail)
			continue
		}
		fmt.Printf("%-10s %s\n", f.Status, f.Path)
	}
	return nil
}
