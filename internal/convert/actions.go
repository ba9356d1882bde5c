package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blurbkit/blurbconv/internal/common"
	"github.com/blurbkit/blurbconv/models"
	"github.com/blurbkit/blurbconv/pkg/db"
	"github.com/blurbkit/blurbconv/pkg/storage"
	"github.com/urfave/cli/v2"
)

// ItemsAction converts item blurb pages.
func ItemsAction(c *cli.Context) error {
	return runBatch(c, "items", convertItem)
}

// CreaturesAction converts creature blurb pages.
func CreaturesAction(c *cli.Context) error {
	return runBatch(c, "creatures", convertCreature)
}

func runBatch(c *cli.Context, command string, convert convertFn) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := buildConfig(c)
	if err != nil {
		return err
	}
	if len(config.Files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No files provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintf(os.Stderr, "  blurbconv %s Widget.html Twig.html\n", command)
		fmt.Fprintf(os.Stderr, "  blurbconv %s --file list.txt\n", command)
		fmt.Fprintf(os.Stderr, "  blurbconv %s --file list.txt --dry-run\n", command)
		os.Exit(1)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open run-history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runID, err := database.InsertRun(command)
	if err != nil {
		logger.Error("failed to open run record", "error", err)
		os.Exit(2)
	}

	store := &storage.Storage{}
	var converted, skipped, errored int

	for _, path := range config.Files {
		base := filepath.Base(path)

		output, err := convertFile(store, path, convert)
		switch {
		case errors.Is(err, errSkip):
			logger.Info("skipping file", "file", base, "reason", skipReason(err))
			recordFile(logger, database, runID, path, db.StatusSkipped, skipReason(err))
			skipped++
			continue
		case err != nil:
			logger.Error("conversion failed", "file", base, "error", err)
			recordFile(logger, database, runID, path, db.StatusError, err.Error())
			errored++
			continue
		}

		if config.DryRun {
			fmt.Printf("--- DRY RUN: %s ---\n%s--- END ---\n", base, output)
			recordFile(logger, database, runID, path, db.StatusConverted, "dry-run")
			converted++
			continue
		}

		if err := store.SaveFile(path, []byte(output)); err != nil {
			logger.Error("write failed", "file", base, "error", err)
			recordFile(logger, database, runID, path, db.StatusError, err.Error())
			errored++
			continue
		}

		logger.Info("converted", "file", base)
		recordFile(logger, database, runID, path, db.StatusConverted, "")
		converted++
	}

	if err := database.FinishRun(runID, converted, skipped, errored); err != nil {
		logger.Warn("failed to finalize run record", "error", err)
	}

	fmt.Printf("\nDone. Converted: %d, Skipped: %d, Errors: %d\n", converted, skipped, errored)

	if errored > 0 {
		os.Exit(1)
	}
	return nil
}

func buildConfig(c *cli.Context) (*models.ConvertConfig, error) {
	config := &models.ConvertConfig{
		DryRun:     c.Bool("dry-run"),
		ContentDir: c.String("content-dir"),
	}
	if config.ContentDir == "" {
		config.ContentDir = common.DefaultContentDir("Blurbs")
	}

	var files []string
	if listPath := c.String("file"); listPath != "" {
		listed, err := common.ReadFileList(listPath)
		if err != nil {
			return nil, err
		}
		files = listed
	} else {
		files = c.Args().Slice()
	}

	config.Files = common.ResolvePaths(files, config.ContentDir)
	return config, nil
}

func recordFile(logger *slog.Logger, database *db.DB, runID int64, path, status, detail string) {
	if err := database.RecordFile(runID, path, status, detail); err != nil {
		logger.Warn("failed to record file outcome", "file", path, "error", err)
	}
}
