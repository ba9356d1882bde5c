// Package scan implements the unconverted-file report command.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/blurbkit/blurbconv/internal/common"
	"github.com/blurbkit/blurbconv/pkg/scanner"
	"github.com/blurbkit/blurbconv/pkg/storage"
	"github.com/urfave/cli/v2"
)

// ScanAction walks the content directory and writes the newline-delimited
// list of files still lacking front matter. Read-only apart from the
// report file itself.
func ScanAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	dir := c.String("dir")
	if dir == "" {
		dir = common.DefaultContentDir("Blurbs")
	}
	if _, err := os.Stat(dir); err != nil {
		logger.Error("content directory not found", "dir", dir, "error", err)
		os.Exit(2)
	}

	unconverted, err := scanner.Unconverted(dir)
	if err != nil {
		logger.Error("scan failed", "dir", dir, "error", err)
		os.Exit(2)
	}

	out := c.String("out")
	var report strings.Builder
	for _, rel := range unconverted {
		report.WriteString(rel)
		report.WriteString("\n")
	}

	store := &storage.Storage{}
	if err := store.SaveFile(out, []byte(report.String())); err != nil {
		logger.Error("failed to write report", "out", out, "error", err)
		os.Exit(2)
	}

	fmt.Printf("Found %d unconverted HTML files in %s.\n", len(unconverted), dir)
	fmt.Printf("Output written to: %s\n", out)
	return nil
}
