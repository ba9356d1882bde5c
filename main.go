package main

import (
	"fmt"
	"os"

	"github.com/blurbkit/blurbconv/internal/audit"
	"github.com/blurbkit/blurbconv/internal/convert"
	dbcmd "github.com/blurbkit/blurbconv/internal/db"
	"github.com/blurbkit/blurbconv/internal/scan"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blurbconv",
		Usage: "Convert legacy blurb HTML pages to Jekyll front matter",
		Commands: []*cli.Command{
			{
				Name:      "items",
				Usage:     "Convert item blurb pages",
				ArgsUsage: "[files...]",
				Flags:     convertFlags(),
				Action:    convert.ItemsAction,
			},
			{
				Name:      "creatures",
				Usage:     "Convert creature blurb pages",
				ArgsUsage: "[files...]",
				Flags:     convertFlags(),
				Action:    convert.CreaturesAction,
			},
			{
				Name:  "scan",
				Usage: "Report HTML files not yet converted",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory tree to scan (default: sibling Blurbs directory)",
					},
					&cli.StringFlag{
						Name:  "out",
						Value: "unconverted.txt",
						Usage: "Report file to write",
					},
					quietFlag(),
				},
				Action: scan.ScanAction,
			},
			{
				Name:  "audit",
				Usage: "Verify converted files parse and read sensibly",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory tree to audit (default: sibling Blurbs directory)",
					},
					quietFlag(),
				},
				Action: audit.AuditAction,
			},
			{
				Name:      "history",
				Usage:     "List recorded conversion runs",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum number of runs to list",
					},
				},
				Action: dbcmd.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "Text file listing pages to convert, one per line",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Preview output without writing",
		},
		&cli.StringFlag{
			Name:  "content-dir",
			Usage: "Directory bare filenames resolve against (default: sibling Blurbs directory)",
		},
		quietFlag(),
	}
}

func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "quiet",
		Usage: "Only log errors",
	}
}
