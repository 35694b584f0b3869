package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/seo-meta-lint/internal/head"
	"github.com/dtnitsch/seo-meta-lint/internal/history"
	"github.com/dtnitsch/seo-meta-lint/internal/normalize"
	"github.com/dtnitsch/seo-meta-lint/internal/validate"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "input-format",
			Usage: "Input format: json, yaml or html (default: by file extension, json for stdin)",
		},
		&cli.StringFlag{
			Name:    "base",
			Usage:   "Record merged under every input record (site-wide defaults)",
			EnvVars: []string{"SEOLINT_BASE"},
		},
		&cli.StringFlag{
			Name:  "og-image-file",
			Usage: "Local og:image file; its dimensions, size and format fill missing og_image facts",
		},
		&cli.StringFlag{
			Name:    "site-lang",
			Usage:   "Site language used when a record has no lang",
			EnvVars: []string{"SEOLINT_SITE_LANG"},
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seolint",
		Usage: "Validate and normalize SEO page metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: .seolint.yaml when present)",
				EnvVars: []string{"SEOLINT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output",
			},
			&cli.StringFlag{
				Name:    "db-path",
				Usage:   "History database path (default: next to the binary)",
				EnvVars: []string{"SEOLINT_DB_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate metadata records and report findings",
				ArgsUsage: "[files...]",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json or yaml",
						EnvVars: []string{"SEOLINT_FORMAT"},
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Records validated concurrently",
						EnvVars: []string{"SEOLINT_WORKERS"},
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit 1 when any error finding is reported",
					},
					&cli.BoolFlag{
						Name:  "record",
						Usage: "Store the run in the history database",
					},
				),
				Action: validate.ValidateAction,
			},
			{
				Name:      "normalize",
				Usage:     "Print records with defaults applied",
				ArgsUsage: "[files...]",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: json or yaml",
						Value:   "json",
					},
				),
				Action: normalize.NormalizeAction,
			},
			{
				Name:      "head",
				Usage:     "Render <head> tags for records",
				ArgsUsage: "[files...]",
				Flags: append(inputFlags(),
					&cli.StringFlag{
						Name:    "site-name",
						Usage:   "og:site_name value",
						EnvVars: []string{"SEOLINT_SITE_NAME"},
					},
				),
				Action: head.HeadAction,
			},
			{
				Name:  "history",
				Usage: "Inspect recorded validation runs",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List recent runs",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Number of runs to show (0 = all)",
								Value: 20,
							},
						},
						Action: history.ListAction,
					},
					{
						Name:      "show",
						Usage:     "Show a run's findings",
						ArgsUsage: "[run-id | latest]",
						Action:    history.ShowAction,
					},
				},
			},
		},
	}
}
