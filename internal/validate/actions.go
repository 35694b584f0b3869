package validate

import (
	"bytes"
	"strings"
	"time"

	"github.com/dtnitsch/seo-meta-lint/internal/common"
	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/db"
	"github.com/dtnitsch/seo-meta-lint/pkg/report"
	"github.com/dtnitsch/seo-meta-lint/pkg/storage"
	"github.com/dtnitsch/seo-meta-lint/pkg/validator"
	"github.com/urfave/cli/v2"
)

func ValidateAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	startTime := time.Now()

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(logger, "failed to load config", err)
	}
	format, err := common.OutputFormat(cfg)
	if err != nil {
		return cli.Exit(err.Error(), common.ExitFindings)
	}

	store := storage.New()
	in := common.InputsFromFlags(c)
	pages, err := common.LoadPages(store, in)
	if err != nil {
		return common.Fail(logger, "failed to load records", err)
	}
	logger.Debug("loaded records", "pages", len(pages), "inputs", len(in.Paths))

	v := validator.NewFromConfig(cfg)
	batch := v.ValidateAll(pages)

	var buf bytes.Buffer
	if err := report.Write(&buf, batch, format); err != nil {
		return common.Fail(logger, "failed to render report", err)
	}
	if err := store.SaveFile(c.String("out"), buf.Bytes()); err != nil {
		return common.Fail(logger, "failed to write report", err, "out", c.String("out"))
	}

	if c.Bool("record") {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return common.Fail(logger, "failed to open database", err)
		}
		defer database.Close()

		runID, err := database.RecordRun(strings.Join(in.Paths, ","), batch)
		if err != nil {
			return common.Fail(logger, "failed to record run", err)
		}
		logger.Info("recorded run", "run_id", runID, "db", database.Path())
	}

	totals := batch.Totals()
	logger.Info("validation complete",
		"pages", len(batch.Pages),
		"errors", totals[models.SeverityError],
		"warnings", totals[models.SeverityWarning],
		"info", totals[models.SeverityInfo],
		"duration", time.Since(startTime).String(),
	)

	if c.Bool("strict") && batch.HasErrors() {
		return cli.Exit("", common.ExitFindings)
	}
	return nil
}
