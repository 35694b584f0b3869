package normalize

import (
	"bytes"

	"github.com/dtnitsch/seo-meta-lint/internal/common"
	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/report"
	"github.com/dtnitsch/seo-meta-lint/pkg/storage"
	"github.com/dtnitsch/seo-meta-lint/pkg/validator"
	"github.com/urfave/cli/v2"
)

// NormalizeAction prints each input record with defaults applied.
func NormalizeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(logger, "failed to load config", err)
	}
	format, err := common.OutputFormat(cfg)
	if err != nil {
		return cli.Exit(err.Error(), common.ExitFindings)
	}

	store := storage.New()
	pages, err := common.LoadPages(store, common.InputsFromFlags(c))
	if err != nil {
		return common.Fail(logger, "failed to load records", err)
	}

	v := validator.NewFromConfig(cfg)
	records := make([]models.PageMetadata, 0, len(pages))
	for _, p := range pages {
		records = append(records, v.Normalize(p.Meta))
	}

	var buf bytes.Buffer
	if err := report.WriteRecords(&buf, records, format); err != nil {
		return common.Fail(logger, "failed to render records", err)
	}
	if err := store.SaveFile(c.String("out"), buf.Bytes()); err != nil {
		return common.Fail(logger, "failed to write records", err, "out", c.String("out"))
	}
	return nil
}
