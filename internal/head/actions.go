package head

import (
	"strings"

	"github.com/dtnitsch/seo-meta-lint/internal/common"
	"github.com/dtnitsch/seo-meta-lint/pkg/head"
	"github.com/dtnitsch/seo-meta-lint/pkg/storage"
	"github.com/dtnitsch/seo-meta-lint/pkg/validator"
	"github.com/urfave/cli/v2"
)

// HeadAction renders the <head> tags for each normalized input record.
// Multiple records are separated by a blank line.
func HeadAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(logger, "failed to load config", err)
	}

	store := storage.New()
	pages, err := common.LoadPages(store, common.InputsFromFlags(c))
	if err != nil {
		return common.Fail(logger, "failed to load records", err)
	}

	v := validator.NewFromConfig(cfg)
	blocks := make([]string, 0, len(pages))
	for _, p := range pages {
		blocks = append(blocks, head.Render(v.Normalize(p.Meta), cfg.Site.Name))
	}

	out := strings.Join(blocks, "\n")
	if err := store.SaveFile(c.String("out"), []byte(out)); err != nil {
		return common.Fail(logger, "failed to write head", err, "out", c.String("out"))
	}
	return nil
}
