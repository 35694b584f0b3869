package common

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/decode"
	"github.com/dtnitsch/seo-meta-lint/pkg/extractor"
	"github.com/dtnitsch/seo-meta-lint/pkg/imageprobe"
	"github.com/dtnitsch/seo-meta-lint/pkg/storage"
	"github.com/dtnitsch/seo-meta-lint/pkg/validator"
	"github.com/urfave/cli/v2"
)

// Exit codes shared by all commands.
const (
	ExitFindings = 1
	ExitFailure  = 2
)

// NewLogger builds the JSON stderr logger; --quiet keeps only errors and
// --verbose adds debug output.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case c.Bool("quiet"):
		logLevel = slog.LevelError
	case c.Bool("verbose"):
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// Fail logs err and returns the infrastructure-failure exit error.
func Fail(logger *slog.Logger, msg string, err error, args ...any) error {
	logger.Error(msg, append([]any{"error", err}, args...)...)
	return cli.Exit("", ExitFailure)
}

// LoadConfig reads the config file named by --config (required when set)
// or the default file in the working directory, then applies flag
// overrides.
func LoadConfig(c *cli.Context) (models.Config, error) {
	path := models.DefaultConfigFile
	required := false
	if c.IsSet("config") {
		path = c.String("config")
		required = true
	}

	cfg, err := models.LoadConfig(path, required)
	if err != nil {
		return cfg, err
	}

	if c.IsSet("workers") && c.Int("workers") > 0 {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
	}
	if c.IsSet("site-name") {
		cfg.Site.Name = c.String("site-name")
	}
	if c.IsSet("site-lang") {
		cfg.Site.Lang = c.String("site-lang")
	}
	return cfg, nil
}

// Inputs describes how records are loaded for a command.
type Inputs struct {
	Paths       []string
	InputFormat string
	BasePath    string
	ImagePath   string
}

// InputsFromFlags collects input options from the command line. No paths
// means stdin.
func InputsFromFlags(c *cli.Context) Inputs {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		paths = []string{storage.Stdin}
	}
	return Inputs{
		Paths:       paths,
		InputFormat: c.String("input-format"),
		BasePath:    c.String("base"),
		ImagePath:   c.String("og-image-file"),
	}
}

// LoadPages reads every input, merges each record over the base record and
// fills og_image facts from the probed image when one is given.
func LoadPages(store *storage.Storage, in Inputs) ([]validator.Page, error) {
	for _, path := range []string{in.BasePath, in.ImagePath} {
		if path != "" && path != storage.Stdin && !store.HasFile(path) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
	}

	var base models.PageMetadata
	if in.BasePath != "" {
		recs, err := readRecords(store, in.BasePath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load base record: %w", err)
		}
		if len(recs) != 1 {
			return nil, fmt.Errorf("base record %s: expected one record, got %d", in.BasePath, len(recs))
		}
		base = recs[0]
	}

	var probe *imageprobe.Info
	if in.ImagePath != "" {
		info, err := imageprobe.ProbeFile(in.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to probe og image %s: %w", in.ImagePath, err)
		}
		probe = &info
	}

	var pages []validator.Page
	for _, path := range in.Paths {
		recs, err := readRecords(store, path, in.InputFormat)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sourceName(path), err)
		}
		for i, rec := range recs {
			meta := base.Merge(rec)
			if probe != nil {
				meta = probe.Apply(meta)
			}
			source := sourceName(path)
			if len(recs) > 1 {
				source = fmt.Sprintf("%s#%d", source, i)
			}
			pages = append(pages, validator.Page{Source: source, Meta: meta})
		}
	}
	return pages, nil
}

func readRecords(store *storage.Storage, path, hint string) ([]models.PageMetadata, error) {
	format, err := models.ResolveInputFormat(path, hint)
	if err != nil {
		return nil, err
	}
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format == models.FormatHTML {
		meta, err := extractor.FromHTML(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return []models.PageMetadata{meta}, nil
	}
	return decode.Records(data, format)
}

func sourceName(path string) string {
	if path == storage.Stdin {
		return "stdin"
	}
	return path
}

// OutputFormat parses the effective output format.
func OutputFormat(cfg models.Config) (models.Format, error) {
	f, err := models.ParseFormat(cfg.Format)
	if err != nil {
		return "", err
	}
	if f == models.FormatHTML {
		return "", fmt.Errorf("html is not an output format")
	}
	return f, nil
}
