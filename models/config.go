// Package models defines the metadata record, findings and configuration.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is not set.
const DefaultConfigFile = ".seolint.yaml"

// Limits holds the numeric bounds the validators enforce.
type Limits struct {
	TitleMin        int   `yaml:"title_min"`
	TitleMax        int   `yaml:"title_max"`
	DescriptionMin  int   `yaml:"description_min"`
	DescriptionMax  int   `yaml:"description_max"`
	KeywordsMin     int   `yaml:"keywords_min"`
	KeywordsMax     int   `yaml:"keywords_max"`
	OGImageWidth    int   `yaml:"og_image_width"`
	OGImageHeight   int   `yaml:"og_image_height"`
	OGImageMaxBytes int64 `yaml:"og_image_max_bytes"`
}

// DefaultLimits returns the bounds from the metadata guide.
func DefaultLimits() Limits {
	return Limits{
		TitleMin:        50,
		TitleMax:        60,
		DescriptionMin:  120,
		DescriptionMax:  160,
		KeywordsMin:     3,
		KeywordsMax:     8,
		OGImageWidth:    1200,
		OGImageHeight:   630,
		OGImageMaxBytes: 5 * 1024 * 1024,
	}
}

// SiteConfig carries site-wide values used for head rendering and defaults.
type SiteConfig struct {
	Name string `yaml:"name"`
	Lang string `yaml:"lang"`
}

// Config holds runtime configuration. Values come from the YAML file first;
// CLI flags override them.
type Config struct {
	Workers          int        `yaml:"workers"`
	Format           string     `yaml:"format"`
	DBPath           string     `yaml:"db_path"`
	Site             SiteConfig `yaml:"site"`
	PostContentTypes []string   `yaml:"post_content_types"`
	Limits           Limits     `yaml:"limits"`
}

// DefaultPostContentTypes are the content types treated as posts when
// defaulting og_type.
var DefaultPostContentTypes = []string{"work", "post", "article", "blog"}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Workers:          4,
		Format:           string(FormatText),
		PostContentTypes: append([]string(nil), DefaultPostContentTypes...),
		Limits:           DefaultLimits(),
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Zero values in a partial limits block fall back to the defaults
	cfg.Limits = cfg.Limits.withDefaults()
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if len(cfg.PostContentTypes) == 0 {
		cfg.PostContentTypes = append([]string(nil), DefaultPostContentTypes...)
	}
	if cfg.Format == "" {
		cfg.Format = string(FormatText)
	}

	return cfg, nil
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.TitleMin == 0 {
		l.TitleMin = d.TitleMin
	}
	if l.TitleMax == 0 {
		l.TitleMax = d.TitleMax
	}
	if l.DescriptionMin == 0 {
		l.DescriptionMin = d.DescriptionMin
	}
	if l.DescriptionMax == 0 {
		l.DescriptionMax = d.DescriptionMax
	}
	if l.KeywordsMin == 0 {
		l.KeywordsMin = d.KeywordsMin
	}
	if l.KeywordsMax == 0 {
		l.KeywordsMax = d.KeywordsMax
	}
	if l.OGImageWidth == 0 {
		l.OGImageWidth = d.OGImageWidth
	}
	if l.OGImageHeight == 0 {
		l.OGImageHeight = d.OGImageHeight
	}
	if l.OGImageMaxBytes == 0 {
		l.OGImageMaxBytes = d.OGImageMaxBytes
	}
	return l
}
