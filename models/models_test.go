package models

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , ,x,,", []string{"x"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := SplitKeywords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	base := PageMetadata{Title: "Base", Lang: Str("en"), Author: Str("Team")}
	over := PageMetadata{Title: "Page", Lang: Str("fr"), OGImageWidth: Int(1200)}

	got := base.Merge(over)
	if got.Title != "Page" || *got.Lang != "fr" || *got.Author != "Team" || *got.OGImageWidth != 1200 {
		t.Errorf("Merge() = %+v", got)
	}
	if *base.Lang != "en" {
		t.Error("Merge() modified the receiver")
	}
	if got := base.Merge(PageMetadata{}); !reflect.DeepEqual(got, base) {
		t.Errorf("merging an empty record changed the base: %+v", got)
	}
}

func TestResolveInputFormat(t *testing.T) {
	tests := []struct {
		path, hint string
		want       Format
		wantErr    bool
	}{
		{"pages.yml", "", FormatYAML, false},
		{"index.HTML", "", FormatHTML, false},
		{"pages.json", "", FormatJSON, false},
		{"-", "", FormatJSON, false},
		{"pages.json", "yaml", FormatYAML, false},
		{"pages.json", "text", "", true},
		{"pages.json", "xml", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveInputFormat(tt.path, tt.hint)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveInputFormat(%q, %q) error = %v", tt.path, tt.hint, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveInputFormat(%q, %q) = %q, want %q", tt.path, tt.hint, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"), false)
	if err != nil {
		t.Fatalf("missing optional config: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("missing config should give defaults, got %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml"), true); err == nil {
		t.Error("missing required config should fail")
	}

	path := filepath.Join(dir, "seolint.yaml")
	content := "workers: 8\nsite:\n  name: Example\n  lang: en-GB\nlimits:\n  title_max: 70\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != 8 || cfg.Site.Name != "Example" || cfg.Site.Lang != "en-GB" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Limits.TitleMax != 70 || cfg.Limits.TitleMin != 50 || cfg.Limits.OGImageMaxBytes != 5*1024*1024 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if !reflect.DeepEqual(cfg.PostContentTypes, DefaultPostContentTypes) {
		t.Errorf("post content types = %v", cfg.PostContentTypes)
	}

	if err := os.WriteFile(path, []byte("workers: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path, true); err == nil {
		t.Error("malformed config should fail")
	}
}
