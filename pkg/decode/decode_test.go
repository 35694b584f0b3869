package decode

import (
	"errors"
	"testing"

	"github.com/dtnitsch/seo-meta-lint/models"
)

func TestJSONRecord(t *testing.T) {
	data := []byte(`{
		"title": "Hello",
		"description": "World",
		"canonical_url": "https://example.com/",
		"og_image_width": 1200,
		"og_image_bytes": 524288,
		"slug": null
	}`)

	m, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if m.Title != "Hello" || m.Description != "World" {
		t.Errorf("title/description = %q/%q", m.Title, m.Description)
	}
	if m.CanonicalURL == nil || *m.CanonicalURL != "https://example.com/" {
		t.Errorf("canonical_url = %v", m.CanonicalURL)
	}
	if m.OGImageWidth == nil || *m.OGImageWidth != 1200 {
		t.Errorf("og_image_width = %v", m.OGImageWidth)
	}
	if m.OGImageBytes == nil || *m.OGImageBytes != 524288 {
		t.Errorf("og_image_bytes = %v", m.OGImageBytes)
	}
	if m.Slug != nil {
		t.Errorf("null slug should be absent, got %q", *m.Slug)
	}
	if m.Lang != nil {
		t.Errorf("missing lang should be absent, got %q", *m.Lang)
	}
}

func TestYAMLRecord(t *testing.T) {
	data := []byte(`
title: Hello
updated: 2025-05-20
lang: no
keywords: a, b, c
og_image_height: 630
`)
	m, err := YAML(data)
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if m.Updated == nil || *m.Updated != "2025-05-20" {
		t.Errorf("updated = %v, want the raw date string", m.Updated)
	}
	if m.Lang == nil || *m.Lang != "no" {
		t.Errorf("lang = %v, want \"no\"", m.Lang)
	}
	if got := m.KeywordList(); len(got) != 3 {
		t.Errorf("keywords = %v, want 3 terms", got)
	}
	if m.OGImageHeight == nil || *m.OGImageHeight != 630 {
		t.Errorf("og_image_height = %v", m.OGImageHeight)
	}
}

func TestYAMLTimestampsStayStrings(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"rfc3339", "title: x\nupdated: 2025-05-20T12:30:00Z\n", "2025-05-20T12:30:00Z"},
		{"date only", "title: x\nupdated: 2025-05-20\n", "2025-05-20"},
		{"quoted", "title: x\nupdated: \"2025-05-20T12:30:00Z\"\n", "2025-05-20T12:30:00Z"},
		{"fractional seconds", "title: x\nupdated: 2025-05-20T12:30:00.123+02:00\n", "2025-05-20T12:30:00.123+02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := YAML([]byte(tt.doc))
			if err != nil {
				t.Fatalf("YAML() error = %v", err)
			}
			if m.Updated == nil || *m.Updated != tt.want {
				t.Errorf("updated = %v, want %q", m.Updated, tt.want)
			}
		})
	}
}

func TestYAMLTypedScalars(t *testing.T) {
	m, err := YAML([]byte("title: x\nslug: ~\nog_image_width: 1200\n"))
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if m.Slug != nil {
		t.Errorf("null slug should be absent, got %q", *m.Slug)
	}
	if m.OGImageWidth == nil || *m.OGImageWidth != 1200 {
		t.Errorf("og_image_width = %v, want 1200", m.OGImageWidth)
	}

	for _, doc := range []string{"title: 42\n", "title: true\n", "og_image_width: \"1200\"\n", "og_image_width: 12.5\n"} {
		var shape *ShapeError
		if _, err := YAML([]byte(doc)); !errors.As(err, &shape) {
			t.Errorf("YAML(%q) error = %v, want *ShapeError", doc, err)
		}
	}
}

func TestFromMapReportsFirstSortedField(t *testing.T) {
	raw := map[string]any{
		"title":          42,
		"description":    true,
		"og_image_width": "wide",
		"lang":           []any{"en"},
	}
	for i := 0; i < 20; i++ {
		_, err := FromMap(0, raw)
		var shape *ShapeError
		if !errors.As(err, &shape) {
			t.Fatalf("FromMap() error = %v, want *ShapeError", err)
		}
		if shape.Field != "description" {
			t.Fatalf("run %d: reported field %q, want description", i, shape.Field)
		}
	}
}

func TestRecordsList(t *testing.T) {
	recs, err := Records([]byte(`[{"title":"a"},{"title":"b"}]`), models.FormatJSON)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(recs) != 2 || recs[1].Title != "b" {
		t.Errorf("records = %+v", recs)
	}

	if _, err := JSON([]byte(`[{"title":"a"},{"title":"b"}]`)); err == nil {
		t.Error("JSON() on a list should fail")
	}
}

func TestShapeErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		format    models.Format
		wantIndex int
		wantField string
	}{
		{name: "number title", data: `{"title": 42}`, format: models.FormatJSON, wantField: "title"},
		{name: "list keywords", data: `{"keywords": ["a","b"]}`, format: models.FormatJSON, wantField: "keywords"},
		{name: "string width", data: `{"og_image_width": "1200"}`, format: models.FormatJSON, wantField: "og_image_width"},
		{name: "fractional width", data: `{"og_image_width": 12.5}`, format: models.FormatJSON, wantField: "og_image_width"},
		{name: "negative bytes", data: `{"og_image_bytes": -1}`, format: models.FormatJSON, wantField: "og_image_bytes"},
		{name: "unknown field", data: `{"titel": "x"}`, format: models.FormatJSON, wantField: "titel"},
		{name: "bool slug yaml", data: "slug: true\n", format: models.FormatYAML, wantField: "slug"},
		{name: "second record", data: `[{"title":"ok"},{"lang": 7}]`, format: models.FormatJSON, wantIndex: 1, wantField: "lang"},
		{name: "scalar record", data: `"hello"`, format: models.FormatJSON},
		{name: "null in list", data: `[null]`, format: models.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Records([]byte(tt.data), tt.format)
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("error = %v, want *ShapeError", err)
			}
			if shapeErr.Field != tt.wantField || shapeErr.Index != tt.wantIndex {
				t.Errorf("got index %d field %q, want index %d field %q",
					shapeErr.Index, shapeErr.Field, tt.wantIndex, tt.wantField)
			}
			if shapeErr.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSyntaxErrorIsNotShapeError(t *testing.T) {
	_, err := Records([]byte(`{"title": `), models.FormatJSON)
	if err == nil {
		t.Fatal("expected error")
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		t.Errorf("syntax error reported as shape error: %v", err)
	}
}
