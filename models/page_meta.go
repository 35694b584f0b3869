package models

import "strings"

// PageMetadata is the flat SEO metadata record for a single page.
// Optional fields are pointers; nil means the field is absent.
type PageMetadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	Keywords     *string `json:"keywords,omitempty" yaml:"keywords,omitempty"` // comma-separated
	Author       *string `json:"author,omitempty" yaml:"author,omitempty"`
	CanonicalURL *string `json:"canonical_url,omitempty" yaml:"canonical_url,omitempty"`
	Lang         *string `json:"lang,omitempty" yaml:"lang,omitempty"`       // BCP 47, e.g. "fr" or "en-US"
	Updated      *string `json:"updated,omitempty" yaml:"updated,omitempty"` // ISO 8601

	// Social
	OGImage       *string `json:"og_image,omitempty" yaml:"og_image,omitempty"`
	OGImageWidth  *int    `json:"og_image_width,omitempty" yaml:"og_image_width,omitempty"`
	OGImageHeight *int    `json:"og_image_height,omitempty" yaml:"og_image_height,omitempty"`
	OGImageBytes  *int64  `json:"og_image_bytes,omitempty" yaml:"og_image_bytes,omitempty"`
	OGImageType   *string `json:"og_image_type,omitempty" yaml:"og_image_type,omitempty"` // image/png, jpg, ...
	OGType        *string `json:"og_type,omitempty" yaml:"og_type,omitempty"`             // website, article, book...
	TwitterCard   *string `json:"twitter_card,omitempty" yaml:"twitter_card,omitempty"`

	JSONLD *string `json:"json_ld,omitempty" yaml:"json_ld,omitempty"`

	ContentType *string `json:"content_type,omitempty" yaml:"content_type,omitempty"` // work, author, season, event
	Slug        *string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// Str returns a pointer to s. Handy for building records in code.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Int64 returns a pointer to n.
func Int64(n int64) *int64 { return &n }

// Merge returns a copy of m with every field set in over taking precedence.
// Title and description win when non-empty, the rest when non-nil.
func (m PageMetadata) Merge(over PageMetadata) PageMetadata {
	out := m
	if over.Title != "" {
		out.Title = over.Title
	}
	if over.Description != "" {
		out.Description = over.Description
	}
	takeStr := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	takeStr(&out.Keywords, over.Keywords)
	takeStr(&out.Author, over.Author)
	takeStr(&out.CanonicalURL, over.CanonicalURL)
	takeStr(&out.Lang, over.Lang)
	takeStr(&out.Updated, over.Updated)
	takeStr(&out.OGImage, over.OGImage)
	takeStr(&out.OGImageType, over.OGImageType)
	takeStr(&out.OGType, over.OGType)
	takeStr(&out.TwitterCard, over.TwitterCard)
	takeStr(&out.JSONLD, over.JSONLD)
	takeStr(&out.ContentType, over.ContentType)
	takeStr(&out.Slug, over.Slug)
	if over.OGImageWidth != nil {
		out.OGImageWidth = over.OGImageWidth
	}
	if over.OGImageHeight != nil {
		out.OGImageHeight = over.OGImageHeight
	}
	if over.OGImageBytes != nil {
		out.OGImageBytes = over.OGImageBytes
	}
	return out
}

// KeywordList splits the keywords field into terms. Nil when absent.
func (m PageMetadata) KeywordList() []string {
	if m.Keywords == nil {
		return nil
	}
	return SplitKeywords(*m.Keywords)
}

// SplitKeywords splits a comma-separated list, trimming whitespace and
// dropping empty terms.
func SplitKeywords(s string) []string {
	var terms []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			terms = append(terms, part)
		}
	}
	return terms
}
