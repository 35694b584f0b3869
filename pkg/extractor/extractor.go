// Package extractor reads SEO metadata out of an HTML page's head.
package extractor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/seo-meta-lint/models"
)

// FromHTML parses a document and builds a record from its meta, link and
// ld+json tags. Tags that are missing leave the field absent.
func FromHTML(r io.Reader) (models.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.PageMetadata{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc), nil
}

// FromDocument builds a record from an already parsed document.
func FromDocument(doc *goquery.Document) models.PageMetadata {
	var m models.PageMetadata

	m.Title = normalizeText(doc.Find("head title").First().Text())
	if m.Title == "" {
		if v, ok := property(doc, "og:title"); ok {
			m.Title = v
		}
	}
	if v, ok := name(doc, "description"); ok {
		m.Description = v
	} else if v, ok := property(doc, "og:description"); ok {
		m.Description = v
	}

	m.Keywords = optional(name(doc, "keywords"))
	m.Author = optional(name(doc, "author"))

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		m.CanonicalURL = models.Str(strings.TrimSpace(href))
	}

	if lang, ok := doc.Find("html").First().Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		m.Lang = models.Str(strings.TrimSpace(lang))
	} else if v, ok := httpEquiv(doc, "content-language"); ok {
		m.Lang = models.Str(v)
	}

	m.Updated = optional(property(doc, "og:updated_time"))
	if m.Updated == nil {
		m.Updated = optional(property(doc, "article:modified_time"))
	}

	m.OGImage = optional(property(doc, "og:image"))
	m.OGImageType = optional(property(doc, "og:image:type"))
	m.OGImageWidth = optionalInt(property(doc, "og:image:width"))
	m.OGImageHeight = optionalInt(property(doc, "og:image:height"))
	m.OGType = optional(property(doc, "og:type"))
	m.TwitterCard = optional(name(doc, "twitter:card"))

	// Only the first block is kept; additional blocks are not merged.
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			m.JSONLD = models.Str(text)
			return false
		}
		return true
	})

	return m
}

func name(doc *goquery.Document, key string) (string, bool) {
	return metaContent(doc, "name", key)
}

func property(doc *goquery.Document, key string) (string, bool) {
	return metaContent(doc, "property", key)
}

func httpEquiv(doc *goquery.Document, key string) (string, bool) {
	return metaContent(doc, "http-equiv", key)
}

// metaContent finds the first <meta attr=key> (case-insensitive key) and
// returns its trimmed content.
func metaContent(doc *goquery.Document, attr, key string) (string, bool) {
	var (
		value string
		found bool
	)
	doc.Find("meta[" + attr + "]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		if !strings.EqualFold(strings.TrimSpace(v), key) {
			return true
		}
		value, found = s.Attr("content")
		value = strings.TrimSpace(value)
		return !found
	})
	return value, found
}

func optional(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return models.Str(v)
}

// optionalInt drops values that are not plain integers; the tag is then
// treated as absent.
func optionalInt(v string, ok bool) *int {
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil
	}
	return models.Int(n)
}

// normalizeText collapses runs of whitespace into single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
