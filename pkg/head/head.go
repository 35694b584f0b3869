// Package head renders a record as ready-to-inject <head> tags.
package head

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/dtnitsch/seo-meta-lint/models"
)

// Render writes the meta, link and script tags for meta, one per line.
// Run it on a normalized record to get og:type and twitter:card defaults.
func Render(meta models.PageMetadata, siteName string) string {
	var b strings.Builder

	tag := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	metaName := func(name, content string) {
		tag(`<meta name="%s" content="%s">`, name, html.EscapeString(content))
	}
	metaProp := func(prop, content string) {
		tag(`<meta property="%s" content="%s">`, prop, html.EscapeString(content))
	}

	// basics
	tag(`<meta charset="utf-8">`)
	if meta.Title != "" {
		tag(`<title>%s</title>`, html.EscapeString(meta.Title))
	}
	if meta.Lang != nil {
		tag(`<meta http-equiv="content-language" content="%s">`, html.EscapeString(*meta.Lang))
	}
	tag(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if meta.Description != "" {
		metaName("description", meta.Description)
	}
	if kw := meta.KeywordList(); len(kw) > 0 {
		metaName("keywords", strings.Join(kw, ", "))
	}
	if meta.Author != nil {
		metaName("author", *meta.Author)
	}
	if meta.CanonicalURL != nil {
		tag(`<link rel="canonical" href="%s">`, html.EscapeString(*meta.CanonicalURL))
	}
	if meta.Updated != nil {
		metaProp("og:updated_time", *meta.Updated)
	}

	// Open Graph
	metaProp("og:title", meta.Title)
	if meta.Description != "" {
		metaProp("og:description", meta.Description)
	}
	if meta.OGType != nil {
		metaProp("og:type", *meta.OGType)
	}
	if meta.OGImage != nil {
		metaProp("og:image", *meta.OGImage)
		if meta.OGImageType != nil {
			metaProp("og:image:type", *meta.OGImageType)
		}
		if meta.OGImageWidth != nil {
			metaProp("og:image:width", strconv.Itoa(*meta.OGImageWidth))
		}
		if meta.OGImageHeight != nil {
			metaProp("og:image:height", strconv.Itoa(*meta.OGImageHeight))
		}
	}
	if siteName != "" {
		metaProp("og:site_name", siteName)
	}

	// Twitter
	if meta.TwitterCard != nil {
		metaName("twitter:card", *meta.TwitterCard)
	}
	metaName("twitter:title", meta.Title)
	if meta.Description != "" {
		metaName("twitter:description", meta.Description)
	}
	if meta.OGImage != nil {
		metaName("twitter:image", *meta.OGImage)
	}

	// JSON-LD
	if meta.JSONLD != nil {
		tag(`<script type="application/ld+json">%s</script>`, escapeScript(*meta.JSONLD))
	}

	return b.String()
}

// escapeScript keeps a JSON-LD payload from closing its script element.
func escapeScript(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}
