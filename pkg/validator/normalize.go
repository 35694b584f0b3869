package validator

import (
	"strings"

	"github.com/dtnitsch/seo-meta-lint/models"
)

// Normalizer fills defaults for absent optional fields. Present fields are
// never touched, even when they fail validation. The zero value is usable.
type Normalizer struct {
	// PostContentTypes makes og_type default to "article". Nil means
	// models.DefaultPostContentTypes.
	PostContentTypes []string
	// SiteLang fills lang when set.
	SiteLang string
}

// Normalize returns a copy of meta with defaults applied. meta is not modified.
func (n Normalizer) Normalize(meta models.PageMetadata) models.PageMetadata {
	out := meta
	if out.OGType == nil {
		out.OGType = models.Str(n.DefaultOGType(meta))
	}
	if out.TwitterCard == nil {
		out.TwitterCard = models.Str(DefaultTwitterCard)
	}
	if out.Lang == nil && n.SiteLang != "" {
		out.Lang = models.Str(n.SiteLang)
	}
	return out
}

// DefaultOGType derives og_type from content_type: "article" for post-like
// content, "website" otherwise.
func (n Normalizer) DefaultOGType(meta models.PageMetadata) string {
	if meta.ContentType != nil && n.isPost(*meta.ContentType) {
		return "article"
	}
	return "website"
}

func (n Normalizer) isPost(contentType string) bool {
	types := n.PostContentTypes
	if types == nil {
		types = models.DefaultPostContentTypes
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range types {
		if ct == strings.ToLower(t) {
			return true
		}
	}
	return false
}
