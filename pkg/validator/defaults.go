package validator

import (
	"regexp"

	"github.com/dtnitsch/seo-meta-lint/models"
)

// Field names as they appear on the wire and in findings.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldKeywords     = "keywords"
	FieldCanonicalURL = "canonical_url"
	FieldLang         = "lang"
	FieldUpdated      = "updated"
	FieldOGImage      = "og_image"
	FieldOGType       = "og_type"
	FieldTwitterCard  = "twitter_card"
	FieldJSONLD       = "json_ld"
	FieldSlug         = "slug"
)

// DefaultTwitterCard is the recommended twitter:card value.
const DefaultTwitterCard = "summary_large_image"

// OGTypes are the Open Graph object types accepted for og_type.
var OGTypes = []string{
	"website",
	"article",
	"book",
	"profile",
	"music.song",
	"music.album",
	"music.playlist",
	"music.radio_station",
	"video.movie",
	"video.episode",
	"video.tv_show",
	"video.other",
}

// ImageFormats are the accepted og:image MIME types.
var ImageFormats = []string{"image/jpeg", "image/png", "image/webp"}

var (
	// primary subtag of 2-3 letters, optional 2-letter or 3-digit region
	langPattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-([A-Za-z]{2}|[0-9]{3}))?$`)
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func required(get func(models.PageMetadata) string) Getter {
	return func(m models.PageMetadata) (string, bool) { return get(m), true }
}

func optional(get func(models.PageMetadata) *string) Getter {
	return func(m models.PageMetadata) (string, bool) {
		p := get(m)
		if p == nil {
			return "", false
		}
		return *p, true
	}
}

// DefaultRules returns the rule set in field declaration order, which is
// also the order findings are reported in.
func DefaultRules(l models.Limits) []Rule {
	return []Rule{
		LengthRule{
			Name:     FieldTitle,
			Get:      required(func(m models.PageMetadata) string { return m.Title }),
			Min:      l.TitleMin,
			Max:      l.TitleMax,
			Severity: models.SeverityWarning,
		},
		LengthRule{
			Name:     FieldDescription,
			Get:      required(func(m models.PageMetadata) string { return m.Description }),
			Min:      l.DescriptionMin,
			Max:      l.DescriptionMax,
			Severity: models.SeverityWarning,
		},
		CountRule{
			Name:     FieldKeywords,
			Get:      optional(func(m models.PageMetadata) *string { return m.Keywords }),
			Min:      l.KeywordsMin,
			Max:      l.KeywordsMax,
			Severity: models.SeverityWarning,
		},
		AbsoluteURLRule{
			Name:     FieldCanonicalURL,
			Get:      optional(func(m models.PageMetadata) *string { return m.CanonicalURL }),
			Severity: models.SeverityError,
		},
		PatternRule{
			Name:     FieldLang,
			Get:      optional(func(m models.PageMetadata) *string { return m.Lang }),
			Pattern:  langPattern,
			Severity: models.SeverityError,
			Code:     "invalid_language_tag",
			Expect:   "a BCP 47 tag such as \"fr\" or \"en-US\"",
		},
		DatetimeRule{
			Name:     FieldUpdated,
			Get:      optional(func(m models.PageMetadata) *string { return m.Updated }),
			Layouts:  ISO8601Layouts,
			Severity: models.SeverityError,
		},
		ImageRule{
			Name:      FieldOGImage,
			Width:     l.OGImageWidth,
			Height:    l.OGImageHeight,
			MaxBytes:  l.OGImageMaxBytes,
			Formats:   ImageFormats,
			Severity:  models.SeverityWarning,
			Unchecked: models.SeverityInfo,
		},
		EnumRule{
			Name:     FieldOGType,
			Get:      optional(func(m models.PageMetadata) *string { return m.OGType }),
			Allowed:  OGTypes,
			Severity: models.SeverityError,
		},
		RecommendedRule{
			Name:     FieldTwitterCard,
			Get:      optional(func(m models.PageMetadata) *string { return m.TwitterCard }),
			Want:     DefaultTwitterCard,
			Severity: models.SeverityInfo,
		},
		JSONRule{
			Name:     FieldJSONLD,
			Get:      optional(func(m models.PageMetadata) *string { return m.JSONLD }),
			Severity: models.SeverityError,
		},
		PatternRule{
			Name:     FieldSlug,
			Get:      optional(func(m models.PageMetadata) *string { return m.Slug }),
			Pattern:  slugPattern,
			Severity: models.SeverityError,
			Code:     "invalid_slug",
			Expect:   "lowercase letters and digits separated by single hyphens",
		},
	}
}
