package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/json"
)

// Rule checks one field of a record and returns zero or more findings.
// Rules must be pure: no I/O, no shared state.
type Rule interface {
	Field() string
	Check(meta models.PageMetadata) []models.Finding
}

// Getter reads a field from a record. ok is false when the field is absent.
type Getter func(meta models.PageMetadata) (value string, ok bool)

func finding(field string, sev models.Severity, code, format string, args ...any) models.Finding {
	return models.Finding{
		Field:    field,
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// LengthRule bounds the rune length of a string field.
type LengthRule struct {
	Name     string
	Get      Getter
	Min, Max int
	Severity models.Severity
}

func (r LengthRule) Field() string { return r.Name }

func (r LengthRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return []models.Finding{finding(r.Name, r.Severity, r.Name+"_length",
			"%s is empty; aim for %d-%d characters", r.Name, r.Min, r.Max)}
	case n < r.Min:
		return []models.Finding{finding(r.Name, r.Severity, r.Name+"_length",
			"%s is %d characters, shorter than the recommended %d-%d", r.Name, n, r.Min, r.Max)}
	case n > r.Max:
		return []models.Finding{finding(r.Name, r.Severity, r.Name+"_length",
			"%s is %d characters, longer than the recommended %d-%d", r.Name, n, r.Min, r.Max)}
	}
	return nil
}

// CountRule bounds the number of comma-separated terms in a field.
type CountRule struct {
	Name     string
	Get      Getter
	Min, Max int
	Severity models.Severity
}

func (r CountRule) Field() string { return r.Name }

func (r CountRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	n := len(models.SplitKeywords(v))
	if n < r.Min || n > r.Max {
		return []models.Finding{finding(r.Name, r.Severity, r.Name+"_count",
			"%s has %d terms; use %d-%d comma-separated terms", r.Name, n, r.Min, r.Max)}
	}
	return nil
}

// AbsoluteURLRule requires a URL with both scheme and host.
type AbsoluteURLRule struct {
	Name     string
	Get      Getter
	Severity models.Severity
}

func (r AbsoluteURLRule) Field() string { return r.Name }

func (r AbsoluteURLRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	if f, bad := checkAbsoluteURL(r.Name, v, r.Severity); bad {
		return []models.Finding{f}
	}
	return nil
}

func checkAbsoluteURL(field, v string, sev models.Severity) (models.Finding, bool) {
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil {
		return finding(field, sev, "invalid_url", "%s is not a valid URL: %q", field, v), true
	}
	if u.Scheme == "" || u.Host == "" {
		return finding(field, sev, "relative_url",
			"%s must be an absolute URL with scheme and host, got relative URL %q", field, v), true
	}
	return models.Finding{}, false
}

// PatternRule requires the whole value to match a regular expression.
type PatternRule struct {
	Name     string
	Get      Getter
	Pattern  *regexp.Regexp
	Severity models.Severity
	Code     string
	Expect   string // human description of the expected shape
}

func (r PatternRule) Field() string { return r.Name }

func (r PatternRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	if !r.Pattern.MatchString(v) {
		return []models.Finding{finding(r.Name, r.Severity, r.Code,
			"%s %q is malformed; expected %s", r.Name, v, r.Expect)}
	}
	return nil
}

// ISO8601Layouts are the accepted shapes for datetime fields.
var ISO8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// DatetimeRule requires a value that parses with one of Layouts.
type DatetimeRule struct {
	Name     string
	Get      Getter
	Layouts  []string
	Severity models.Severity
}

func (r DatetimeRule) Field() string { return r.Name }

func (r DatetimeRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	for _, layout := range r.Layouts {
		if _, err := time.Parse(layout, v); err == nil {
			return nil
		}
	}
	return []models.Finding{finding(r.Name, r.Severity, "invalid_datetime",
		"%s %q is not an ISO 8601 datetime (e.g. 2025-05-20T12:30:00Z)", r.Name, v)}
}

// EnumRule restricts a field to a fixed set of values.
type EnumRule struct {
	Name     string
	Get      Getter
	Allowed  []string
	Severity models.Severity
}

func (r EnumRule) Field() string { return r.Name }

func (r EnumRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	for _, a := range r.Allowed {
		if v == a {
			return nil
		}
	}
	return []models.Finding{finding(r.Name, r.Severity, "unrecognized_value",
		"%s %q is not recognized; expected one of %s", r.Name, v, strings.Join(r.Allowed, ", "))}
}

// RecommendedRule flags any value other than Want without rejecting it.
type RecommendedRule struct {
	Name     string
	Get      Getter
	Want     string
	Severity models.Severity
}

func (r RecommendedRule) Field() string { return r.Name }

func (r RecommendedRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok || v == r.Want {
		return nil
	}
	return []models.Finding{finding(r.Name, r.Severity, "non_default",
		"%s is %q; %q is recommended", r.Name, v, r.Want)}
}

// JSONRule requires syntactically valid JSON with an object or array at
// the top level. Whether it matches visible content is not checked.
type JSONRule struct {
	Name     string
	Get      Getter
	Severity models.Severity
}

func (r JSONRule) Field() string { return r.Name }

func (r JSONRule) Check(meta models.PageMetadata) []models.Finding {
	v, ok := r.Get(meta)
	if !ok {
		return nil
	}
	var doc any
	if err := json.Unmarshal([]byte(v), &doc); err != nil {
		return []models.Finding{finding(r.Name, r.Severity, "invalid_json",
			"%s is not valid JSON", r.Name)}
	}
	switch doc.(type) {
	case map[string]any, []any:
		return nil
	}
	return []models.Finding{finding(r.Name, r.Severity, "invalid_json",
		"%s must be a JSON object or array", r.Name)}
}

// ImageRule checks an og:image URL and, when provided, the image facts
// (dimensions, byte size, format). Facts that were not supplied are
// reported once as unverified.
type ImageRule struct {
	Name      string
	Width     int
	Height    int
	MaxBytes  int64
	Formats   []string // accepted MIME types
	Severity  models.Severity
	Unchecked models.Severity
}

func (r ImageRule) Field() string { return r.Name }

func (r ImageRule) Check(meta models.PageMetadata) []models.Finding {
	if meta.OGImage == nil {
		return nil
	}
	var out []models.Finding
	if f, bad := checkAbsoluteURL(r.Name, *meta.OGImage, r.Severity); bad {
		out = append(out, f)
	}

	var unverified []string

	if meta.OGImageWidth != nil && meta.OGImageHeight != nil {
		w, h := *meta.OGImageWidth, *meta.OGImageHeight
		if w != r.Width || h != r.Height {
			out = append(out, finding(r.Name, r.Severity, "image_dimensions",
				"%s is %dx%d; %dx%d is recommended", r.Name, w, h, r.Width, r.Height))
		}
	} else {
		unverified = append(unverified, "dimensions")
	}

	if meta.OGImageBytes != nil {
		if *meta.OGImageBytes > r.MaxBytes {
			out = append(out, finding(r.Name, r.Severity, "image_size",
				"%s is %d bytes; keep it at or under %d bytes", r.Name, *meta.OGImageBytes, r.MaxBytes))
		}
	} else {
		unverified = append(unverified, "size")
	}

	if meta.OGImageType != nil {
		mime := ImageMIME(*meta.OGImageType)
		accepted := false
		for _, f := range r.Formats {
			if mime == f {
				accepted = true
				break
			}
		}
		if !accepted {
			out = append(out, finding(r.Name, r.Severity, "image_format",
				"%s format %q is not one of JPG, PNG or WebP", r.Name, *meta.OGImageType))
		}
	} else {
		unverified = append(unverified, "format")
	}

	if len(unverified) > 0 {
		out = append(out, finding(r.Name, r.Unchecked, "image_unverified",
			"%s %s not verified; the image resource was not provided", r.Name, strings.Join(unverified, "/")))
	}
	return out
}

// ImageMIME maps an extension-style or MIME-style image type to a MIME type.
func ImageMIME(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t = strings.TrimPrefix(t, ".")
	switch t {
	case "jpg", "jpeg", "image/jpg", "image/jpeg":
		return "image/jpeg"
	case "png", "image/png":
		return "image/png"
	case "webp", "image/webp":
		return "image/webp"
	case "gif", "image/gif":
		return "image/gif"
	}
	return t
}
