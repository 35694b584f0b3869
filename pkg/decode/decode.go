// Package decode turns JSON or YAML documents into PageMetadata records.
//
// Input shape is checked strictly at this boundary: a field with the wrong
// primitive type or an unknown field name is a caller bug and fails fast
// with a *ShapeError. Content quality is the validator's job.
package decode

import (
	"fmt"
	"math"
	"sort"

	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/json"
	"gopkg.in/yaml.v3"
)

// ShapeError reports a record whose structure does not match PageMetadata.
type ShapeError struct {
	Index int    // record position within the document
	Field string // empty when the record itself is malformed
	Want  string
	Got   string
}

func (e *ShapeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: expected %s, got %s", e.Index, e.Want, e.Got)
	}
	return fmt.Sprintf("record %d: field %q: expected %s, got %s", e.Index, e.Field, e.Want, e.Got)
}

type kind int

const (
	kindString kind = iota
	kindInt
	kindInt64
)

type fieldSpec struct {
	kind kind
	set  func(m *models.PageMetadata, v any)
}

var fields = map[string]fieldSpec{
	"title":       {kindString, func(m *models.PageMetadata, v any) { m.Title = v.(string) }},
	"description": {kindString, func(m *models.PageMetadata, v any) { m.Description = v.(string) }},

	"keywords":        {kindString, func(m *models.PageMetadata, v any) { m.Keywords = models.Str(v.(string)) }},
	"author":          {kindString, func(m *models.PageMetadata, v any) { m.Author = models.Str(v.(string)) }},
	"canonical_url":   {kindString, func(m *models.PageMetadata, v any) { m.CanonicalURL = models.Str(v.(string)) }},
	"lang":            {kindString, func(m *models.PageMetadata, v any) { m.Lang = models.Str(v.(string)) }},
	"updated":         {kindString, func(m *models.PageMetadata, v any) { m.Updated = models.Str(v.(string)) }},
	"og_image":        {kindString, func(m *models.PageMetadata, v any) { m.OGImage = models.Str(v.(string)) }},
	"og_image_width":  {kindInt, func(m *models.PageMetadata, v any) { m.OGImageWidth = models.Int(int(v.(int64))) }},
	"og_image_height": {kindInt, func(m *models.PageMetadata, v any) { m.OGImageHeight = models.Int(int(v.(int64))) }},
	"og_image_bytes":  {kindInt64, func(m *models.PageMetadata, v any) { m.OGImageBytes = models.Int64(v.(int64)) }},
	"og_image_type":   {kindString, func(m *models.PageMetadata, v any) { m.OGImageType = models.Str(v.(string)) }},
	"og_type":         {kindString, func(m *models.PageMetadata, v any) { m.OGType = models.Str(v.(string)) }},
	"twitter_card":    {kindString, func(m *models.PageMetadata, v any) { m.TwitterCard = models.Str(v.(string)) }},
	"json_ld":         {kindString, func(m *models.PageMetadata, v any) { m.JSONLD = models.Str(v.(string)) }},
	"content_type":    {kindString, func(m *models.PageMetadata, v any) { m.ContentType = models.Str(v.(string)) }},
	"slug":            {kindString, func(m *models.PageMetadata, v any) { m.Slug = models.Str(v.(string)) }},
}

// Records decodes a document holding one record or a list of records.
func Records(data []byte, format models.Format) ([]models.PageMetadata, error) {
	var doc any
	switch format {
	case models.FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case models.FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		v, err := nodeValue(&root)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		doc = v
	default:
		return nil, fmt.Errorf("cannot decode records from %s", format)
	}

	if list, ok := doc.([]any); ok {
		out := make([]models.PageMetadata, 0, len(list))
		for i, item := range list {
			m, err := record(i, item)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, nil
	}

	m, err := record(0, doc)
	if err != nil {
		return nil, err
	}
	return []models.PageMetadata{m}, nil
}

// JSON decodes exactly one record from a JSON object.
func JSON(data []byte) (models.PageMetadata, error) {
	return one(data, models.FormatJSON)
}

// YAML decodes exactly one record from a YAML mapping.
func YAML(data []byte) (models.PageMetadata, error) {
	return one(data, models.FormatYAML)
}

func one(data []byte, format models.Format) (models.PageMetadata, error) {
	recs, err := Records(data, format)
	if err != nil {
		return models.PageMetadata{}, err
	}
	if len(recs) != 1 {
		return models.PageMetadata{}, &ShapeError{Want: "a single record", Got: fmt.Sprintf("a list of %d", len(recs))}
	}
	return recs[0], nil
}

// nodeValue converts a YAML node tree to the generic values FromMap checks.
// Scalars keep their source text unless tagged as numbers, booleans or
// null, so an unquoted date stays the string that was written.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!int", "!!float", "!!bool":
			var v any
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return v, nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// FromMap builds a record from a generic map, checking every value's type.
// Keys are checked in sorted order so the first reported problem is stable.
func FromMap(index int, raw map[string]any) (models.PageMetadata, error) {
	var m models.PageMetadata
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := raw[key]
		spec, ok := fields[key]
		if !ok {
			return m, &ShapeError{Index: index, Field: key, Want: "a known field", Got: "unknown field"}
		}
		if val == nil {
			continue // null means absent
		}
		v, err := coerce(spec.kind, val)
		if err != nil {
			return m, &ShapeError{Index: index, Field: key, Want: err.want, Got: err.got}
		}
		spec.set(&m, v)
	}
	return m, nil
}

func record(index int, item any) (models.PageMetadata, error) {
	switch raw := item.(type) {
	case map[string]any:
		return FromMap(index, raw)
	case nil:
		return models.PageMetadata{}, &ShapeError{Index: index, Want: "an object", Got: "null"}
	default:
		return models.PageMetadata{}, &ShapeError{Index: index, Want: "an object", Got: typeName(item)}
	}
}

type mismatch struct{ want, got string }

func coerce(k kind, val any) (any, *mismatch) {
	switch k {
	case kindString:
		if s, ok := val.(string); ok {
			return s, nil
		}
		return nil, &mismatch{"a string", typeName(val)}
	case kindInt, kindInt64:
		n, ok := integer(val)
		if !ok {
			return nil, &mismatch{"an integer", typeName(val)}
		}
		if n < 0 {
			return nil, &mismatch{"a non-negative integer", fmt.Sprint(n)}
		}
		if k == kindInt && n > math.MaxInt32 {
			return nil, &mismatch{"an integer in range", fmt.Sprint(n)}
		}
		return n, nil
	}
	return nil, &mismatch{"a supported type", typeName(val)}
}

// integer accepts the integral number representations the JSON and YAML
// decoders produce.
func integer(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func typeName(val any) string {
	switch v := val.(type) {
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
