package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an input or output encoding.
type Format string

const (
	FormatText Format = "text" // output only
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html" // input only
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, yaml or html)", s)
}

// ResolveInputFormat picks the input format from an explicit hint, falling
// back to the file extension, then JSON.
func ResolveInputFormat(path, hint string) (Format, error) {
	if hint != "" {
		f, err := ParseFormat(hint)
		if err != nil {
			return "", err
		}
		if f == FormatText {
			return "", fmt.Errorf("text is not an input format")
		}
		return f, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return FormatJSON, nil
}
