package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the longest accepted link or widget title.
	MaxTitleLength = 100
	// MaxFolderTitleLength is the longest accepted folder title.
	MaxFolderTitleLength = 50
	// DefaultWidgetType is used when a widget is created without a type.
	DefaultWidgetType = "LRT"
)

// WidgetTypes lists the widget types that can be created.
var WidgetTypes = []string{"LRT", "TRANSLATION"}

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims raw and prefixes https:// when no http(s) scheme is present.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", NewValidationError("url", "is required")
	}
	if !schemePattern.MatchString(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", NewValidationError("url", fmt.Sprintf("%q is not a valid URL", raw))
	}
	return s, nil
}

// NormalizeTitle trims title and checks the length limit for the node kind.
func NormalizeTitle(kind Kind, title string) (string, error) {
	s := strings.TrimSpace(title)
	if s == "" {
		return "", NewValidationError("title", "is required")
	}

	limit := MaxTitleLength
	if kind == KindFolder {
		limit = MaxFolderTitleLength
	}
	if utf8.RuneCountInString(s) > limit {
		return "", NewValidationError("title", fmt.Sprintf("must be at most %d characters", limit))
	}
	return s, nil
}

// NormalizeWidgetType defaults an empty type and rejects unknown ones.
func NormalizeWidgetType(widgetType string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(widgetType))
	if s == "" {
		return DefaultWidgetType, nil
	}
	for _, t := range WidgetTypes {
		if s == t {
			return s, nil
		}
	}
	return "", NewValidationError("widgetType", fmt.Sprintf("unknown widget type %q", widgetType))
}
