package interpreter

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// RequireText returns value, or a *ParseError naming the parameter when value is blank.
func RequireText(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", NewParseError("%s requires a value", name)
	}

	return value, nil
}

// ParseTimestamp reads an ISO-8601-like timestamp such as 2015-12-01T09:00. Times without a zone are UTC.
func ParseTimestamp(name, value string) (time.Time, error) {
	value, err := RequireText(name, value)
	if err != nil {
		return time.Time{}, err
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, NewParseError("%s: %q is not a timestamp like 2015-12-01T09:00", name, value)
}
