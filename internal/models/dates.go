// ABOUTME: Date parsing shared by the CLI, MCP and HTTP inputs.
// ABOUTME: Accepts RFC 3339 timestamps or local date and date-time forms.
package models

import (
	"fmt"
	"strings"
	"time"
)

var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses s as RFC 3339, or as a local date or date-time in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse date %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", ErrInvalidInput, s)
}
