// ABOUTME: Shared CLI helpers for dates, ids and column formatting.
// ABOUTME: Resolves user supplied ids and prefixes against the tracker.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/tracker"
)

// timeNow is the CLI clock.
var timeNow = time.Now

func parseTime(s string) (time.Time, error) {
	return models.ParseDate(s, time.Local)
}

// parseMonth parses YYYY-MM.
func parseMonth(s string) (int, time.Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month: %s (use YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

func describeIDError(kind, ref string, err error) error {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return fmt.Errorf("%s not found: %s", kind, ref)
	case errors.Is(err, tracker.ErrAmbiguousID):
		return fmt.Errorf("%s id prefix %q matches more than one %s; use more characters", kind, ref, kind)
	}
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func activityKindNames() string {
	names := make([]string, len(models.AllActivityKinds))
	for i, k := range models.AllActivityKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func goalKindNames() string {
	names := make([]string, len(models.AllGoalKinds))
	for i, k := range models.AllGoalKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
