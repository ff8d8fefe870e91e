package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for date-only fields.
const DateLayout = time.DateOnly

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string. Blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &ValidationError{Entity: "date", Field: fmt.Sprintf("%q", s), Reason: "is not in YYYY-MM-DD format"}
	}
	return &t, nil
}
