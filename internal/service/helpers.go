package service

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD field into a time pointer.
// A nil or empty input yields nil without error.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *value, err)
	}
	return &parsed, nil
}
