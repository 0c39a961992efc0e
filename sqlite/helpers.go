package sqlite

import (
	"fmt"
	"time"
)

// timeFormat is fixed width with nanoseconds so that timestamps sort as
// strings.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime parses a timestamp written with timeFormat.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
