// Package localtime provides the wire format for timestamps: ISO-8601 local
// date-time without a timezone offset. Client and server are treated as the
// same clock domain, so no offset is ever serialized.
package localtime

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical wire layout.
const Layout = "2006-01-02T15:04:05"

// layoutFractional additionally accepts fractional seconds on input.
const layoutFractional = "2006-01-02T15:04:05.999999999"

// LocalDateTime wraps time.Time with offset-free JSON marshaling.
type LocalDateTime struct {
	time.Time
}

// Of wraps a time.Time.
func Of(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// MarshalJSON renders the timestamp as "2006-01-02T15:04:05".
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(Layout) + `"`), nil
}

// UnmarshalJSON parses the wire layout, tolerating fractional seconds.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(Layout, s)
	if err != nil {
		parsed, err = time.Parse(layoutFractional, s)
	}
	if err != nil {
		return fmt.Errorf("invalid local date-time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
