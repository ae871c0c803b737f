package view

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "Jan 2, 2006, 03:04 PM"

// timestamp layouts the shop backend is known to emit
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatPrice renders p with a dollar sign and two decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp reads a server timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// FormatTimestamp formats a server timestamp, echoing it back unchanged when
// it cannot be parsed.
func FormatTimestamp(s string) string {
	t, err := ParseTimestamp(s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}
