package reports

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored bookings carry their date in more than one shape. Older records
// hold plain "2006-01-02" strings, some hold full RFC 3339 datetimes, and
// current writes store native timestamps. The helpers below normalize all
// of them so reports never fail on a single malformed record.

const dateOnlyLayout = "2006-01-02"

// parseTimeValue tries the known date representations in order. The bool
// reports whether any of them matched.
func parseTimeValue(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.In(loc), true
	case primitive.DateTime:
		return t.Time().In(loc), true
	case string:
		if parsed, err := time.ParseInLocation(dateOnlyLayout, t, loc); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.In(loc), true
		}
	}
	return time.Time{}, false
}

// effectiveTime resolves when a booked slot occurs: the date field first,
// the creation timestamp when the date is absent or unreadable, and the
// current time as the last resort.
func effectiveTime(date, createdAt any, loc *time.Location, now time.Time) time.Time {
	if t, ok := parseTimeValue(date, loc); ok {
		return t
	}
	if t, ok := parseTimeValue(createdAt, loc); ok {
		return t
	}
	return now.In(loc)
}

// slotHour extracts the starting hour from an "HH:MM" slot value. Absent
// or unparseable slots fall back to the default hour.
func slotHour(v any, defaultHour int) int {
	s, ok := v.(string)
	if !ok {
		return defaultHour
	}
	hh, _, found := strings.Cut(s, ":")
	if !found {
		return defaultHour
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return defaultHour
	}
	return hour
}

// amountValue reads a monetary amount stored under any of the numeric
// types the driver can produce. Missing or non-numeric amounts count as 0.
func amountValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case primitive.Decimal128:
		if s := n.String(); s != "" {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return int64(f)
			}
		}
	}
	return 0
}

// stringValue reads a string field, tolerating absence.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// boolValue reads a boolean flag, tolerating absence.
func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
