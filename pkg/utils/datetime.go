package utils

import (
	"errors"
	"strings"
	"time"
)

// DateTimeFormatHint is shown to clients that send an unparseable date-time.
const DateTimeFormatHint = "YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]"

const DateTimeFormatMessage = "Datetime has wrong format. Use one of these formats instead: " + DateTimeFormatHint + "."

var ErrInvalidDateTime = errors.New("invalid date-time")

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDateTime parses an ISO-8601 date-time. A space is accepted in place of
// the T separator and values without an offset are taken as UTC. The result
// is always in UTC.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

// ParseDateTimeOrDate is ParseDateTime that also accepts a bare YYYY-MM-DD,
// read as midnight UTC. Used for query filters.
func ParseDateTimeOrDate(value string) (time.Time, error) {
	if t, err := ParseDateTime(value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t.UTC(), nil
}

// FormatDateTime renders t in UTC with a Z suffix and microsecond precision
// when the fractional part is non-zero.
func FormatDateTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format("2006-01-02T15:04:05.999999Z07:00")
}
