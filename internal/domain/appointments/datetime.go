package appointments

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout es ISO-8601 local sin zona, separado por T.
const DateTimeLayout = "2006-01-02T15:04:05"

const (
	DateLayout = "2006-01-02"

	timeLayout        = "15:04:05"
	timeLayoutMinutes = "15:04"
	dateTimeMinutes   = "2006-01-02T15:04"
)

var ErrInvalidDateTime = errors.New("invalid date/time")

// ParseDateTime acepta "YYYY-MM-DDTHH:MM:SS" o "YYYY-MM-DDTHH:MM".
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateTimeLayout, dateTimeMinutes} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// ComposeDateTime arma fechaHora a partir de una fecha y una hora separadas,
// parseando ambas y reformateando al layout canónico.
func ComposeDateTime(date, clock string) (string, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: date %q", ErrInvalidDateTime, date)
	}

	var c time.Time
	clock = strings.TrimSpace(clock)
	if c, err = time.Parse(timeLayout, clock); err != nil {
		if c, err = time.Parse(timeLayoutMinutes, clock); err != nil {
			return "", fmt.Errorf("%w: time %q", ErrInvalidDateTime, clock)
		}
	}

	t := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.Local)
	return t.Format(DateTimeLayout), nil
}

// FormatDateTime formatea t con el layout canónico (hora local, sin zona).
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}
