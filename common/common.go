package common

import (
	"fmt"
	"time"
)

// DateFormat is the calendar date layout used across the backtester.
// One event-set per calendar day, no intraday granularity.
const DateFormat = "2006-01-02"

// ValidateDate ensures a date string conforms to DateFormat
func ValidateDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return fmt.Errorf("%w '%v', expected format %v", ErrInvalidDateFormat, date, DateFormat)
	}
	return nil
}

// ParseDate converts a date string into a time.Time
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w '%v', expected format %v", ErrInvalidDateFormat, date, DateFormat)
	}
	return t, nil
}
