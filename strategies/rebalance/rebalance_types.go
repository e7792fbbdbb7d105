package rebalance

import "errors"

var (
	// ErrInvalidPeriod is returned for unrecognised rebalancing periods
	ErrInvalidPeriod = errors.New("period must be som, eom, sow or eow")
	// ErrInvalidWeight is returned for target weights outside [0, 1]
	ErrInvalidWeight = errors.New("target weight must be between 0 and 1")
)

// Period selects which period-boundary flag triggers a rebalance
type Period uint8

// The closed set of rebalancing periods
const (
	UnknownPeriod Period = iota
	StartOfMonth
	EndOfMonth
	StartOfWeek
	EndOfWeek
)

// String implements the stringer interface
func (p Period) String() string {
	switch p {
	case StartOfMonth:
		return "start-of-month"
	case EndOfMonth:
		return "end-of-month"
	case StartOfWeek:
		return "start-of-week"
	case EndOfWeek:
		return "end-of-week"
	default:
		return "unknown"
	}
}

// ParsePeriod converts the short config form into a Period
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "som":
		return StartOfMonth, nil
	case "eom":
		return EndOfMonth, nil
	case "sow":
		return StartOfWeek, nil
	case "eow":
		return EndOfWeek, nil
	default:
		return UnknownPeriod, ErrInvalidPeriod
	}
}
