package common

import "errors"

var (
	// ErrNilArguments is returned when a constructor or handler receives nil
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is returned when the event queue dispatches a nil event
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDateFormat is returned for dates not matching DateFormat
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrDateNotFound is returned when a date is absent from the market calendar
	ErrDateNotFound = errors.New("date not found in market calendar")
	// ErrSymbolNotFound is returned when a symbol is absent from market data
	ErrSymbolNotFound = errors.New("symbol not found in market data")
)
