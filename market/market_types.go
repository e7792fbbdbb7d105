package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoData is returned when a market is created without any price rows
	ErrNoData = errors.New("no market data")
	// ErrUnorderedDates is returned when the calendar is not strictly ascending
	ErrUnorderedDates = errors.New("market calendar dates must be strictly ascending")
	errLengthMismatch = errors.New("price series length does not match calendar length")
	errNoCSVFiles     = errors.New("no csv files found in data directory")
	errMissingColumn  = errors.New("csv file missing required column")
)

// Flags marks a date as the first or last trading day of its week or
// month. The last business day counts as the end of the period
type Flags struct {
	StartOfMonth bool
	EndOfMonth   bool
	StartOfWeek  bool
	EndOfWeek    bool
}

// Row is one calendar date's full price bar across tracked symbols
type Row struct {
	Date   string
	Prices map[string]decimal.Decimal
	Flags  Flags
}

// Slice is a date-ascending window of rows returned by Select
type Slice struct {
	rows []Row
}

// Market owns the aligned daily price table and the shared trading
// calendar. It is read-only once constructed
type Market struct {
	symbols []string
	rows    []Row
	index   map[string]int
}
