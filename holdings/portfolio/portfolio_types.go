package portfolio

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/holdings/position"
	"github.com/quantfell/backtester/holdings/transaction"
)

var (
	// ErrInceptionDateNotFound is returned when a portfolio is created on
	// a date absent from the market calendar
	ErrInceptionDateNotFound = errors.New("inception date not found in market calendar")
	// ErrEmptyID is returned when a portfolio is created without an id
	ErrEmptyID = errors.New("portfolio id cannot be empty")
	// ErrNegativeInitialCash is returned for negative initial funding
	ErrNegativeInitialCash = errors.New("initial cash cannot be negative")
	errNilMarket           = errors.New("nil market")
)

// Pricer is the read-only market surface the portfolio consumes
type Pricer interface {
	PriceAt(symbol, date string) (decimal.Decimal, error)
	Contains(date string) bool
}

// Settings holds the immutable construction parameters of a portfolio
type Settings struct {
	ID            string
	InceptionDate string
	Currency      string
	Benchmark     string
	InitialCash   decimal.Decimal
}

// Snapshot is one append-only daily history row. TotalMarketValue is
// positions plus cash. BenchmarkValue is zero when no benchmark is set
type Snapshot struct {
	Date             string
	Cash             decimal.Decimal
	TotalCommission  decimal.Decimal
	RealizedPnL      decimal.Decimal
	UnrealizedPnL    decimal.Decimal
	TotalPnL         decimal.Decimal
	TotalMarketValue decimal.Decimal
	BenchmarkValue   decimal.Decimal
}

// Portfolio owns cash, the position book, the daily history and the
// transaction records for one strategy binding
type Portfolio struct {
	ID            string
	InceptionDate string
	Currency      string
	Benchmark     string
	InitialCash   decimal.Decimal
	Cash          decimal.Decimal
	Book          *position.Book

	history      []Snapshot
	historyIndex map[string]int
	records      []*transaction.Transaction
	log          zerolog.Logger
}
