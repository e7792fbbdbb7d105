package master

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/strategies"
)

var (
	// ErrFundingCeilingExceeded is returned when cumulative committed
	// cash would exceed the master's ceiling at registration
	ErrFundingCeilingExceeded = errors.New("master portfolio funding ceiling exceeded")
	// ErrDuplicatePortfolio is returned when a portfolio id is registered twice
	ErrDuplicatePortfolio = errors.New("portfolio id already registered")
	// ErrPortfolioNotFound is returned for lookups of unregistered ids
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrStrategyNotFound is returned when no strategy is bound to an id
	ErrStrategyNotFound  = errors.New("no strategy bound to portfolio")
	errMissingHistoryRow = errors.New("constituent has no history row for date")
	errNilPortfolio      = errors.New("nil portfolio")
	errNilStrategy       = errors.New("nil strategy")
)

// Settings holds the immutable construction parameters of a master
// portfolio. FundingCeiling caps the summed initial cash of all
// registered constituents
type Settings struct {
	ID             string
	Currency       string
	Benchmark      string
	FundingCeiling decimal.Decimal
}

// Master owns the named portfolios and their bound strategies and rolls
// their daily rows up into one aggregate history
type Master struct {
	ID             string
	Currency       string
	Benchmark      string
	FundingCeiling decimal.Decimal

	committed  decimal.Decimal
	ids        []string
	portfolios map[string]*portfolio.Portfolio
	strategies map[string]strategies.Handler
	history    []portfolio.Snapshot
	log        zerolog.Logger
}
