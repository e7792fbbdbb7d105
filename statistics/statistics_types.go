package statistics

import "errors"

// ErrInsufficientHistory is returned when fewer than two daily rows
// exist, as no return series can be derived from a single observation
var ErrInsufficientHistory = errors.New("insufficient history to compute statistics")

const tradingDaysPerYear = 252.0

// Summary holds the performance figures derived from one equity curve
type Summary struct {
	PortfolioID          string
	StartDate            string
	EndDate              string
	InitialEquity        float64
	FinalEquity          float64
	TotalReturn          float64
	CAGR                 float64
	AnnualizedVolatility float64
	Sharpe               float64
	Sortino              float64
	MaxDrawdown          float64
	MaxDrawdownDuration  int
	Beta                 float64
}
