package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quantfell/backtester/holdings/portfolio"
)

// Equity extracts the total equity of each daily row as a float
// series. TotalMarketValue already includes cash
func Equity(history []portfolio.Snapshot) []float64 {
	out := make([]float64, len(history))
	for i := range history {
		out[i], _ = history[i].TotalMarketValue.Float64()
	}
	return out
}

// Returns converts a value series to simple daily returns. Zero
// divisors contribute a zero return rather than an infinity
func Returns(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		if series[i-1] != 0 {
			out[i-1] = (series[i] - series[i-1]) / series[i-1]
		}
	}
	return out
}

// CAGR annualizes the growth between the first and last observation
// assuming the observation count is in trading days
func CAGR(initial, final float64, days int) float64 {
	if initial <= 0 || final <= 0 || days <= 1 {
		return 0
	}
	years := float64(days) / tradingDaysPerYear
	return math.Pow(final/initial, 1/years) - 1
}

// MaxDrawdown returns the deepest peak-to-trough loss as a negative
// fraction along with the longest stretch of days spent below a prior
// peak
func MaxDrawdown(series []float64) (float64, int) {
	if len(series) == 0 {
		return 0, 0
	}
	var deepest float64
	var longest, underwater int
	peak := series[0]
	for _, v := range series {
		if v >= peak {
			peak = v
			underwater = 0
			continue
		}
		underwater++
		if underwater > longest {
			longest = underwater
		}
		if peak > 0 {
			if dd := v/peak - 1; dd < deepest {
				deepest = dd
			}
		}
	}
	return deepest, longest
}

// Sharpe annualizes the mean excess return over its standard deviation.
// The risk free rate is an annual figure and is spread evenly over the
// trading year
func Sharpe(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	excess := excessReturns(returns, riskFree)
	sd := stat.StdDev(excess, nil)
	if sd == 0 {
		return 0
	}
	return stat.Mean(excess, nil) / sd * math.Sqrt(tradingDaysPerYear)
}

// Sortino is Sharpe with only downside deviation in the denominator
func Sortino(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	excess := excessReturns(returns, riskFree)
	var sumSquares float64
	for _, r := range excess {
		if r < 0 {
			sumSquares += r * r
		}
	}
	downside := math.Sqrt(sumSquares / float64(len(excess)))
	if downside == 0 {
		return 0
	}
	return stat.Mean(excess, nil) / downside * math.Sqrt(tradingDaysPerYear)
}

// Drawdowns returns each observation's distance below the running peak
// as a non-positive fraction
func Drawdowns(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	peak := series[0]
	for i, v := range series {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			out[i] = v/peak - 1
		}
	}
	return out
}

// RollingBeta regresses the portfolio returns against the benchmark
// over a sliding window, emitting one value per full window
func RollingBeta(returns, benchmark []float64, window int) []float64 {
	if window < 2 || len(returns) != len(benchmark) || len(returns) < window {
		return nil
	}
	out := make([]float64, 0, len(returns)-window+1)
	for i := window; i <= len(returns); i++ {
		out = append(out, Beta(returns[i-window:i], benchmark[i-window:i]))
	}
	return out
}

// Beta regresses the portfolio returns against the benchmark returns
func Beta(returns, benchmark []float64) float64 {
	if len(returns) != len(benchmark) || len(returns) < 2 {
		return 0
	}
	variance := stat.Variance(benchmark, nil)
	if variance == 0 {
		return 0
	}
	return stat.Covariance(returns, benchmark, nil) / variance
}

func excessReturns(returns []float64, riskFree float64) []float64 {
	daily := riskFree / tradingDaysPerYear
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r - daily
	}
	return out
}

// benchmarkSeries extracts the benchmark column when every row carries
// one, otherwise nil so beta is skipped
func benchmarkSeries(history []portfolio.Snapshot) []float64 {
	out := make([]float64, len(history))
	for i := range history {
		if history[i].BenchmarkValue.IsZero() {
			return nil
		}
		out[i], _ = history[i].BenchmarkValue.Float64()
	}
	return out
}

// Compute derives the full summary from a portfolio's daily history.
// Beta is only populated when every row carries a benchmark value
func Compute(id string, history []portfolio.Snapshot, riskFree float64) (*Summary, error) {
	if len(history) < 2 {
		return nil, ErrInsufficientHistory
	}
	equity := Equity(history)
	returns := Returns(equity)
	drawdown, duration := MaxDrawdown(equity)
	s := &Summary{
		PortfolioID:         id,
		StartDate:           history[0].Date,
		EndDate:             history[len(history)-1].Date,
		InitialEquity:       equity[0],
		FinalEquity:         equity[len(equity)-1],
		CAGR:                CAGR(equity[0], equity[len(equity)-1], len(equity)),
		Sharpe:              Sharpe(returns, riskFree),
		Sortino:             Sortino(returns, riskFree),
		MaxDrawdown:         drawdown,
		MaxDrawdownDuration: duration,
	}
	if equity[0] != 0 {
		s.TotalReturn = equity[len(equity)-1]/equity[0] - 1
	}
	if len(returns) >= 2 {
		s.AnnualizedVolatility = stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear)
	}
	if bench := benchmarkSeries(history); bench != nil {
		s.Beta = Beta(returns, Returns(bench))
	}
	return s, nil
}
