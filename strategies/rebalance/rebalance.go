// Package rebalance trades a portfolio back to configured target
// weights on week or month boundaries of the trading calendar
package rebalance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/holdings/commission"
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
	"github.com/quantfell/backtester/market"
	"github.com/quantfell/backtester/strategies/base"
)

// Name is the strategy name
const Name = "rebalance"

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	period  Period
	weights map[string]decimal.Decimal
	symbols []string
}

// New creates a periodic rebalancing strategy from a symbol to target
// weight mapping. Weights are fractions of total portfolio market value
func New(period Period, weights map[string]decimal.Decimal, scheme *commission.Scheme) (*Strategy, error) {
	if period == UnknownPeriod || period > EndOfWeek {
		return nil, fmt.Errorf("%w, received '%v'", ErrInvalidPeriod, period)
	}
	s := &Strategy{period: period, weights: weights}
	one := decimal.NewFromInt(1)
	for symbol, weight := range weights {
		if weight.IsNegative() || weight.GreaterThan(one) {
			return nil, fmt.Errorf("%w, received '%v' for '%v'", ErrInvalidWeight, weight, symbol)
		}
		s.symbols = append(s.symbols, symbol)
	}
	sort.Strings(s.symbols)
	s.SetCommissionScheme(scheme)
	return s, nil
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Periodic rebalancing at %v:", s.period)
	for _, symbol := range s.symbols {
		fmt.Fprintf(&b, " %v: %v%%", symbol, s.weights[symbol].Mul(decimal.NewFromInt(100)))
	}
	return b.String()
}

// Symbols returns the configured symbols
func (s *Strategy) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// OnSignal rebalances towards the target weights when the date carries
// the configured period-boundary flag. The first symbol whose truncated
// delta is non-zero produces the evaluation's single transaction;
// remaining drift is picked up on the next boundary
func (s *Strategy) OnSignal(slice *market.Slice, pf *portfolio.Portfolio) (*transaction.Transaction, error) {
	if slice == nil || pf == nil {
		return nil, common.ErrNilArguments
	}
	latest := slice.Latest()
	if latest == nil {
		return nil, common.ErrNilEvent
	}
	if !s.boundary(latest.Flags) {
		return nil, nil
	}
	totalValue := pf.TotalMarketValue()
	for _, symbol := range s.symbols {
		price, ok := latest.Prices[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: '%v'", common.ErrSymbolNotFound, symbol)
		}
		side, quantity := s.delta(pf, symbol, price, totalValue)
		if quantity.IsZero() {
			continue
		}
		return transaction.New(symbol, side, quantity, price, s.CommissionScheme(), latest.Date)
	}
	return nil, nil
}

// delta computes the signed adjustment for one symbol, truncated toward
// zero so partial shares are never traded
func (s *Strategy) delta(pf *portfolio.Portfolio, symbol string, price, totalValue decimal.Decimal) (transaction.Side, decimal.Decimal) {
	target := s.weights[symbol]
	pos, held := pf.Book.Position(symbol)
	if !held {
		quantity := target.Mul(totalValue).Div(price).Truncate(0)
		return transaction.Buy, quantity
	}
	current := pos.MarketValue().Div(totalValue)
	quantity := current.Sub(target).Mul(totalValue).Div(price).Truncate(0)
	if quantity.IsPositive() {
		return transaction.Sell, quantity
	}
	return transaction.Buy, quantity.Neg()
}

func (s *Strategy) boundary(f market.Flags) bool {
	switch s.period {
	case StartOfMonth:
		return f.StartOfMonth
	case EndOfMonth:
		return f.EndOfMonth
	case StartOfWeek:
		return f.StartOfWeek
	case EndOfWeek:
		return f.EndOfWeek
	default:
		return false
	}
}
