// Package rsi trades a single symbol on the relative strength index of
// its trailing close series, buying oversold days and flattening
// overbought ones
package rsi

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/holdings/commission"
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
	"github.com/quantfell/backtester/market"
	"github.com/quantfell/backtester/strategies/base"
)

// Name is the strategy name
const Name = "rsi"

var (
	errInvalidPeriod     = errors.New("rsi period must be positive")
	errInvalidThresholds = errors.New("rsi low threshold must be below the high threshold")
	errInvalidShares     = errors.New("rsi share count must be positive")
)

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	symbol string
	period int
	low    decimal.Decimal
	high   decimal.Decimal
	shares decimal.Decimal
}

// New creates an RSI strategy trading a fixed share count in one symbol
func New(symbol string, period int, low, high, shares decimal.Decimal, scheme *commission.Scheme) (*Strategy, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w, received '%v'", errInvalidPeriod, period)
	}
	if low.GreaterThanOrEqual(high) {
		return nil, fmt.Errorf("%w, received low '%v' high '%v'", errInvalidThresholds, low, high)
	}
	if shares.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w, received '%v'", errInvalidShares, shares)
	}
	s := &Strategy{
		symbol: symbol,
		period: period,
		low:    low,
		high:   high,
		shares: shares,
	}
	s.SetCommissionScheme(scheme)
	return s, nil
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return fmt.Sprintf("RSI(%v) on %v: buy %v shares below %v, flatten above %v",
		s.period, s.symbol, s.shares, s.low, s.high)
}

// Symbols returns the configured symbol
func (s *Strategy) Symbols() []string {
	return []string{s.symbol}
}

// OnSignal evaluates the trailing closes. Evaluations before the warmup
// window has filled emit nothing
func (s *Strategy) OnSignal(slice *market.Slice, pf *portfolio.Portfolio) (*transaction.Transaction, error) {
	if slice == nil || pf == nil {
		return nil, common.ErrNilArguments
	}
	latest := slice.Latest()
	if latest == nil {
		return nil, common.ErrNilEvent
	}
	closes := slice.Closes(s.symbol)
	if len(closes) <= s.period {
		return nil, nil
	}
	values := indicators.RSI(closes, s.period)
	value := decimal.NewFromFloat(values[len(values)-1])
	price, ok := latest.Prices[s.symbol]
	if !ok {
		return nil, fmt.Errorf("%w: '%v'", common.ErrSymbolNotFound, s.symbol)
	}

	pos, held := pf.Book.Position(s.symbol)
	switch {
	case value.LessThanOrEqual(s.low) && !held:
		return transaction.New(s.symbol, transaction.Buy, s.shares, price, s.CommissionScheme(), latest.Date)
	case value.GreaterThanOrEqual(s.high) && held && pos.Direction() == 1:
		return transaction.New(s.symbol, transaction.Sell, pos.NetQuantity(), price, s.CommissionScheme(), latest.Date)
	default:
		return nil, nil
	}
}
