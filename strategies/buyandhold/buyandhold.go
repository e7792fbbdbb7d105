// Package buyandhold buys a fixed share count per configured symbol at
// the first evaluated close and then never trades again
package buyandhold

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
const Name = "buyandhold"

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	base.Strategy
	shares  map[string]decimal.Decimal
	pending []string
}

// New creates a buy-and-hold strategy from a symbol to share count
// mapping. Symbols fire in lexical order, one per evaluation
func New(shares map[string]decimal.Decimal, scheme *commission.Scheme) *Strategy {
	s := &Strategy{shares: shares}
	for symbol := range shares {
		s.pending = append(s.pending, symbol)
	}
	sort.Strings(s.pending)
	s.SetCommissionScheme(scheme)
	return s
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	var b strings.Builder
	b.WriteString("Buy and hold:")
	for _, symbol := range s.symbolsSorted() {
		fmt.Fprintf(&b, " %v: %v shares", symbol, s.shares[symbol])
	}
	return b.String()
}

// Symbols returns the configured symbols
func (s *Strategy) Symbols() []string {
	return s.symbolsSorted()
}

// Completed reports whether every configured symbol has been bought
func (s *Strategy) Completed() bool {
	return len(s.pending) == 0
}

// OnSignal buys the next pending symbol at the date's close. Once all
// symbols have fired the completion state suppresses any further
// signals regardless of how many evaluations follow
func (s *Strategy) OnSignal(slice *market.Slice, _ *portfolio.Portfolio) (*transaction.Transaction, error) {
	if slice == nil {
		return nil, common.ErrNilArguments
	}
	if s.Completed() {
		return nil, nil
	}
	latest := slice.Latest()
	if latest == nil {
		return nil, common.ErrNilEvent
	}
	symbol := s.pending[0]
	price, ok := latest.Prices[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: '%v'", common.ErrSymbolNotFound, symbol)
	}
	t, err := transaction.New(symbol, transaction.Buy, s.shares[symbol], price, s.CommissionScheme(), latest.Date)
	if err != nil {
		return nil, err
	}
	s.pending = s.pending[1:]
	return t, nil
}

func (s *Strategy) symbolsSorted() []string {
	out := make([]string, 0, len(s.shares))
	for symbol := range s.shares {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}
