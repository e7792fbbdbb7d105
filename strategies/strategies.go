// Package strategies defines the contract between the simulation loop
// and strategy implementations. A strategy observes the market slice up
// to the evaluation date together with its portfolio's state and emits
// at most one transaction per evaluation
package strategies

import (
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
	"github.com/quantfell/backtester/market"
)

// Handler is the minimal dispatch contract a strategy implements
type Handler interface {
	Name() string
	Description() string
	Symbols() []string
	OnSignal(slice *market.Slice, pf *portfolio.Portfolio) (*transaction.Transaction, error)
}
