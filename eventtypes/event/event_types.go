package event

import (
	"fmt"

	"github.com/quantfell/backtester/holdings/transaction"
)

// Handler is the closed contract every queued event satisfies. The
// simulation loop type-switches over the concrete kinds below; there are
// no other implementations
type Handler interface {
	GetDate() string
	GetPortfolioID() string
	Details() string
}

// Base carries the fields common to every event kind. Events are
// immutable once created; the queue is the only mutable container
type Base struct {
	Date        string
	PortfolioID string
}

// GetDate returns the calendar date the event belongs to
func (b Base) GetDate() string {
	return b.Date
}

// GetPortfolioID returns the targeted portfolio, empty for run-wide events
func (b Base) GetPortfolioID() string {
	return b.PortfolioID
}

// NewBar signals that a new day has passed and there is new market data
type NewBar struct {
	Base
}

// Details returns a summary for verbose logging
func (e NewBar) Details() string {
	return fmt.Sprintf("new bar [date: %v]", e.Date)
}

// CalcSignal asks a portfolio's bound strategy to evaluate the date's bar
type CalcSignal struct {
	Base
}

// Details returns a summary for verbose logging
func (e CalcSignal) Details() string {
	return fmt.Sprintf("calculate signal [date: %v, portfolio: %v]", e.Date, e.PortfolioID)
}

// Transaction carries a strategy-issued fill to its target portfolio
type Transaction struct {
	Base
	Transaction *transaction.Transaction
}

// Details returns a summary for verbose logging
func (e Transaction) Details() string {
	return fmt.Sprintf("transaction [date: %v, portfolio: %v, %v]", e.Date, e.PortfolioID, e.Transaction.Details())
}
