package position

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrice is returned when a mark-to-market price is not positive
	ErrInvalidPrice   = errors.New("market price must be positive to update the position")
	errNilTransaction = errors.New("nil transaction")
)

// Position is a per-symbol weighted-average cost ledger. A symbol is net
// long, net short or flat, never tracked as separate long and short books.
// Buys and sells accumulate on their own legs so that realized and
// unrealized PnL can be derived at any instant
type Position struct {
	Symbol         string
	CurrentDate    string
	CurrentPrice   decimal.Decimal
	BuyQuantity    decimal.Decimal
	AvgBought      decimal.Decimal
	BuyCommission  decimal.Decimal
	SellQuantity   decimal.Decimal
	AvgSold        decimal.Decimal
	SellCommission decimal.Decimal

	history []Snapshot
}

// Snapshot captures the full derived state of a position at the instant
// of a transaction. Appended once per applied transaction as an audit row
type Snapshot struct {
	Date            string
	Price           decimal.Decimal
	BuyQuantity     decimal.Decimal
	SellQuantity    decimal.Decimal
	NetQuantity     decimal.Decimal
	AvgBought       decimal.Decimal
	AvgSold         decimal.Decimal
	AvgPrice        decimal.Decimal
	BuyCommission   decimal.Decimal
	SellCommission  decimal.Decimal
	TotalCommission decimal.Decimal
	RealizedPnL     decimal.Decimal
	UnrealizedPnL   decimal.Decimal
	TotalPnL        decimal.Decimal
}

// Book owns the symbol to position mapping for one portfolio. Iteration
// order is insertion order, keeping aggregate sums deterministic
type Book struct {
	symbols   []string
	positions map[string]*Position
}
