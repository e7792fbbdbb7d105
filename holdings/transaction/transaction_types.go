package transaction

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidSide is returned when a side is neither Buy nor Sell
	ErrInvalidSide = errors.New("transaction side must be buy or sell")
	// ErrInvalidQuantity is returned for zero or negative quantities
	ErrInvalidQuantity = errors.New("transaction quantity must be positive")
	// ErrInvalidPrice is returned for zero or negative prices
	ErrInvalidPrice = errors.New("transaction price must be positive")
	errNilScheme    = errors.New("nil commission scheme")
)

// Side is the direction of a transaction
type Side uint8

// The closed set of transaction sides
const (
	UnknownSide Side = iota
	Buy
	Sell
)

// String implements the stringer interface
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Transaction is an immutable fill record. All fields are set at
// construction and never modified afterwards
type Transaction struct {
	ID         string
	Symbol     string
	Side       Side
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
	Date       string
}
