package transaction

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/holdings/commission"
)

// New validates and creates a fill record. The commission is calculated
// from the scheme at construction so the record carries the full cost of
// the fill for the life of the run
func New(symbol string, side Side, quantity, price decimal.Decimal, scheme *commission.Scheme, date string) (*Transaction, error) {
	if scheme == nil {
		return nil, errNilScheme
	}
	if side != Buy && side != Sell {
		return nil, fmt.Errorf("%w, received '%v'", ErrInvalidSide, side)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w, received '%v'", ErrInvalidQuantity, quantity)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w, received '%v'", ErrInvalidPrice, price)
	}
	if err := common.ValidateDate(date); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ID:         id.String(),
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Commission: scheme.Fee(quantity.Abs(), price),
		Date:       date,
	}, nil
}

// GrossValue returns price multiplied by quantity, excluding commission
func (t *Transaction) GrossValue() decimal.Decimal {
	return t.Price.Mul(t.Quantity)
}

// TotalCost returns the full cash impact of the fill including commission
func (t *Transaction) TotalCost() decimal.Decimal {
	return t.GrossValue().Add(t.Commission)
}

// Details returns a human readable summary for logging
func (t *Transaction) Details() string {
	return fmt.Sprintf("%v %v %v @ %v on %v (commission %v)",
		t.Side, t.Quantity, t.Symbol, t.Price, t.Date, t.Commission)
}
