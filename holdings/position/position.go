package position

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/holdings/transaction"
)

// New creates an empty position for a symbol
func New(symbol string) *Position {
	return &Position{Symbol: symbol}
}

// Apply books a fill on the matching leg, refreshes the valuation fields
// from the fill and appends an audit row
func (p *Position) Apply(t *transaction.Transaction) error {
	if t == nil {
		return errNilTransaction
	}
	switch t.Side {
	case transaction.Buy:
		p.AvgBought = weightedAverage(p.AvgBought, p.BuyQuantity, t.Price, t.Quantity)
		p.BuyQuantity = p.BuyQuantity.Add(t.Quantity)
		p.BuyCommission = p.BuyCommission.Add(t.Commission)
	case transaction.Sell:
		p.AvgSold = weightedAverage(p.AvgSold, p.SellQuantity, t.Price, t.Quantity)
		p.SellQuantity = p.SellQuantity.Add(t.Quantity)
		p.SellCommission = p.SellCommission.Add(t.Commission)
	default:
		return fmt.Errorf("%w, received '%v'", transaction.ErrInvalidSide, t.Side)
	}
	if err := p.UpdatePrice(t.Price, t.Date); err != nil {
		return err
	}
	p.history = append(p.history, p.snapshot())
	return nil
}

// weightedAverage folds a new fill into a leg's average price. When the
// leg's prior quantity is zero the average becomes the fill price
func weightedAverage(avg, quantity, price, fillQuantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return price
	}
	return avg.Mul(quantity).Add(fillQuantity.Mul(price)).Div(quantity.Add(fillQuantity))
}

// UpdatePrice revalues the position to a new market price without
// generating a transaction
func (p *Position) UpdatePrice(price decimal.Decimal, date string) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w, received '%v' for '%v'", ErrInvalidPrice, price, p.Symbol)
	}
	p.CurrentPrice = price
	p.CurrentDate = date
	return nil
}

// NetQuantity returns the signed position size. Positive is net long,
// negative net short, zero flat
func (p *Position) NetQuantity() decimal.Decimal {
	return p.BuyQuantity.Sub(p.SellQuantity)
}

// Direction returns the sign of the net quantity
func (p *Position) Direction() int {
	return p.NetQuantity().Sign()
}

// MarketValue returns net quantity at the current market price
func (p *Position) MarketValue() decimal.Decimal {
	return p.NetQuantity().Mul(p.CurrentPrice)
}

// AvgPrice returns the commission-adjusted average price of the open leg.
// A flat position has no meaningful average, so zero is returned
func (p *Position) AvgPrice() decimal.Decimal {
	switch p.Direction() {
	case 1:
		return p.AvgBought.Mul(p.BuyQuantity).Add(p.BuyCommission).Div(p.BuyQuantity)
	case -1:
		return p.AvgSold.Mul(p.SellQuantity).Sub(p.SellCommission).Div(p.SellQuantity)
	default:
		return decimal.Zero
	}
}

// TotalBought returns the average cost of the buy leg
func (p *Position) TotalBought() decimal.Decimal {
	return p.AvgBought.Mul(p.BuyQuantity)
}

// TotalSold returns the average proceeds of the sell leg
func (p *Position) TotalSold() decimal.Decimal {
	return p.AvgSold.Mul(p.SellQuantity)
}

// TotalCommission returns commission across both legs
func (p *Position) TotalCommission() decimal.Decimal {
	return p.BuyCommission.Add(p.SellCommission)
}

// RealizedPnL returns the profit or loss locked in by the closing leg.
// For the fully flat round trip this is total proceeds minus total cost
// minus total commission
func (p *Position) RealizedPnL() decimal.Decimal {
	switch p.Direction() {
	case 1:
		if p.SellQuantity.IsZero() {
			return decimal.Zero
		}
		return p.AvgSold.Sub(p.AvgBought).Mul(p.SellQuantity).
			Sub(p.SellQuantity.Div(p.BuyQuantity).Mul(p.BuyCommission)).
			Sub(p.SellCommission)
	case -1:
		if p.BuyQuantity.IsZero() {
			return decimal.Zero
		}
		return p.AvgSold.Sub(p.AvgBought).Mul(p.BuyQuantity).
			Sub(p.BuyQuantity.Div(p.SellQuantity).Mul(p.SellCommission)).
			Sub(p.BuyCommission)
	default:
		return p.TotalSold().Sub(p.TotalBought()).Sub(p.TotalCommission())
	}
}

// UnrealizedPnL returns the paper profit or loss on the open net quantity
// at the current market price
func (p *Position) UnrealizedPnL() decimal.Decimal {
	return p.CurrentPrice.Sub(p.AvgPrice()).Mul(p.NetQuantity())
}

// TotalPnL returns realized plus unrealized PnL
func (p *Position) TotalPnL() decimal.Decimal {
	return p.RealizedPnL().Add(p.UnrealizedPnL())
}

// History returns the audit rows appended by Apply
func (p *Position) History() []Snapshot {
	return p.history
}

func (p *Position) snapshot() Snapshot {
	return Snapshot{
		Date:            p.CurrentDate,
		Price:           p.CurrentPrice,
		BuyQuantity:     p.BuyQuantity,
		SellQuantity:    p.SellQuantity,
		NetQuantity:     p.NetQuantity(),
		AvgBought:       p.AvgBought,
		AvgSold:         p.AvgSold,
		AvgPrice:        p.AvgPrice(),
		BuyCommission:   p.BuyCommission,
		SellCommission:  p.SellCommission,
		TotalCommission: p.TotalCommission(),
		RealizedPnL:     p.RealizedPnL(),
		UnrealizedPnL:   p.UnrealizedPnL(),
		TotalPnL:        p.TotalPnL(),
	}
}
