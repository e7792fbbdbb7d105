package position

import (
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/holdings/transaction"
)

// NewBook creates an empty position book
func NewBook() *Book {
	return &Book{
		positions: make(map[string]*Position),
	}
}

// Apply routes a fill to its position, creating the position on first
// sight of the symbol
func (b *Book) Apply(t *transaction.Transaction) error {
	if t == nil {
		return errNilTransaction
	}
	p, ok := b.positions[t.Symbol]
	if !ok {
		p = New(t.Symbol)
		b.positions[t.Symbol] = p
		b.symbols = append(b.symbols, t.Symbol)
	}
	return p.Apply(t)
}

// Position returns the live position for a symbol
func (b *Book) Position(symbol string) (*Position, bool) {
	p, ok := b.positions[symbol]
	return p, ok
}

// Symbols returns held symbols in insertion order
func (b *Book) Symbols() []string {
	out := make([]string, len(b.symbols))
	copy(out, b.symbols)
	return out
}

// Len returns the number of live positions
func (b *Book) Len() int {
	return len(b.symbols)
}

// TotalMarketValue sums market value over live positions
func (b *Book) TotalMarketValue() decimal.Decimal {
	return b.sum((*Position).MarketValue)
}

// TotalUnrealizedPnL sums unrealized PnL over live positions
func (b *Book) TotalUnrealizedPnL() decimal.Decimal {
	return b.sum((*Position).UnrealizedPnL)
}

// TotalRealizedPnL sums realized PnL over live positions
func (b *Book) TotalRealizedPnL() decimal.Decimal {
	return b.sum((*Position).RealizedPnL)
}

// TotalPnL sums realized and unrealized PnL over live positions
func (b *Book) TotalPnL() decimal.Decimal {
	return b.sum((*Position).TotalPnL)
}

// TotalCommission sums commission over live positions
func (b *Book) TotalCommission() decimal.Decimal {
	return b.sum((*Position).TotalCommission)
}

func (b *Book) sum(f func(*Position) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range b.symbols {
		total = total.Add(f(b.positions[b.symbols[i]]))
	}
	return total
}

// Prune drops positions whose net quantity has returned to exactly zero.
// Flat symbols are collected first and removed in a second pass so the
// book is never mutated mid-iteration. The removed symbols are returned
func (b *Book) Prune() []string {
	var flat []string
	for _, symbol := range b.symbols {
		if b.positions[symbol].NetQuantity().IsZero() {
			flat = append(flat, symbol)
		}
	}
	for _, symbol := range flat {
		delete(b.positions, symbol)
		for i := range b.symbols {
			if b.symbols[i] == symbol {
				b.symbols = append(b.symbols[:i], b.symbols[i+1:]...)
				break
			}
		}
	}
	return flat
}
