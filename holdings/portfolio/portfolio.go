package portfolio

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/holdings/position"
	"github.com/quantfell/backtester/holdings/transaction"
)

// New validates the settings against the market calendar and creates a
// portfolio with its full initial cash available
func New(s Settings, m Pricer, log zerolog.Logger) (*Portfolio, error) {
	if s.ID == "" {
		return nil, ErrEmptyID
	}
	if s.InitialCash.IsNegative() {
		return nil, fmt.Errorf("%w: '%v'", ErrNegativeInitialCash, s.InitialCash)
	}
	if m == nil {
		return nil, errNilMarket
	}
	if !m.Contains(s.InceptionDate) {
		return nil, fmt.Errorf("%w: '%v'", ErrInceptionDateNotFound, s.InceptionDate)
	}
	p := &Portfolio{
		ID:            s.ID,
		InceptionDate: s.InceptionDate,
		Currency:      s.Currency,
		Benchmark:     s.Benchmark,
		InitialCash:   s.InitialCash,
		Cash:          s.InitialCash,
		Book:          position.NewBook(),
		historyIndex:  make(map[string]int),
		log:           log,
	}
	log.Info().Str("portfolio", s.ID).Str("inception", s.InceptionDate).Msg("portfolio created")
	return p, nil
}

// Transact completes a buy or sell in the portfolio. Cash is debited on
// buys and credited on sells including commission. A trade pushing cash
// negative is allowed deliberately; margin is only controlled at initial
// funding, so this warns and proceeds
func (p *Portfolio) Transact(t *transaction.Transaction) error {
	if t == nil {
		return common.ErrNilArguments
	}
	total := t.TotalCost()
	if t.Side == transaction.Buy && total.GreaterThan(p.Cash) {
		p.log.Warn().
			Str("portfolio", p.ID).
			Str("transaction", t.Details()).
			Str("cash", p.Cash.String()).
			Msg("transaction total cost exceeds current cash, proceeding with negative balance")
	}
	if err := p.Book.Apply(t); err != nil {
		return err
	}
	switch t.Side {
	case transaction.Buy:
		p.Cash = p.Cash.Sub(total)
	case transaction.Sell:
		p.Cash = p.Cash.Add(total)
	}
	p.records = append(p.records, t)
	return nil
}

// MarkToMarket revalues every held symbol to the date's close, appends
// one history row and prunes flat positions. Calling it twice for the
// same date double-counts nothing in the book but appends a duplicate
// history row; the simulation loop enqueues exactly one bar per date
func (p *Portfolio) MarkToMarket(date string, m Pricer) error {
	if m == nil {
		return errNilMarket
	}
	for _, symbol := range p.Book.Symbols() {
		price, err := m.PriceAt(symbol, date)
		if err != nil {
			return err
		}
		pos, _ := p.Book.Position(symbol)
		if err = pos.UpdatePrice(price, date); err != nil {
			return err
		}
	}
	p.appendHistory(date, m)
	p.Book.Prune()
	return nil
}

func (p *Portfolio) appendHistory(date string, m Pricer) {
	row := Snapshot{
		Date:             date,
		Cash:             p.Cash,
		TotalCommission:  p.TotalCommission(),
		RealizedPnL:      p.TotalRealizedPnL(),
		UnrealizedPnL:    p.TotalUnrealizedPnL(),
		TotalPnL:         p.TotalPnL(),
		TotalMarketValue: p.TotalMarketValue(),
	}
	if p.Benchmark != "" {
		value, err := m.PriceAt(p.Benchmark, date)
		if err != nil {
			p.log.Warn().
				Str("portfolio", p.ID).
				Str("benchmark", p.Benchmark).
				Str("date", date).
				Msg("benchmark value unavailable, history row continues without it")
		} else {
			row.BenchmarkValue = value
		}
	}
	p.historyIndex[date] = len(p.history)
	p.history = append(p.history, row)
}

// MarketValue returns the value of all positions, excluding cash
func (p *Portfolio) MarketValue() decimal.Decimal {
	return p.Book.TotalMarketValue()
}

// TotalMarketValue returns the value of all positions plus cash
func (p *Portfolio) TotalMarketValue() decimal.Decimal {
	return p.Book.TotalMarketValue().Add(p.Cash)
}

// TotalPnL returns total PnL over live positions
func (p *Portfolio) TotalPnL() decimal.Decimal {
	return p.Book.TotalPnL()
}

// TotalRealizedPnL returns realized PnL over live positions
func (p *Portfolio) TotalRealizedPnL() decimal.Decimal {
	return p.Book.TotalRealizedPnL()
}

// TotalUnrealizedPnL returns unrealized PnL over live positions
func (p *Portfolio) TotalUnrealizedPnL() decimal.Decimal {
	return p.Book.TotalUnrealizedPnL()
}

// TotalCommission returns commission over live positions
func (p *Portfolio) TotalCommission() decimal.Decimal {
	return p.Book.TotalCommission()
}

// History returns the append-only daily rows
func (p *Portfolio) History() []Snapshot {
	return p.history
}

// SnapshotAt returns the history row for a date
func (p *Portfolio) SnapshotAt(date string) (Snapshot, bool) {
	i, ok := p.historyIndex[date]
	if !ok {
		return Snapshot{}, false
	}
	return p.history[i], true
}

// Records returns the append-only transaction records
func (p *Portfolio) Records() []*transaction.Transaction {
	return p.records
}
