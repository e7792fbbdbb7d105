package master

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/strategies"
)

// New creates a master portfolio with the given funding ceiling
func New(s Settings, log zerolog.Logger) (*Master, error) {
	if s.ID == "" {
		return nil, portfolio.ErrEmptyID
	}
	if s.FundingCeiling.IsNegative() {
		return nil, portfolio.ErrNegativeInitialCash
	}
	m := &Master{
		ID:             s.ID,
		Currency:       s.Currency,
		Benchmark:      s.Benchmark,
		FundingCeiling: s.FundingCeiling,
		portfolios:     make(map[string]*portfolio.Portfolio),
		strategies:     make(map[string]strategies.Handler),
		log:            log,
	}
	log.Info().Str("master", s.ID).Str("ceiling", s.FundingCeiling.String()).Msg("master portfolio created")
	return m, nil
}

// Register admits a constituent portfolio. Admission control happens
// here and only here: once the summed initial cash of all constituents
// would exceed the funding ceiling the registration fails. Committing
// exactly up to the ceiling is accepted
func (m *Master) Register(p *portfolio.Portfolio) error {
	if p == nil {
		return errNilPortfolio
	}
	if _, ok := m.portfolios[p.ID]; ok {
		return fmt.Errorf("%w: '%v'", ErrDuplicatePortfolio, p.ID)
	}
	committed := m.committed.Add(p.InitialCash)
	if committed.GreaterThan(m.FundingCeiling) {
		return fmt.Errorf("%w: committed '%v' of '%v'", ErrFundingCeilingExceeded, committed, m.FundingCeiling)
	}
	m.committed = committed
	m.portfolios[p.ID] = p
	m.ids = append(m.ids, p.ID)
	return nil
}

// BindStrategy binds a strategy to a registered portfolio. Binding is
// one to one and rebinding overwrites the previous strategy
func (m *Master) BindStrategy(pfID string, s strategies.Handler) error {
	if s == nil {
		return errNilStrategy
	}
	if _, ok := m.portfolios[pfID]; !ok {
		return fmt.Errorf("%w: '%v'", ErrPortfolioNotFound, pfID)
	}
	m.strategies[pfID] = s
	return nil
}

// Portfolio returns a registered constituent by id
func (m *Master) Portfolio(id string) (*portfolio.Portfolio, error) {
	p, ok := m.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%v'", ErrPortfolioNotFound, id)
	}
	return p, nil
}

// Strategy returns the strategy bound to a portfolio id
func (m *Master) Strategy(pfID string) (strategies.Handler, error) {
	s, ok := m.strategies[pfID]
	if !ok {
		return nil, fmt.Errorf("%w: '%v'", ErrStrategyNotFound, pfID)
	}
	return s, nil
}

// IDs returns registered portfolio ids in registration order
func (m *Master) IDs() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Committed returns the summed initial cash of all constituents
func (m *Master) Committed() decimal.Decimal {
	return m.committed
}

// RollUp sums each constituent's already-computed history row for the
// date into one aggregate row plus the master's own benchmark value.
// The simulation loop owns the ordering guarantee that every
// constituent has marked to market for the date before this is called
func (m *Master) RollUp(date string, pr portfolio.Pricer) error {
	row := portfolio.Snapshot{Date: date}
	for _, id := range m.ids {
		constituent, ok := m.portfolios[id].SnapshotAt(date)
		if !ok {
			return fmt.Errorf("%w: portfolio '%v' on '%v'", errMissingHistoryRow, id, date)
		}
		row.Cash = row.Cash.Add(constituent.Cash)
		row.TotalCommission = row.TotalCommission.Add(constituent.TotalCommission)
		row.RealizedPnL = row.RealizedPnL.Add(constituent.RealizedPnL)
		row.UnrealizedPnL = row.UnrealizedPnL.Add(constituent.UnrealizedPnL)
		row.TotalPnL = row.TotalPnL.Add(constituent.TotalPnL)
		row.TotalMarketValue = row.TotalMarketValue.Add(constituent.TotalMarketValue)
	}
	if m.Benchmark != "" {
		value, err := pr.PriceAt(m.Benchmark, date)
		if err != nil {
			m.log.Warn().
				Str("master", m.ID).
				Str("benchmark", m.Benchmark).
				Str("date", date).
				Msg("benchmark value unavailable, aggregate row continues without it")
		} else {
			row.BenchmarkValue = value
		}
	}
	m.history = append(m.history, row)
	return nil
}

// History returns the aggregate daily rows
func (m *Master) History() []portfolio.Snapshot {
	return m.history
}
