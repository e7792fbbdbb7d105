package market

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/common"
)

// New builds a market from aligned close series. Every symbol must have
// exactly one price per calendar date
func New(dates []string, closes map[string][]decimal.Decimal) (*Market, error) {
	if len(dates) == 0 || len(closes) == 0 {
		return nil, ErrNoData
	}
	parsed := make([]time.Time, len(dates))
	for i := range dates {
		var err error
		if parsed[i], err = common.ParseDate(dates[i]); err != nil {
			return nil, err
		}
		if i > 0 && !parsed[i].After(parsed[i-1]) {
			return nil, fmt.Errorf("%w: '%v' followed by '%v'", ErrUnorderedDates, dates[i-1], dates[i])
		}
	}
	var symbols []string
	for symbol, series := range closes {
		if len(series) != len(dates) {
			return nil, fmt.Errorf("%w for '%v': %v prices, %v dates", errLengthMismatch, symbol, len(series), len(dates))
		}
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	m := &Market{
		symbols: symbols,
		rows:    make([]Row, len(dates)),
		index:   make(map[string]int, len(dates)),
	}
	for i := range dates {
		prices := make(map[string]decimal.Decimal, len(symbols))
		for _, symbol := range symbols {
			prices[symbol] = closes[symbol][i]
		}
		m.rows[i] = Row{Date: dates[i], Prices: prices}
		m.index[dates[i]] = i
	}
	deriveFlags(m.rows, parsed)
	return m, nil
}

// deriveFlags sets the period-boundary flags. A date starts a period
// when its month/week differs from the previous trading day's, and ends
// one when the next trading day starts a new period
func deriveFlags(rows []Row, parsed []time.Time) {
	for i := 1; i < len(rows); i++ {
		if parsed[i].Month() != parsed[i-1].Month() {
			rows[i].Flags.StartOfMonth = true
			rows[i-1].Flags.EndOfMonth = true
		}
		_, prevWeek := parsed[i-1].ISOWeek()
		_, week := parsed[i].ISOWeek()
		if week != prevWeek {
			rows[i].Flags.StartOfWeek = true
			rows[i-1].Flags.EndOfWeek = true
		}
	}
}

// Symbols returns all tracked symbols
func (m *Market) Symbols() []string {
	out := make([]string, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// Calendar returns every trading date in ascending order
func (m *Market) Calendar() []string {
	out := make([]string, len(m.rows))
	for i := range m.rows {
		out[i] = m.rows[i].Date
	}
	return out
}

// Contains reports whether a date exists in the trading calendar
func (m *Market) Contains(date string) bool {
	_, ok := m.index[date]
	return ok
}

// NextDate returns the trading date following the given one. ok is false
// when date is the last calendar row or unknown
func (m *Market) NextDate(date string) (string, bool) {
	i, ok := m.index[date]
	if !ok || i+1 >= len(m.rows) {
		return "", false
	}
	return m.rows[i+1].Date, true
}

// PriceAt returns the close price for a symbol on a date. Absent dates
// and symbols are hard failures; accounting cannot proceed past them
func (m *Market) PriceAt(symbol, date string) (decimal.Decimal, error) {
	i, ok := m.index[date]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: '%v'", common.ErrDateNotFound, date)
	}
	price, ok := m.rows[i].Prices[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: '%v'", common.ErrSymbolNotFound, symbol)
	}
	return price, nil
}

// Select returns the rows between start and end inclusive, restricted to
// the requested symbols, with the period-boundary flags attached
func (m *Market) Select(symbols []string, startDate, endDate string) (*Slice, error) {
	start, ok := m.index[startDate]
	if !ok {
		return nil, fmt.Errorf("%w: start date '%v'", common.ErrDateNotFound, startDate)
	}
	end, ok := m.index[endDate]
	if !ok {
		return nil, fmt.Errorf("%w: end date '%v'", common.ErrDateNotFound, endDate)
	}
	for _, symbol := range symbols {
		if _, ok := m.rows[start].Prices[symbol]; !ok {
			return nil, fmt.Errorf("%w: '%v'", common.ErrSymbolNotFound, symbol)
		}
	}
	s := &Slice{rows: make([]Row, 0, end-start+1)}
	for i := start; i <= end; i++ {
		prices := make(map[string]decimal.Decimal, len(symbols))
		for _, symbol := range symbols {
			prices[symbol] = m.rows[i].Prices[symbol]
		}
		s.rows = append(s.rows, Row{
			Date:   m.rows[i].Date,
			Prices: prices,
			Flags:  m.rows[i].Flags,
		})
	}
	return s, nil
}

// Rows returns the slice rows in date-ascending order
func (s *Slice) Rows() []Row {
	return s.rows
}

// Latest returns the most recent row of the slice
func (s *Slice) Latest() *Row {
	if len(s.rows) == 0 {
		return nil
	}
	return &s.rows[len(s.rows)-1]
}

// Closes returns a symbol's close series as floats, oldest first
func (s *Slice) Closes(symbol string) []float64 {
	out := make([]float64, 0, len(s.rows))
	for i := range s.rows {
		price, ok := s.rows[i].Prices[symbol]
		if !ok {
			continue
		}
		f, _ := price.Float64()
		out = append(out, f)
	}
	return out
}
