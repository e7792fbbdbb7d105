package rsi

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfell/backtester/holdings/commission"
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
	"github.com/quantfell/backtester/market"
)

func testStrategy(t *testing.T) *Strategy {
	t.Helper()
	s, err := New("ERIC-B.ST", 3,
		decimal.NewFromInt(30), decimal.NewFromInt(70), decimal.NewFromInt(100),
		commission.New(commission.None))
	require.NoError(t, err)
	return s
}

func marketOf(t *testing.T, closes ...int64) *market.Market {
	t.Helper()
	dates := []string{"2023-01-02", "2023-01-03", "2023-01-04", "2023-01-05", "2023-01-06"}
	require.Len(t, closes, len(dates))
	series := make([]decimal.Decimal, len(closes))
	for i := range closes {
		series[i] = decimal.NewFromInt(closes[i])
	}
	m, err := market.New(dates, map[string][]decimal.Decimal{"ERIC-B.ST": series})
	require.NoError(t, err)
	return m
}

func testPortfolio(t *testing.T, m *market.Market) *portfolio.Portfolio {
	t.Helper()
	p, err := portfolio.New(portfolio.Settings{
		ID:            "pf-1",
		InceptionDate: "2023-01-02",
		Currency:      "SEK",
		InitialCash:   decimal.NewFromInt(100000),
	}, m, zerolog.Nop())
	require.NoError(t, err)
	return p
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	scheme := commission.New(commission.None)
	_, err := New("X", 0, decimal.NewFromInt(30), decimal.NewFromInt(70), decimal.NewFromInt(1), scheme)
	assert.ErrorIs(t, err, errInvalidPeriod)
	_, err = New("X", 14, decimal.NewFromInt(70), decimal.NewFromInt(30), decimal.NewFromInt(1), scheme)
	assert.ErrorIs(t, err, errInvalidThresholds)
	_, err = New("X", 14, decimal.NewFromInt(30), decimal.NewFromInt(70), decimal.Zero, scheme)
	assert.ErrorIs(t, err, errInvalidShares)
}

func TestOnSignalWarmup(t *testing.T) {
	t.Parallel()
	m := marketOf(t, 100, 99, 98, 97, 96)
	s := testStrategy(t)
	pf := testPortfolio(t, m)

	// only two observations, period is three
	slice, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-03")
	require.NoError(t, err)
	tr, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestOnSignalBuysOversold(t *testing.T) {
	t.Parallel()
	// strictly falling closes drive RSI to zero
	m := marketOf(t, 100, 95, 90, 85, 80)
	s := testStrategy(t)
	pf := testPortfolio(t, m)

	slice, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-06")
	require.NoError(t, err)
	tr, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, transaction.Buy, tr.Side)
	assert.True(t, tr.Quantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, tr.Price.Equal(decimal.NewFromInt(80)))
}

func TestOnSignalFlattensOverbought(t *testing.T) {
	t.Parallel()
	// strictly rising closes drive RSI to one hundred
	m := marketOf(t, 80, 85, 90, 95, 100)
	s := testStrategy(t)
	pf := testPortfolio(t, m)
	buy, err := transaction.New("ERIC-B.ST", transaction.Buy, decimal.NewFromInt(250), decimal.NewFromInt(80), commission.New(commission.None), "2023-01-02")
	require.NoError(t, err)
	require.NoError(t, pf.Transact(buy))

	slice, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-06")
	require.NoError(t, err)
	tr, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, transaction.Sell, tr.Side)
	assert.True(t, tr.Quantity.Equal(decimal.NewFromInt(250)), "flattens the entire holding")
}

func TestOnSignalNeutralDoesNothing(t *testing.T) {
	t.Parallel()
	// mixed closes keep RSI between the thresholds
	m := marketOf(t, 100, 102, 99, 103, 101)
	s := testStrategy(t)
	pf := testPortfolio(t, m)

	slice, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-06")
	require.NoError(t, err)
	tr, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	assert.Nil(t, tr)
}
