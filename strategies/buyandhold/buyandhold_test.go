package buyandhold

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/holdings/commission"
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
	"github.com/quantfell/backtester/market"
)

func testMarket(t *testing.T) *market.Market {
	t.Helper()
	m, err := market.New(
		[]string{"2023-01-02", "2023-01-03"},
		map[string][]decimal.Decimal{
			"ERIC-B.ST": {decimal.NewFromInt(60), decimal.NewFromInt(61)},
			"VOLV-B.ST": {decimal.NewFromInt(200), decimal.NewFromInt(201)},
		})
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

func TestOnSignalFiresOnce(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	pf := testPortfolio(t, m)
	s := New(map[string]decimal.Decimal{"ERIC-B.ST": decimal.NewFromInt(100)}, commission.New(commission.None))

	day1, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-02")
	require.NoError(t, err)
	tr, err := s.OnSignal(day1, pf)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, transaction.Buy, tr.Side)
	assert.True(t, tr.Quantity.Equal(decimal.NewFromInt(100)))
	assert.True(t, tr.Price.Equal(decimal.NewFromInt(60)))
	assert.True(t, s.Completed())

	// a repeated calc signal the next day must not re-fire
	day2, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-03")
	require.NoError(t, err)
	tr, err = s.OnSignal(day2, pf)
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestOnSignalOneSymbolPerEvaluation(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	pf := testPortfolio(t, m)
	s := New(map[string]decimal.Decimal{
		"ERIC-B.ST": decimal.NewFromInt(100),
		"VOLV-B.ST": decimal.NewFromInt(50),
	}, commission.New(commission.None))

	slice, err := m.Select(s.Symbols(), "2023-01-02", "2023-01-02")
	require.NoError(t, err)

	first, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "ERIC-B.ST", first.Symbol)
	assert.False(t, s.Completed())

	second, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "VOLV-B.ST", second.Symbol)
	assert.True(t, s.Completed())

	third, err := s.OnSignal(slice, pf)
	require.NoError(t, err)
	assert.Nil(t, third)
}

func TestOnSignalNilSlice(t *testing.T) {
	t.Parallel()
	s := New(map[string]decimal.Decimal{"ERIC-B.ST": decimal.NewFromInt(100)}, commission.New(commission.None))
	_, err := s.OnSignal(nil, nil)
	assert.ErrorIs(t, err, common.ErrNilArguments)
}
