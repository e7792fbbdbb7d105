package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/config"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"ERIC-B.ST.csv": "Date,Open,High,Low,Close,Adj Close,Volume\n" +
			"2023-01-02,59,61,58,60,60,1000\n" +
			"2023-01-03,60,63,60,62,62,1100\n" +
			"2023-01-04,62,62,60,61,61,900\n",
		"OMXS30.csv": "Date,Close\n" +
			"2023-01-02,2200\n" +
			"2023-01-03,2210\n" +
			"2023-01-04,2220\n",
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StartDate: "2023-01-02",
		EndDate:   "2023-01-04",
		Market:    config.MarketSettings{DataDirectory: writeDataDir(t)},
		Master: config.MasterSettings{
			ID:             "master-1",
			Currency:       "SEK",
			Benchmark:      "OMXS30",
			FundingCeiling: 500000,
		},
		Portfolios: []config.PortfolioSettings{
			{
				ID:          "pf-1",
				Currency:    "SEK",
				InitialCash: 100000,
				Strategy: config.StrategySettings{
					Name:       config.StrategyBuyAndHold,
					Commission: "avanza_mini",
					Quantities: map[string]float64{"ERIC-B.ST": 100},
				},
			},
			{
				ID:          "pf-2",
				Currency:    "SEK",
				InitialCash: 50000,
			},
		},
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	bt, err := NewFromConfig(testConfig(t), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, bt.Run())

	pf, err := bt.Master.Portfolio("pf-1")
	require.NoError(t, err)
	records := pf.Records()
	require.Len(t, records, 1)
	// 100 shares at 60 is a 6000 gross, mini charges 0.25 percent
	assert.True(t, records[0].Commission.Equal(decimal.NewFromInt(15)),
		"received '%v' expected '%v'", records[0].Commission, 15)

	// the strategyless portfolio is registered but never trades
	idle, err := bt.Master.Portfolio("pf-2")
	require.NoError(t, err)
	assert.Empty(t, idle.Records())
	assert.Len(t, idle.History(), 3)
}

func TestNewFromConfigNil(t *testing.T) {
	t.Parallel()
	_, err := NewFromConfig(nil, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrNilArguments)
}

func TestNewFromConfigInvalid(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Portfolios = nil
	_, err := NewFromConfig(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrNoPortfolios)
}

func TestNewFromConfigCeiling(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Master.FundingCeiling = 100000
	_, err := NewFromConfig(cfg, zerolog.Nop())
	assert.Error(t, err, "second portfolio pushes committed cash past the ceiling")
}

func TestBuildStrategy(t *testing.T) {
	t.Parallel()
	s, err := buildStrategy(&config.StrategySettings{
		Name:    config.StrategyRebalance,
		Period:  "eom",
		Weights: map[string]float64{"ERIC-B.ST": 0.5},
	})
	require.NoError(t, err)
	assert.Equal(t, "rebalance", s.Name())

	_, err = buildStrategy(&config.StrategySettings{Name: config.StrategyRebalance, Period: "daily"})
	assert.Error(t, err)

	s, err = buildStrategy(&config.StrategySettings{
		Name:      config.StrategyRSI,
		Symbol:    "ERIC-B.ST",
		RSIPeriod: 14,
		RSILow:    30,
		RSIHigh:   70,
		Shares:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, "rsi", s.Name())

	_, err = buildStrategy(&config.StrategySettings{Name: "martingale"})
	assert.ErrorIs(t, err, config.ErrUnknownStrategy)
}
