package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfell/backtester/common"
)

func validConfig() *Config {
	return &Config{
		StartDate: "2023-01-02",
		EndDate:   "2023-12-29",
		Market:    MarketSettings{DataDirectory: "testdata"},
		Master: MasterSettings{
			ID:             "master-1",
			Currency:       "SEK",
			Benchmark:      "OMXS30",
			FundingCeiling: 1000000,
		},
		Portfolios: []PortfolioSettings{
			{
				ID:          "pf-1",
				Currency:    "SEK",
				InitialCash: 100000,
				Strategy: StrategySettings{
					Name:       StrategyBuyAndHold,
					Commission: "avanza_mini",
					Quantities: map[string]float64{"ERIC-B.ST": 100},
				},
			},
		},
	}
}

func TestReadConfigFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"startDate": "2023-01-02",
		"endDate": "2023-12-29",
		"riskFreeRate": 0.02,
		"market": {"dataDirectory": "testdata"},
		"master": {"id": "master-1", "currency": "SEK", "benchmark": "OMXS30", "fundingCeiling": 1000000},
		"portfolios": [
			{
				"id": "pf-1",
				"currency": "SEK",
				"initialCash": 100000,
				"strategy": {
					"name": "rebalance",
					"commission": "avanza_small",
					"period": "eom",
					"weights": {"ERIC-B.ST": 0.5, "VOLV-B.ST": 0.3}
				}
			}
		],
		"report": {"enabled": true, "outputDirectory": "out"},
		"store": {"enabled": true, "path": "results.db"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := ReadConfigFromFile(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "2023-01-02", c.StartDate)
	assert.InDelta(t, 0.02, c.RiskFreeRate, 1e-12)
	assert.Equal(t, "master-1", c.Master.ID)
	require.Len(t, c.Portfolios, 1)
	assert.Equal(t, StrategyRebalance, c.Portfolios[0].Strategy.Name)
	assert.Equal(t, "eom", c.Portfolios[0].Strategy.Period)
	assert.InDelta(t, 0.5, c.Portfolios[0].Strategy.Weights["ERIC-B.ST"], 1e-12)
	assert.True(t, c.Store.Enabled)
}

func TestReadConfigFromFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ReadConfigFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())

	c := validConfig()
	c.StartDate = "02-01-2023"
	assert.ErrorIs(t, c.Validate(), common.ErrInvalidDateFormat)

	c = validConfig()
	c.StartDate, c.EndDate = c.EndDate, c.StartDate
	assert.ErrorIs(t, c.Validate(), ErrStartAfterEnd)

	c = validConfig()
	c.Market.DataDirectory = ""
	assert.ErrorIs(t, c.Validate(), ErrNoDataDirectory)

	c = validConfig()
	c.Master.ID = ""
	assert.ErrorIs(t, c.Validate(), errEmptyID)

	c = validConfig()
	c.Portfolios = nil
	assert.ErrorIs(t, c.Validate(), ErrNoPortfolios)

	c = validConfig()
	c.Portfolios = append(c.Portfolios, c.Portfolios[0])
	assert.ErrorIs(t, c.Validate(), ErrDuplicatePortfolioID)

	c = validConfig()
	c.Portfolios[0].InitialCash = -1
	assert.ErrorIs(t, c.Validate(), errNegativeCash)

	c = validConfig()
	c.Portfolios[0].Strategy.Name = "martingale"
	assert.ErrorIs(t, c.Validate(), ErrUnknownStrategy)
}
