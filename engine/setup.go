package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfell/backtester/common"
	"github.com/quantfell/backtester/config"
	"github.com/quantfell/backtester/holdings/commission"
	"github.com/quantfell/backtester/holdings/master"
	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/market"
	"github.com/quantfell/backtester/strategies"
	"github.com/quantfell/backtester/strategies/buyandhold"
	"github.com/quantfell/backtester/strategies/rebalance"
	"github.com/quantfell/backtester/strategies/rsi"
)

// NewFromConfig builds the full simulation from a validated config:
// market data from disk, the master portfolio, every constituent and
// its strategy binding
func NewFromConfig(cfg *config.Config, log zerolog.Logger) (*BackTest, error) {
	if cfg == nil {
		return nil, common.ErrNilArguments
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mkt, err := market.NewFromCSVDir(cfg.Market.DataDirectory, log)
	if err != nil {
		return nil, fmt.Errorf("could not load market data: %w", err)
	}
	ms, err := master.New(master.Settings{
		ID:             cfg.Master.ID,
		Currency:       cfg.Master.Currency,
		Benchmark:      cfg.Master.Benchmark,
		FundingCeiling: decimal.NewFromFloat(cfg.Master.FundingCeiling),
	}, log)
	if err != nil {
		return nil, err
	}
	for i := range cfg.Portfolios {
		ps := &cfg.Portfolios[i]
		pf, err := portfolio.New(portfolio.Settings{
			ID:            ps.ID,
			InceptionDate: cfg.StartDate,
			Currency:      ps.Currency,
			Benchmark:     cfg.Master.Benchmark,
			InitialCash:   decimal.NewFromFloat(ps.InitialCash),
		}, mkt, log)
		if err != nil {
			return nil, err
		}
		if err = ms.Register(pf); err != nil {
			return nil, err
		}
		if ps.Strategy.Name == "" {
			continue
		}
		s, err := buildStrategy(&ps.Strategy)
		if err != nil {
			return nil, fmt.Errorf("portfolio '%v': %w", ps.ID, err)
		}
		if err = ms.BindStrategy(ps.ID, s); err != nil {
			return nil, err
		}
	}
	return New(mkt, ms, cfg.StartDate, cfg.EndDate, cfg.RiskFreeRate, log)
}

func buildStrategy(s *config.StrategySettings) (strategies.Handler, error) {
	scheme := commission.New(s.Commission)
	switch s.Name {
	case config.StrategyBuyAndHold:
		return buyandhold.New(decimalMap(s.Quantities), scheme), nil
	case config.StrategyRebalance:
		period, err := rebalance.ParsePeriod(s.Period)
		if err != nil {
			return nil, err
		}
		return rebalance.New(period, decimalMap(s.Weights), scheme)
	case config.StrategyRSI:
		return rsi.New(s.Symbol, s.RSIPeriod,
			decimal.NewFromFloat(s.RSILow),
			decimal.NewFromFloat(s.RSIHigh),
			decimal.NewFromFloat(s.Shares),
			scheme)
	default:
		return nil, fmt.Errorf("%w: '%v'", config.ErrUnknownStrategy, s.Name)
	}
}

func decimalMap(in map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for symbol, v := range in {
		out[symbol] = decimal.NewFromFloat(v)
	}
	return out
}
