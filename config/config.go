package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/quantfell/backtester/common"
)

// ReadConfigFromFile loads and parses a config file. The format is
// inferred from the file extension, json and yaml both work
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config '%v': %w", path, err)
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("could not parse config '%v': %w", path, err)
	}
	return c, nil
}

// Validate checks all config settings before a run starts
func (c *Config) Validate() error {
	if err := c.validateDates(); err != nil {
		return err
	}
	if err := c.validateMarket(); err != nil {
		return err
	}
	if err := c.validateMaster(); err != nil {
		return err
	}
	return c.validatePortfolios()
}

func (c *Config) validateDates() error {
	start, err := common.ParseDate(c.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	end, err := common.ParseDate(c.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: '%v' >= '%v'", ErrStartAfterEnd, c.StartDate, c.EndDate)
	}
	return nil
}

func (c *Config) validateMarket() error {
	if c.Market.DataDirectory == "" {
		return ErrNoDataDirectory
	}
	return nil
}

func (c *Config) validateMaster() error {
	if c.Master.ID == "" {
		return fmt.Errorf("master: %w", errEmptyID)
	}
	if c.Master.FundingCeiling < 0 {
		return fmt.Errorf("master funding ceiling: %w", errNegativeCash)
	}
	return nil
}

func (c *Config) validatePortfolios() error {
	if len(c.Portfolios) == 0 {
		return ErrNoPortfolios
	}
	seen := make(map[string]struct{}, len(c.Portfolios))
	for i := range c.Portfolios {
		p := &c.Portfolios[i]
		if p.ID == "" {
			return fmt.Errorf("portfolio #%d: %w", i, errEmptyID)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: '%v'", ErrDuplicatePortfolioID, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.InitialCash < 0 {
			return fmt.Errorf("portfolio '%v': %w", p.ID, errNegativeCash)
		}
		if err := p.Strategy.validate(); err != nil {
			return fmt.Errorf("portfolio '%v': %w", p.ID, err)
		}
	}
	return nil
}

// validate only checks the strategy name here. Per-strategy settings
// are validated by the strategy constructors at setup
func (s *StrategySettings) validate() error {
	switch s.Name {
	case "", StrategyBuyAndHold, StrategyRebalance, StrategyRSI:
		return nil
	default:
		return fmt.Errorf("%w: '%v'", ErrUnknownStrategy, s.Name)
	}
}
