package config

import "errors"

var (
	// ErrStartAfterEnd is returned when the simulation window is inverted
	ErrStartAfterEnd = errors.New("start date must precede end date")
	// ErrNoPortfolios is returned when no constituent portfolios are configured
	ErrNoPortfolios = errors.New("at least one portfolio must be configured")
	// ErrDuplicatePortfolioID is returned when two portfolios share an id
	ErrDuplicatePortfolioID = errors.New("duplicate portfolio id")
	// ErrUnknownStrategy is returned for strategy names outside the known set
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrNoDataDirectory is returned when no market data location is set
	ErrNoDataDirectory = errors.New("market data directory not set")
	errEmptyID         = errors.New("id must not be empty")
	errNegativeCash    = errors.New("initial cash must not be negative")
)

// The closed set of configurable strategy names
const (
	StrategyBuyAndHold = "buyandhold"
	StrategyRebalance  = "rebalance"
	StrategyRSI        = "rsi"
)

// Config is the complete runtime configuration of one simulation run
type Config struct {
	StartDate    string              `mapstructure:"startDate"`
	EndDate      string              `mapstructure:"endDate"`
	RiskFreeRate float64             `mapstructure:"riskFreeRate"`
	Market       MarketSettings      `mapstructure:"market"`
	Master       MasterSettings      `mapstructure:"master"`
	Portfolios   []PortfolioSettings `mapstructure:"portfolios"`
	Report       ReportSettings      `mapstructure:"report"`
	Store        StoreSettings       `mapstructure:"store"`
}

// MarketSettings locates the daily bar data
type MarketSettings struct {
	DataDirectory string `mapstructure:"dataDirectory"`
}

// MasterSettings configures the master portfolio and its admission ceiling
type MasterSettings struct {
	ID             string  `mapstructure:"id"`
	Currency       string  `mapstructure:"currency"`
	Benchmark      string  `mapstructure:"benchmark"`
	FundingCeiling float64 `mapstructure:"fundingCeiling"`
}

// PortfolioSettings configures one constituent portfolio and its strategy
type PortfolioSettings struct {
	ID          string           `mapstructure:"id"`
	Currency    string           `mapstructure:"currency"`
	InitialCash float64          `mapstructure:"initialCash"`
	Strategy    StrategySettings `mapstructure:"strategy"`
}

// StrategySettings is the union of the settings the known strategies
// accept. Each strategy reads only the fields that concern it
type StrategySettings struct {
	Name       string             `mapstructure:"name"`
	Commission string             `mapstructure:"commission"`
	Quantities map[string]float64 `mapstructure:"quantities"`
	Period     string             `mapstructure:"period"`
	Weights    map[string]float64 `mapstructure:"weights"`
	Symbol     string             `mapstructure:"symbol"`
	RSIPeriod  int                `mapstructure:"rsiPeriod"`
	RSILow     float64            `mapstructure:"rsiLow"`
	RSIHigh    float64            `mapstructure:"rsiHigh"`
	Shares     float64            `mapstructure:"shares"`
}

// ReportSettings configures the CSV and chart output
type ReportSettings struct {
	Enabled         bool   `mapstructure:"enabled"`
	OutputDirectory string `mapstructure:"outputDirectory"`
}

// StoreSettings configures result persistence
type StoreSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
