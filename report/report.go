package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	charts "github.com/vicanso/go-charts/v2"

	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/statistics"
)

// New creates a report writer, creating the output directory if needed
func New(outputDirectory string, log zerolog.Logger) (*Report, error) {
	if outputDirectory == "" {
		return nil, ErrEmptyOutputDirectory
	}
	if err := os.MkdirAll(outputDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("could not create report directory: %w", err)
	}
	return &Report{OutputDirectory: outputDirectory, log: log}, nil
}

// WriteHistory writes one portfolio's daily rows as CSV and returns the
// written path
func (r *Report) WriteHistory(id string, history []portfolio.Snapshot) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w for '%v'", ErrNoHistory, id)
	}
	path := filepath.Join(r.OutputDirectory, id+"-history.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"date", "cash", "market_value", "realized_pnl", "unrealized_pnl", "total_pnl", "total_commission", "benchmark"}
	if err = w.Write(header); err != nil {
		return "", err
	}
	for i := range history {
		row := []string{
			history[i].Date,
			history[i].Cash.String(),
			history[i].TotalMarketValue.String(),
			history[i].RealizedPnL.String(),
			history[i].UnrealizedPnL.String(),
			history[i].TotalPnL.String(),
			history[i].TotalCommission.String(),
			history[i].BenchmarkValue.String(),
		}
		if err = w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", err
	}
	r.log.Info().Str("portfolio", id).Str("path", path).Msg("history written")
	return path, nil
}

// WriteEquityChart renders the equity curve as a PNG and returns the
// written path. A benchmark column present on every row is drawn as a
// second series
func (r *Report) WriteEquityChart(id string, history []portfolio.Snapshot) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w for '%v'", ErrNoHistory, id)
	}
	values := [][]float64{statistics.Equity(history)}
	legend := []string{id}
	if bench := benchmarkValues(history); bench != nil {
		values = append(values, bench)
		legend = append(legend, "benchmark")
	}
	labels := make([]string, len(history))
	for i := range history {
		labels[i] = history[i].Date
	}

	splitNum := 6
	if len(labels) <= 30 {
		splitNum = len(labels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}
	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(id),
		charts.LegendLabelsOptionFunc(legend),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return "", fmt.Errorf("could not render equity chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("could not encode equity chart: %w", err)
	}
	path := filepath.Join(r.OutputDirectory, id+"-equity.png")
	if err = os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	r.log.Info().Str("portfolio", id).Str("path", path).Msg("equity chart written")
	return path, nil
}

// WriteDrawdownChart renders the underwater curve, each day's distance
// below the running equity peak, as a PNG and returns the written path
func (r *Report) WriteDrawdownChart(id string, history []portfolio.Snapshot) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w for '%v'", ErrNoHistory, id)
	}
	drawdowns := statistics.Drawdowns(statistics.Equity(history))
	for i := range drawdowns {
		drawdowns[i] *= 100
	}
	labels := make([]string, len(history))
	for i := range history {
		labels[i] = history[i].Date
	}
	p, err := charts.LineRender(
		[][]float64{drawdowns},
		charts.TitleTextOptionFunc(id+" drawdown %"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: 6,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return "", fmt.Errorf("could not render drawdown chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("could not encode drawdown chart: %w", err)
	}
	path := filepath.Join(r.OutputDirectory, id+"-drawdown.png")
	if err = os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	r.log.Info().Str("portfolio", id).Str("path", path).Msg("drawdown chart written")
	return path, nil
}

// WriteSummaries writes one CSV row per computed performance summary
func (r *Report) WriteSummaries(summaries []*statistics.Summary) (string, error) {
	if len(summaries) == 0 {
		return "", ErrNoHistory
	}
	path := filepath.Join(r.OutputDirectory, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"portfolio", "start", "end", "initial_equity", "final_equity", "total_return", "cagr", "volatility", "sharpe", "sortino", "max_drawdown", "max_drawdown_days", "beta"}
	if err = w.Write(header); err != nil {
		return "", err
	}
	for _, s := range summaries {
		row := []string{
			s.PortfolioID,
			s.StartDate,
			s.EndDate,
			formatFloat(s.InitialEquity),
			formatFloat(s.FinalEquity),
			formatFloat(s.TotalReturn),
			formatFloat(s.CAGR),
			formatFloat(s.AnnualizedVolatility),
			formatFloat(s.Sharpe),
			formatFloat(s.Sortino),
			formatFloat(s.MaxDrawdown),
			strconv.Itoa(s.MaxDrawdownDuration),
			formatFloat(s.Beta),
		}
		if err = w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", err
	}
	r.log.Info().Int("portfolios", len(summaries)).Str("path", path).Msg("summaries written")
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func benchmarkValues(history []portfolio.Snapshot) []float64 {
	out := make([]float64, len(history))
	for i := range history {
		if history[i].BenchmarkValue.IsZero() {
			return nil
		}
		out[i], _ = history[i].BenchmarkValue.Float64()
	}
	return out
}
