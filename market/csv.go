package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NewFromCSVDir loads every .csv file in a directory as one symbol's
// daily history in Yahoo Finance download format and inner-joins the
// series on date, keeping only dates present in every file
func NewFromCSVDir(dir string, log zerolog.Logger) (*Market, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	series := make(map[string]map[string]decimal.Decimal)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		symbol := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		closes, err := readCloses(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%v: %w", entry.Name(), err)
		}
		series[symbol] = closes
		log.Info().Str("symbol", symbol).Int("rows", len(closes)).Msg("data file read")
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %v", errNoCSVFiles, dir)
	}

	dates := joinDates(series)
	closes := make(map[string][]decimal.Decimal, len(series))
	for symbol, bySymbol := range series {
		aligned := make([]decimal.Decimal, len(dates))
		for i, date := range dates {
			aligned[i] = bySymbol[date]
		}
		closes[symbol] = aligned
	}
	return New(dates, closes)
}

// joinDates returns the dates common to all series, ascending
func joinDates(series map[string]map[string]decimal.Decimal) []string {
	var dates []string
	first := true
	for _, bySymbol := range series {
		if first {
			for date := range bySymbol {
				dates = append(dates, date)
			}
			first = false
			continue
		}
		kept := dates[:0]
		for _, date := range dates {
			if _, ok := bySymbol[date]; ok {
				kept = append(kept, date)
			}
		}
		dates = kept
	}
	sort.Strings(dates)
	return dates
}

func readCloses(path string) (map[string]decimal.Decimal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrNoData
	}
	dateCol, closeCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "Date":
			dateCol = i
		case "Close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("%w: need Date and Close", errMissingColumn)
	}
	closes := make(map[string]decimal.Decimal, len(records)-1)
	for _, record := range records[1:] {
		price, err := decimal.NewFromString(strings.TrimSpace(record[closeCol]))
		if err != nil {
			return nil, err
		}
		closes[strings.TrimSpace(record[dateCol])] = price
	}
	return closes, nil
}
