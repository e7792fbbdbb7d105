package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/quantfell/backtester/holdings/portfolio"
	"github.com/quantfell/backtester/holdings/transaction"
)

// Open opens a sqlite database at the given path
func Open(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

// InitSchema creates the result tables if they do not exist
func InitSchema(db DB) error {
	if db == nil {
		return ErrNilDB
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs(
		id TEXT PRIMARY KEY, started TEXT, start_date TEXT, end_date TEXT
	)`)
	if err != nil {
		return fmt.Errorf("could not create runs table: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS history(
		run_id TEXT, portfolio TEXT, date TEXT,
		cash TEXT, market_value TEXT, realized_pnl TEXT, unrealized_pnl TEXT,
		total_pnl TEXT, total_commission TEXT, benchmark TEXT
	)`)
	if err != nil {
		return fmt.Errorf("could not create history table: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS transactions(
		run_id TEXT, portfolio TEXT, id TEXT, symbol TEXT, side TEXT,
		quantity TEXT, price TEXT, commission TEXT, date TEXT
	)`)
	if err != nil {
		return fmt.Errorf("could not create transactions table: %w", err)
	}
	return nil
}

// NewStore wraps an open connection
func NewStore(db DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Store{db: db}, nil
}

// SaveRun records the run metadata row
func (s *Store) SaveRun(runID, started, startDate, endDate string) error {
	_, err := s.db.Exec(`INSERT INTO runs(id,started,start_date,end_date) VALUES(?,?,?,?)`,
		runID, started, startDate, endDate)
	return err
}

// SaveHistory persists one portfolio's daily rows for a run. Decimal
// columns are stored as text to keep their exact representation
func (s *Store) SaveHistory(runID, portfolioID string, history []portfolio.Snapshot) error {
	for i := range history {
		_, err := s.db.Exec(`INSERT INTO history(
			run_id,portfolio,date,cash,market_value,realized_pnl,unrealized_pnl,total_pnl,total_commission,benchmark
		) VALUES(?,?,?,?,?,?,?,?,?,?)`,
			runID, portfolioID,
			history[i].Date,
			history[i].Cash.String(),
			history[i].TotalMarketValue.String(),
			history[i].RealizedPnL.String(),
			history[i].UnrealizedPnL.String(),
			history[i].TotalPnL.String(),
			history[i].TotalCommission.String(),
			history[i].BenchmarkValue.String())
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveTransactions persists one portfolio's fill records for a run
func (s *Store) SaveTransactions(runID, portfolioID string, records []*transaction.Transaction) error {
	for _, r := range records {
		_, err := s.db.Exec(`INSERT INTO transactions(
			run_id,portfolio,id,symbol,side,quantity,price,commission,date
		) VALUES(?,?,?,?,?,?,?,?,?)`,
			runID, portfolioID,
			r.ID, r.Symbol, r.Side.String(),
			r.Quantity.String(), r.Price.String(), r.Commission.String(), r.Date)
		if err != nil {
			return err
		}
	}
	return nil
}

// FetchHistory reads a portfolio's daily rows for a run back in date order
func (s *Store) FetchHistory(runID, portfolioID string) ([]portfolio.Snapshot, error) {
	rows, err := s.db.Query(`SELECT date,cash,market_value,realized_pnl,unrealized_pnl,total_pnl,total_commission,benchmark
		FROM history WHERE run_id=? AND portfolio=? ORDER BY date ASC`,
		runID, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []portfolio.Snapshot
	for rows.Next() {
		var snap portfolio.Snapshot
		var cash, marketValue, realized, unrealized, total, commission, benchmark string
		if err = rows.Scan(&snap.Date, &cash, &marketValue, &realized, &unrealized, &total, &commission, &benchmark); err != nil {
			return nil, err
		}
		if snap.Cash, err = decimal.NewFromString(cash); err != nil {
			return nil, err
		}
		if snap.TotalMarketValue, err = decimal.NewFromString(marketValue); err != nil {
			return nil, err
		}
		if snap.RealizedPnL, err = decimal.NewFromString(realized); err != nil {
			return nil, err
		}
		if snap.UnrealizedPnL, err = decimal.NewFromString(unrealized); err != nil {
			return nil, err
		}
		if snap.TotalPnL, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		if snap.TotalCommission, err = decimal.NewFromString(commission); err != nil {
			return nil, err
		}
		if snap.BenchmarkValue, err = decimal.NewFromString(benchmark); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
