package store

import (
	"database/sql"
	"errors"
)

// ErrNilDB is returned when a store is constructed without a connection
var ErrNilDB = errors.New("nil database connection")

// DB is the narrow slice of database/sql the store relies on, kept
// small so tests can substitute an in-memory database
type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Store persists run results, daily history rows and transaction
// records keyed by run id, so separate runs can be compared later
type Store struct{ db DB }
