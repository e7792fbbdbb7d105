package engine

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfell/backtester/eventholder"
	"github.com/quantfell/backtester/holdings/master"
	"github.com/quantfell/backtester/market"
	"github.com/quantfell/backtester/statistics"
)

var (
	// ErrAlreadyRun is returned when Run is called on a finished simulation
	ErrAlreadyRun = errors.New("simulation has already run")
	// ErrStartDateNotFound is returned when the start date is absent from
	// the trading calendar
	ErrStartDateNotFound = errors.New("start date not found in market calendar")
	// ErrEndDateNotFound is returned when the end date is absent from the
	// trading calendar
	ErrEndDateNotFound = errors.New("end date not found in market calendar")
	// ErrUnhandledEvent is returned when the queue yields an event kind
	// outside the closed set
	ErrUnhandledEvent = errors.New("unhandled event type")
	errNilMarket      = errors.New("nil market")
	errNilMaster      = errors.New("nil master portfolio")
)

// State is the lifecycle phase of a simulation run
type State uint8

// A run is Ready until started, Running while enqueueing the day's bar,
// Draining while the queue empties and Finished after the last date
const (
	Ready State = iota
	Running
	Draining
	Finished
)

// String implements the stringer interface
func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// RunMetaData identifies one simulation run
type RunMetaData struct {
	ID        string
	Started   time.Time
	StartDate string
	EndDate   string
}

// BackTest ties the market, the master portfolio and the event queue
// into one single-goroutine simulation
type BackTest struct {
	MetaData     RunMetaData
	Market       *market.Market
	Master       *master.Master
	Queue        *eventholder.Holder
	RiskFreeRate float64

	state     State
	summaries []*statistics.Summary
	log       zerolog.Logger
}
