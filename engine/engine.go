// Package engine drives the discrete event simulation. One run walks
// the trading calendar date by date, enqueues a bar event per date and
// drains the queue in strict FIFO order before advancing
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/quantfell/backtester/eventholder"
	"github.com/quantfell/backtester/eventtypes/event"
	"github.com/quantfell/backtester/holdings/master"
	"github.com/quantfell/backtester/market"
	"github.com/quantfell/backtester/statistics"
)

// New validates the run window against the trading calendar and
// prepares a simulation
func New(m *market.Market, ms *master.Master, startDate, endDate string, riskFreeRate float64, log zerolog.Logger) (*BackTest, error) {
	if m == nil {
		return nil, errNilMarket
	}
	if ms == nil {
		return nil, errNilMaster
	}
	if !m.Contains(startDate) {
		return nil, fmt.Errorf("%w: '%v'", ErrStartDateNotFound, startDate)
	}
	if !m.Contains(endDate) {
		return nil, fmt.Errorf("%w: '%v'", ErrEndDateNotFound, endDate)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &BackTest{
		MetaData: RunMetaData{
			ID:        id.String(),
			Started:   time.Now(),
			StartDate: startDate,
			EndDate:   endDate,
		},
		Market:       m,
		Master:       ms,
		Queue:        &eventholder.Holder{},
		RiskFreeRate: riskFreeRate,
		state:        Ready,
		log:          log,
	}, nil
}

// State returns the current lifecycle phase
func (bt *BackTest) State() State {
	return bt.state
}

// Summaries returns the per-portfolio performance figures computed at
// the end of the run, the master's aggregate last
func (bt *BackTest) Summaries() []*statistics.Summary {
	return bt.summaries
}

// Run walks the calendar from start to end date. Each date contributes
// exactly one bar event; everything that event spawns is drained before
// the next date is considered. Run is single use
func (bt *BackTest) Run() error {
	if bt.state != Ready {
		return ErrAlreadyRun
	}
	bt.log.Info().
		Str("run", bt.MetaData.ID).
		Str("start", bt.MetaData.StartDate).
		Str("end", bt.MetaData.EndDate).
		Msg("simulation starting")

	date := bt.MetaData.StartDate
	for {
		bt.state = Running
		bt.Queue.AppendEvent(event.NewBar{Base: event.Base{Date: date}})

		bt.state = Draining
		for e := bt.Queue.NextEvent(); e != nil; e = bt.Queue.NextEvent() {
			if err := bt.handleEvent(e); err != nil {
				return err
			}
		}
		if date == bt.MetaData.EndDate {
			break
		}
		next, ok := bt.Market.NextDate(date)
		if !ok {
			break
		}
		date = next
	}
	bt.state = Finished
	return bt.finalize()
}

// handleEvent dispatches over the closed event set
func (bt *BackTest) handleEvent(e event.Handler) error {
	bt.log.Debug().Str("event", e.Details()).Msg("processing")
	switch ev := e.(type) {
	case event.NewBar:
		return bt.processNewBar(ev)
	case event.CalcSignal:
		return bt.processCalcSignal(ev)
	case event.Transaction:
		return bt.processTransaction(ev)
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledEvent, e)
	}
}

// processNewBar walks the portfolios in registration order: each bound
// portfolio gets a signal evaluation enqueued, then every portfolio is
// marked to the date's closes before the queue reaches those signals.
// Strategies therefore observe positions already valued at the day's
// close, and the day's history row excludes the day's fills
func (bt *BackTest) processNewBar(e event.NewBar) error {
	for _, id := range bt.Master.IDs() {
		if _, err := bt.Master.Strategy(id); err == nil {
			bt.Queue.AppendEvent(event.CalcSignal{Base: event.Base{Date: e.Date, PortfolioID: id}})
		}
		pf, err := bt.Master.Portfolio(id)
		if err != nil {
			return err
		}
		if err = pf.MarkToMarket(e.Date, bt.Market); err != nil {
			return err
		}
	}
	return bt.Master.RollUp(e.Date, bt.Market)
}

// processCalcSignal hands the strategy its trailing view of the market,
// from the run's start date up to the event date, and enqueues any fill
// it decides on
func (bt *BackTest) processCalcSignal(e event.CalcSignal) error {
	s, err := bt.Master.Strategy(e.PortfolioID)
	if err != nil {
		return err
	}
	pf, err := bt.Master.Portfolio(e.PortfolioID)
	if err != nil {
		return err
	}
	slice, err := bt.Market.Select(s.Symbols(), bt.MetaData.StartDate, e.Date)
	if err != nil {
		return err
	}
	tr, err := s.OnSignal(slice, pf)
	if err != nil {
		return err
	}
	if tr == nil {
		return nil
	}
	bt.Queue.AppendEvent(event.Transaction{
		Base:        event.Base{Date: e.Date, PortfolioID: e.PortfolioID},
		Transaction: tr,
	})
	return nil
}

func (bt *BackTest) processTransaction(e event.Transaction) error {
	pf, err := bt.Master.Portfolio(e.PortfolioID)
	if err != nil {
		return err
	}
	return pf.Transact(e.Transaction)
}

// finalize computes performance figures for every constituent and the
// master aggregate. Portfolios with fewer than two rows are skipped
func (bt *BackTest) finalize() error {
	for _, id := range bt.Master.IDs() {
		pf, err := bt.Master.Portfolio(id)
		if err != nil {
			return err
		}
		summary, err := statistics.Compute(id, pf.History(), bt.RiskFreeRate)
		if err != nil {
			if errors.Is(err, statistics.ErrInsufficientHistory) {
				continue
			}
			return err
		}
		bt.summaries = append(bt.summaries, summary)
	}
	summary, err := statistics.Compute(bt.Master.ID, bt.Master.History(), bt.RiskFreeRate)
	if err == nil {
		bt.summaries = append(bt.summaries, summary)
	} else if !errors.Is(err, statistics.ErrInsufficientHistory) {
		return err
	}
	bt.log.Info().
		Str("run", bt.MetaData.ID).
		Int("portfolios", len(bt.Master.IDs())).
		Msg("simulation finished")
	return nil
}

// Reset clears the queue so a fresh BackTest can be built from the same
// components
func (bt *BackTest) Reset() {
	bt.Queue.Reset()
}
