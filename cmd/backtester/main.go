package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/quantfell/backtester/config"
	"github.com/quantfell/backtester/engine"
	"github.com/quantfell/backtester/report"
	"github.com/quantfell/backtester/store"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "event driven backtesting over daily bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to the run configuration",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	bt, err := engine.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	if err = bt.Run(); err != nil {
		return err
	}
	if cfg.Report.Enabled {
		if err = writeReport(cfg, bt, log); err != nil {
			return err
		}
	}
	if cfg.Store.Enabled {
		if err = persist(cfg, bt); err != nil {
			return err
		}
	}
	return nil
}

// writeReport writes the daily CSV and equity chart for every
// constituent and the master aggregate, plus the summary table
func writeReport(cfg *config.Config, bt *engine.BackTest, log zerolog.Logger) error {
	r, err := report.New(cfg.Report.OutputDirectory, log)
	if err != nil {
		return err
	}
	for _, id := range bt.Master.IDs() {
		pf, err := bt.Master.Portfolio(id)
		if err != nil {
			return err
		}
		if _, err = r.WriteHistory(id, pf.History()); err != nil {
			return err
		}
		if _, err = r.WriteEquityChart(id, pf.History()); err != nil {
			return err
		}
		if _, err = r.WriteDrawdownChart(id, pf.History()); err != nil {
			return err
		}
	}
	if _, err = r.WriteHistory(bt.Master.ID, bt.Master.History()); err != nil {
		return err
	}
	if _, err = r.WriteEquityChart(bt.Master.ID, bt.Master.History()); err != nil {
		return err
	}
	if _, err = r.WriteDrawdownChart(bt.Master.ID, bt.Master.History()); err != nil {
		return err
	}
	if len(bt.Summaries()) > 0 {
		if _, err = r.WriteSummaries(bt.Summaries()); err != nil {
			return err
		}
	}
	return nil
}

// persist saves the run, every portfolio's history and fills, and the
// master aggregate keyed by run id
func persist(cfg *config.Config, bt *engine.BackTest) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = store.InitSchema(db); err != nil {
		return err
	}
	s, err := store.NewStore(db)
	if err != nil {
		return err
	}
	meta := bt.MetaData
	if err = s.SaveRun(meta.ID, meta.Started.Format(time.RFC3339), meta.StartDate, meta.EndDate); err != nil {
		return err
	}
	for _, id := range bt.Master.IDs() {
		pf, err := bt.Master.Portfolio(id)
		if err != nil {
			return err
		}
		if err = s.SaveHistory(meta.ID, id, pf.History()); err != nil {
			return err
		}
		if err = s.SaveTransactions(meta.ID, id, pf.Records()); err != nil {
			return err
		}
	}
	return s.SaveHistory(meta.ID, bt.Master.ID, bt.Master.History())
}
