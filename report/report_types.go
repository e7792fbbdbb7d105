package report

import (
	"errors"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyOutputDirectory is returned when no destination is set
	ErrEmptyOutputDirectory = errors.New("report output directory not set")
	// ErrNoHistory is returned when a portfolio has no daily rows to write
	ErrNoHistory = errors.New("no history to report")
)

// Report writes run artefacts, daily CSV files and an equity curve
// image per portfolio, into one output directory
type Report struct {
	OutputDirectory string
	log             zerolog.Logger
}
