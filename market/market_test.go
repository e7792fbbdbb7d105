package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfell/backtester/common"
)

var (
	testDates = []string{
		"2023-01-27", // friday
		"2023-01-30",
		"2023-01-31",
		"2023-02-01",
		"2023-02-02",
		"2023-02-03", // friday
		"2023-02-06",
	}
	testCloses = map[string][]decimal.Decimal{
		"ERIC-B.ST": series(60, 61, 62, 63, 64, 65, 66),
		"^OMX":      series(2200, 2210, 2220, 2230, 2240, 2250, 2260),
	}
)

func series(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i := range values {
		out[i] = decimal.NewFromFloat(values[i])
	}
	return out
}

func testMarket(t *testing.T) *Market {
	t.Helper()
	m, err := New(testDates, testCloses)
	require.NoError(t, err)
	return m
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	_, err := New(nil, testCloses)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = New([]string{"2023-01-30", "2023-01-27"}, map[string][]decimal.Decimal{"X": series(1, 2)})
	assert.ErrorIs(t, err, ErrUnorderedDates)

	_, err = New([]string{"2023-01-27"}, map[string][]decimal.Decimal{"X": series(1, 2)})
	assert.ErrorIs(t, err, errLengthMismatch)

	_, err = New([]string{"garbage"}, map[string][]decimal.Decimal{"X": series(1)})
	assert.ErrorIs(t, err, common.ErrInvalidDateFormat)
}

func TestPeriodBoundaryFlags(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	rows := m.rows

	assert.True(t, rows[0].Flags.EndOfWeek, "friday before a new week must flag end of week")
	assert.False(t, rows[0].Flags.StartOfWeek, "first calendar row never starts a period")
	assert.True(t, rows[1].Flags.StartOfWeek)
	assert.True(t, rows[2].Flags.EndOfMonth, "last business day of january")
	assert.True(t, rows[3].Flags.StartOfMonth)
	assert.True(t, rows[5].Flags.EndOfWeek)
	assert.True(t, rows[6].Flags.StartOfWeek)
	assert.False(t, rows[6].Flags.EndOfWeek, "last calendar row never ends a period")
}

func TestPriceAt(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	price, err := m.PriceAt("ERIC-B.ST", "2023-01-31")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(62)))

	_, err = m.PriceAt("ERIC-B.ST", "2023-01-28")
	assert.ErrorIs(t, err, common.ErrDateNotFound)

	_, err = m.PriceAt("NOPE", "2023-01-31")
	assert.ErrorIs(t, err, common.ErrSymbolNotFound)
}

func TestNextDate(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	next, ok := m.NextDate("2023-01-27")
	assert.True(t, ok)
	assert.Equal(t, "2023-01-30", next)

	_, ok = m.NextDate("2023-02-06")
	assert.False(t, ok, "last calendar row has no successor")

	_, ok = m.NextDate("1999-01-01")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	t.Parallel()
	m := testMarket(t)
	s, err := m.Select([]string{"ERIC-B.ST"}, "2023-01-30", "2023-02-02")
	require.NoError(t, err)
	require.Len(t, s.Rows(), 4)
	latest := s.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, "2023-02-02", latest.Date)
	assert.True(t, latest.Prices["ERIC-B.ST"].Equal(decimal.NewFromInt(64)))
	_, ok := latest.Prices["^OMX"]
	assert.False(t, ok, "unrequested symbols are not part of the slice")

	assert.Equal(t, []float64{61, 62, 63, 64}, s.Closes("ERIC-B.ST"))

	_, err = m.Select([]string{"ERIC-B.ST"}, "2023-01-28", "2023-02-02")
	assert.ErrorIs(t, err, common.ErrDateNotFound)
	_, err = m.Select([]string{"NOPE"}, "2023-01-30", "2023-02-02")
	assert.ErrorIs(t, err, common.ErrSymbolNotFound)
}

func TestNewFromCSVDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	eric := "Date,Open,High,Low,Close,Adj Close,Volume\n" +
		"2023-01-02,59,61,58,60,60,1000\n" +
		"2023-01-03,60,62,59,61,61,1100\n" +
		"2023-01-04,61,63,60,62,62,1200\n"
	omx := "Date,Open,High,Low,Close,Adj Close,Volume\n" +
		"2023-01-02,2190,2210,2180,2200,2200,0\n" +
		"2023-01-03,2200,2220,2190,2210,2210,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ERIC-B.ST.csv"), []byte(eric), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "OMX.csv"), []byte(omx), 0o644))

	m, err := NewFromCSVDir(dir, zerolog.Nop())
	require.NoError(t, err)
	// inner join drops 2023-01-04, present in one file only
	assert.Equal(t, []string{"2023-01-02", "2023-01-03"}, m.Calendar())
	assert.Equal(t, []string{"ERIC-B.ST", "OMX"}, m.Symbols())

	price, err := m.PriceAt("OMX", "2023-01-03")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(2210)))
}

func TestNewFromCSVDirEmpty(t *testing.T) {
	t.Parallel()
	_, err := NewFromCSVDir(t.TempDir(), zerolog.Nop())
	assert.ErrorIs(t, err, errNoCSVFiles)
}
