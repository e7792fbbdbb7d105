package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateDate("2023-01-02"))
	assert.ErrorIs(t, ValidateDate("02-01-2023"), ErrInvalidDateFormat)
	assert.ErrorIs(t, ValidateDate("2023-1-2"), ErrInvalidDateFormat)
	assert.ErrorIs(t, ValidateDate(""), ErrInvalidDateFormat)
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	d, err := ParseDate("2023-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2023-13-40")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
