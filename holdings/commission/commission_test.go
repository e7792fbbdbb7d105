package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFee(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		scheme   string
		quantity float64
		price    float64
		expected float64
	}{
		{
			scheme:   AvanzaMini,
			quantity: 10,
			price:    10,
			expected: 1,
		},
		{
			scheme:   AvanzaMini,
			quantity: 100,
			price:    10,
			expected: 2.5,
		},
		{
			scheme:   AvanzaSmall,
			quantity: 100,
			price:    10,
			expected: 39,
		},
		{
			scheme:   AvanzaSmall,
			quantity: 1000,
			price:    100,
			expected: 150,
		},
		{
			scheme:   AvanzaMedium,
			quantity: 100,
			price:    10,
			expected: 69,
		},
		{
			scheme:   AvanzaMedium,
			quantity: 1000,
			price:    200,
			expected: 138,
		},
		{
			scheme:   AvanzaFast,
			quantity: 1,
			price:    1,
			expected: 99,
		},
		{
			scheme:   None,
			quantity: 1000,
			price:    1000,
			expected: 0,
		},
		{
			scheme:   "unheard of broker",
			quantity: 1000,
			price:    1000,
			expected: 0,
		},
	} {
		tc := tc
		t.Run(tc.scheme, func(t *testing.T) {
			t.Parallel()
			s := New(tc.scheme)
			fee := s.Fee(decimal.NewFromFloat(tc.quantity), decimal.NewFromFloat(tc.price))
			assert.True(t, fee.Equal(decimal.NewFromFloat(tc.expected)),
				"received '%v' expected '%v'", fee, tc.expected)
		})
	}
}

func TestFeeIsNonNegative(t *testing.T) {
	t.Parallel()
	for _, name := range []string{None, AvanzaMini, AvanzaSmall, AvanzaMedium, AvanzaFast} {
		s := New(name)
		fee := s.Fee(decimal.NewFromInt(1), decimal.NewFromFloat(0.01))
		assert.False(t, fee.IsNegative(), "scheme %v produced negative fee %v", name, fee)
	}
}
