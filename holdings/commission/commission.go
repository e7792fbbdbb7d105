package commission

import "github.com/shopspring/decimal"

var (
	miniMinimum     = decimal.NewFromInt(1)
	miniRate        = decimal.NewFromFloat(0.0025)
	miniThreshold   = decimal.NewFromInt(400)
	smallMinimum    = decimal.NewFromInt(39)
	smallRate       = decimal.NewFromFloat(0.0015)
	smallThreshold  = decimal.NewFromInt(26000)
	mediumMinimum   = decimal.NewFromInt(69)
	mediumRate      = decimal.NewFromFloat(0.00069)
	mediumThreshold = decimal.NewFromInt(100000)
	fastFlat        = decimal.NewFromInt(99)
)

// New returns a scheme for the given regime name
func New(name string) *Scheme {
	return &Scheme{name: name}
}

// Name returns the regime name the scheme was created with
func (s *Scheme) Name() string {
	return s.name
}

// Fee calculates the commission for a fill. It is a pure function of
// quantity and price; unknown regime names are commission free
func (s *Scheme) Fee(quantity, price decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(price)
	switch s.name {
	case AvanzaMini:
		return tiered(gross, miniThreshold, miniMinimum, miniRate)
	case AvanzaSmall:
		return tiered(gross, smallThreshold, smallMinimum, smallRate)
	case AvanzaMedium:
		return tiered(gross, mediumThreshold, mediumMinimum, mediumRate)
	case AvanzaFast:
		return fastFlat
	default:
		return decimal.Zero
	}
}

func tiered(gross, threshold, minimum, rate decimal.Decimal) decimal.Decimal {
	if gross.LessThan(threshold) {
		return minimum
	}
	return gross.Mul(rate)
}
