package commission

// Named commission regimes. The avanza schemes replicate the published
// Avanza.se brokerage tiers; anything unrecognised is commission free.
const (
	None         = ""
	AvanzaMini   = "avanza_mini"
	AvanzaSmall  = "avanza_small"
	AvanzaMedium = "avanza_medium"
	AvanzaFast   = "avanza_fast"
)

// Scheme calculates the fee for a fill under a named commission regime
type Scheme struct {
	name string
}
