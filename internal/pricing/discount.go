package pricing

// WholesaleThresholdKg is the cart weight at which an order becomes a
// wholesale order and the weight-tiered discount starts to apply.
const WholesaleThresholdKg = 100.0

// tier is one closed-open step of a discount table: the rate applies from
// From (inclusive) up to the next tier's From (exclusive).
type tier struct {
	From float64
	Rate float64
}

// lengthTiers keys the per-line discount on total ordered length in metres
// (length × quantity). Tiers are contiguous from zero, so the lookup is
// total over all non-negative lengths.
var lengthTiers = []tier{
	{From: 0, Rate: 0},
	{From: 50, Rate: 0.03},
	{From: 100, Rate: 0.05},
	{From: 250, Rate: 0.07},
	{From: 500, Rate: 0.10},
}

// wholesaleTiers keys the cart-level discount on cumulative order weight in
// kilograms.
var wholesaleTiers = []tier{
	{From: 0, Rate: 0},
	{From: 100, Rate: 0.05},
	{From: 500, Rate: 0.10},
	{From: 1000, Rate: 0.15},
	{From: 5000, Rate: 0.20},
}

func lookup(tiers []tier, key float64) float64 {
	rate := 0.0

	for _, t := range tiers {
		if key >= t.From {
			rate = t.Rate
		} else {
			break
		}
	}

	return rate
}

// LengthDiscount returns the discount rate for a line item's total ordered
// length. Boundary values belong to the higher tier.
func LengthDiscount(totalLength float64) float64 {
	return lookup(lengthTiers, totalLength)
}

// WholesaleDiscount returns the weight-tiered discount rate for a cart's
// total weight. Boundary values belong to the higher tier.
func WholesaleDiscount(totalWeight float64) float64 {
	return lookup(wholesaleTiers, totalWeight)
}

// IsWholesale reports whether an order of the given total weight qualifies
// for wholesale pricing.
func IsWholesale(totalWeight float64) bool {
	return totalWeight >= WholesaleThresholdKg
}
