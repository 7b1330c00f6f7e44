// Package pricing holds the order-pricing engine: the per-metre price
// derivation, the two tiered discount tables, the line-item calculator, the
// cart aggregator and the delivery cost resolver. Everything here is a pure
// function; the functions are total over finite non-negative input and never
// return errors. Input clamping (length bounds, minimum quantity) is the
// API layer's job, not ours.
package pricing

import "github.com/alumex/aluminium-shop-platform/internal/models"

// EffectivePricePerMetre resolves a product's price per linear metre.
// When both the per-kg rate and the linear weight are known, their product is
// authoritative over any stored per-metre price: updating one global per-kg
// rate then moves every product's per-metre price automatically. The second
// return is false when no basis exists at all, in which case callers fall
// back to charging per-kg against total weight.
func EffectivePricePerMetre(p *models.Product) (float64, bool) {
	if p.PricePerKg != nil && p.WeightPerMetre > 0 {
		return *p.PricePerKg * p.WeightPerMetre, true
	}

	if p.PricePerMetre != nil {
		return *p.PricePerMetre, true
	}

	return 0, false
}
