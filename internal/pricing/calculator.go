package pricing

import "github.com/alumex/aluminium-shop-platform/internal/models"

// Quote is the full breakdown for one line item. Discount is the wholesale
// rate that was applied (zero unless the caller passed isWholesale=true);
// LengthDiscount is always the per-line length tier rate.
type Quote struct {
	TotalLength          float64 `json:"total_length"`
	TotalWeight          float64 `json:"total_weight"`
	MaterialCost         float64 `json:"material_cost"`
	LengthDiscount       float64 `json:"length_discount"`
	LengthDiscountAmount float64 `json:"length_discount_amount"`
	Discount             float64 `json:"discount"`
	DiscountAmount       float64 `json:"discount_amount"`
	FinalPrice           float64 `json:"final_price"`
}

// Calculate prices one line item. The caller decides wholesale status once
// (from the cart's total weight) and passes it in rather than having every
// call re-derive it.
//
// Weight is never discounted: TotalWeight is exactly weightPerMetre × length
// × quantity. When no per-metre price basis exists the material cost falls
// back to total weight × per-kg rate, and a missing per-kg rate prices the
// line at zero rather than erroring; catalog validation upstream is what
// keeps that case out of production data.
func Calculate(p *models.Product, length float64, quantity int, isWholesale bool) Quote {
	totalLength := length * float64(quantity)
	totalWeight := p.WeightPerMetre * totalLength

	var materialCost float64

	if perMetre, ok := EffectivePricePerMetre(p); ok {
		materialCost = totalLength * perMetre
	} else {
		perKg := 0.0
		if p.PricePerKg != nil {
			perKg = *p.PricePerKg
		}

		materialCost = totalWeight * perKg
	}

	lengthRate := LengthDiscount(totalLength)
	lengthAmount := materialCost * lengthRate
	afterLength := materialCost - lengthAmount

	wholesaleRate := 0.0
	if isWholesale {
		wholesaleRate = WholesaleDiscount(totalWeight)
	}

	wholesaleAmount := afterLength * wholesaleRate

	return Quote{
		TotalLength:          totalLength,
		TotalWeight:          totalWeight,
		MaterialCost:         materialCost,
		LengthDiscount:       lengthRate,
		LengthDiscountAmount: lengthAmount,
		Discount:             wholesaleRate,
		DiscountAmount:       wholesaleAmount,
		FinalPrice:           afterLength - wholesaleAmount,
	}
}
