package pricing

import "github.com/alumex/aluminium-shop-platform/internal/models"

// Aggregate folds priced line items into the cart-level summary. Wholesale
// discounting happens here and only here: line items carry length-discounted
// material cost in CalculatedPrice, and the weight-tiered rate is applied
// once across the subtotal. The cart store and the server-side order
// recomputation both go through this function, so the total a customer sees
// in the cart is the total that gets persisted.
func Aggregate(items []models.CartItem) models.CartSummary {
	var subtotal, totalWeight float64

	for _, item := range items {
		subtotal += item.CalculatedPrice
		totalWeight += item.CalculatedWeight
	}

	wholesale := IsWholesale(totalWeight)

	rate := 0.0
	if wholesale {
		rate = WholesaleDiscount(totalWeight)
	}

	discountAmount := subtotal * rate

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return models.CartSummary{
		Subtotal:       subtotal,
		TotalWeight:    totalWeight,
		Discount:       rate,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
		ItemCount:      count,
		IsWholesale:    wholesale,
	}
}
