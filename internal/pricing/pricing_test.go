package pricing_test

import (
	"testing"

	"github.com/alumex/aluminium-shop-platform/internal/config"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/pricing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func testProduct() *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		Category:       "angle",
		Name:           "Equal Angle 20x20x2",
		Dimensions:     "20x20x2",
		WeightPerMetre: 0.41,
		PricePerKg:     floatPtr(4.20),
		InStock:        true,
		Visible:        true,
	}
}

func TestEffectivePricePerMetre(t *testing.T) {
	t.Run("PerKg basis takes precedence over stored per-metre price", func(t *testing.T) {
		p := testProduct()
		p.PricePerMetre = floatPtr(99.0) // stale denormalised copy

		perMetre, ok := pricing.EffectivePricePerMetre(p)

		require.True(t, ok)
		assert.InDelta(t, 4.20*0.41, perMetre, 1e-9)
	})

	t.Run("Falls back to stored per-metre price", func(t *testing.T) {
		p := testProduct()
		p.PricePerKg = nil
		p.PricePerMetre = floatPtr(2.50)

		perMetre, ok := pricing.EffectivePricePerMetre(p)

		require.True(t, ok)
		assert.Equal(t, 2.50, perMetre)
	})

	t.Run("No price basis", func(t *testing.T) {
		p := testProduct()
		p.PricePerKg = nil
		p.PricePerMetre = nil

		perMetre, ok := pricing.EffectivePricePerMetre(p)

		assert.False(t, ok)
		assert.Zero(t, perMetre)
	})
}

func TestDiscountTables(t *testing.T) {
	t.Run("Length table is total and monotone", func(t *testing.T) {
		prev := 0.0
		for _, length := range []float64{0, 0.1, 1, 49.99, 50, 99.99, 100, 249.99, 250, 499.99, 500, 10000} {
			rate := pricing.LengthDiscount(length)
			assert.GreaterOrEqual(t, rate, prev, "rate must not decrease at length %v", length)
			assert.GreaterOrEqual(t, rate, 0.0)
			assert.Less(t, rate, 1.0)
			prev = rate
		}
	})

	t.Run("Wholesale table matches the weight bands", func(t *testing.T) {
		cases := []struct {
			weight float64
			rate   float64
		}{
			{0, 0},
			{99.99, 0},
			{100, 0.05}, // boundary belongs to the higher tier
			{499.99, 0.05},
			{500, 0.10},
			{999.99, 0.10},
			{1000, 0.15},
			{4999.99, 0.15},
			{5000, 0.20},
			{1e7, 0.20},
		}

		for _, tc := range cases {
			assert.Equal(t, tc.rate, pricing.WholesaleDiscount(tc.weight), "weight %v", tc.weight)
		}
	})

	t.Run("Length tier boundary belongs to the higher tier", func(t *testing.T) {
		assert.Greater(t, pricing.LengthDiscount(50), pricing.LengthDiscount(49.999))
		assert.Equal(t, pricing.LengthDiscount(50), pricing.LengthDiscount(50.001))
	})

	t.Run("Wholesale flag flips exactly at the threshold", func(t *testing.T) {
		assert.False(t, pricing.IsWholesale(99.999))
		assert.True(t, pricing.IsWholesale(pricing.WholesaleThresholdKg))
		assert.True(t, pricing.IsWholesale(100.001))
	})
}

func TestCalculate(t *testing.T) {
	t.Run("Scenario - per-kg priced angle at 3m x2", func(t *testing.T) {
		// pricePerKg=4.20, weightPerMetre=0.41 -> 1.722/m
		p := testProduct()

		quote := pricing.Calculate(p, 3, 2, false)

		assert.InDelta(t, 6.0, quote.TotalLength, 1e-9)
		assert.InDelta(t, 2.46, quote.TotalWeight, 1e-9)
		assert.InDelta(t, 10.332, quote.MaterialCost, 1e-9)
		assert.Zero(t, quote.LengthDiscount) // below the first discount tier
		assert.Zero(t, quote.Discount)
		assert.InDelta(t, 10.332, quote.FinalPrice, 1e-9)
	})

	t.Run("Weight is never discounted", func(t *testing.T) {
		p := testProduct()

		for _, length := range []float64{0.1, 1, 6.5, 25} {
			for _, qty := range []int{1, 2, 40, 500} {
				quote := pricing.Calculate(p, length, qty, true)
				assert.InDelta(t, p.WeightPerMetre*length*float64(qty), quote.TotalWeight, 1e-9)
			}
		}
	})

	t.Run("Length discount applies past the tier boundary", func(t *testing.T) {
		p := testProduct()

		// 6m x 10 = 60m total -> 3% tier
		quote := pricing.Calculate(p, 6, 10, false)

		require.Equal(t, 0.03, quote.LengthDiscount)
		assert.InDelta(t, quote.MaterialCost*0.03, quote.LengthDiscountAmount, 1e-9)
		assert.InDelta(t, quote.MaterialCost-quote.LengthDiscountAmount, quote.FinalPrice, 1e-9)
	})

	t.Run("Wholesale rate only applies when the flag is set", func(t *testing.T) {
		p := testProduct()
		p.WeightPerMetre = 2.0 // 6m x 10 = 120kg, over the threshold

		retail := pricing.Calculate(p, 6, 10, false)
		wholesale := pricing.Calculate(p, 6, 10, true)

		assert.Zero(t, retail.Discount)
		assert.Equal(t, 0.05, wholesale.Discount)
		assert.Less(t, wholesale.FinalPrice, retail.FinalPrice)
	})

	t.Run("Price ordering invariant", func(t *testing.T) {
		p := testProduct()
		p.WeightPerMetre = 3.1

		for _, length := range []float64{0.1, 2, 10, 25} {
			for _, qty := range []int{1, 7, 100} {
				quote := pricing.Calculate(p, length, qty, true)
				afterLength := quote.MaterialCost - quote.LengthDiscountAmount
				assert.LessOrEqual(t, quote.FinalPrice, afterLength+1e-9)
				assert.LessOrEqual(t, afterLength, quote.MaterialCost+1e-9)
			}
		}
	})

	t.Run("No price basis falls back to per-kg against weight", func(t *testing.T) {
		p := testProduct()
		p.PricePerMetre = nil
		p.PricePerKg = nil

		// With no basis at all the line silently prices at zero.
		quote := pricing.Calculate(p, 5, 4, false)

		assert.Zero(t, quote.MaterialCost)
		assert.Zero(t, quote.FinalPrice)
		assert.InDelta(t, 0.41*20, quote.TotalWeight, 1e-9)
	})

	t.Run("Idempotent for identical input", func(t *testing.T) {
		p := testProduct()

		first := pricing.Calculate(p, 4.5, 3, true)
		second := pricing.Calculate(p, 4.5, 3, true)

		assert.Equal(t, first, second)
	})
}

func TestAggregate(t *testing.T) {
	item := func(price, weight float64, qty int) models.CartItem {
		return models.CartItem{
			ID:               uuid.NewString(),
			Quantity:         qty,
			CalculatedPrice:  price,
			CalculatedWeight: weight,
		}
	}

	t.Run("Empty cart aggregates to zero", func(t *testing.T) {
		summary := pricing.Aggregate(nil)

		assert.Zero(t, summary.Subtotal)
		assert.Zero(t, summary.Total)
		assert.Zero(t, summary.ItemCount)
		assert.False(t, summary.IsWholesale)
	})

	t.Run("Retail cart gets no cart-level discount", func(t *testing.T) {
		summary := pricing.Aggregate([]models.CartItem{
			item(100, 40, 2),
			item(50, 30, 1),
		})

		assert.InDelta(t, 150, summary.Subtotal, 1e-9)
		assert.InDelta(t, 70, summary.TotalWeight, 1e-9)
		assert.Zero(t, summary.Discount)
		assert.InDelta(t, 150, summary.Total, 1e-9)
		assert.Equal(t, 3, summary.ItemCount)
		assert.False(t, summary.IsWholesale)
	})

	t.Run("Crossing 100kg applies the wholesale tier once", func(t *testing.T) {
		// 60kg + 50kg = 110kg -> [100,500) tier, 5% across the subtotal
		summary := pricing.Aggregate([]models.CartItem{
			item(200, 60, 1),
			item(180, 50, 1),
		})

		require.True(t, summary.IsWholesale)
		assert.Equal(t, 0.05, summary.Discount)
		assert.InDelta(t, 380*0.05, summary.DiscountAmount, 1e-9)
		assert.InDelta(t, 380*0.95, summary.Total, 1e-9)
	})
}

func TestDeliveryCost(t *testing.T) {
	cfg := &config.Delivery{
		FreeDeliveryThreshold: 77,
		StandardRate:          9.95,
		ExpressRate:           19.95,
	}

	t.Run("Collection is always free", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 5, models.DeliveryMethodCollection, cfg)

		assert.Zero(t, cost)
		assert.True(t, free)
	})

	t.Run("Order over the threshold ships free", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 80, models.DeliveryMethodStandard, cfg)

		assert.Zero(t, cost)
		assert.True(t, free)
	})

	t.Run("Threshold is inclusive", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 77, models.DeliveryMethodStandard, cfg)

		assert.Zero(t, cost)
		assert.True(t, free)
	})

	t.Run("Standard rate below the threshold", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 76.99, models.DeliveryMethodStandard, cfg)

		assert.Equal(t, 9.95, cost)
		assert.False(t, free)
	})

	t.Run("Express rate below the threshold", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 20, models.DeliveryMethodExpress, cfg)

		assert.Equal(t, 19.95, cost)
		assert.False(t, free)
	})

	t.Run("Unknown method falls back to the standard rate", func(t *testing.T) {
		cost, free := pricing.DeliveryCost("LS1 4DY", 20, models.DeliveryMethod("carrier-pigeon"), cfg)

		assert.Equal(t, 9.95, cost)
		assert.False(t, free)
	})
}
