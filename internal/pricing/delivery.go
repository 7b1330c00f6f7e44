package pricing

import (
	"github.com/alumex/aluminium-shop-platform/internal/config"
	"github.com/alumex/aluminium-shop-platform/internal/models"
)

// DeliveryCost resolves the delivery fee for an order. Collection is always
// free; orders at or above the configured free-delivery threshold ship free;
// otherwise a flat per-method rate applies, with unrecognised methods billed
// at the standard rate. The postcode is accepted for future zonal pricing
// but does not change the fee today.
func DeliveryCost(postcode string, orderTotal float64, method models.DeliveryMethod, cfg *config.Delivery) (cost float64, isFree bool) {
	_ = postcode

	if method == models.DeliveryMethodCollection {
		return 0, true
	}

	if orderTotal >= cfg.FreeDeliveryThreshold {
		return 0, true
	}

	switch method {
	case models.DeliveryMethodExpress:
		return cfg.ExpressRate, false
	default:
		return cfg.StandardRate, false
	}
}
