package service

import (
	"context"

	"github.com/alumex/aluminium-shop-platform/internal/config"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/pricing"
)

type DeliveryService interface {
	Quote(ctx context.Context, postcode string, orderTotal float64, method models.DeliveryMethod) *models.DeliveryCostResponse
}

type deliveryService struct {
	cfg *config.Delivery
}

func NewDeliveryService(cfg *config.Delivery) DeliveryService {
	return &deliveryService{cfg: cfg}
}

func (s *deliveryService) Quote(_ context.Context, postcode string, orderTotal float64, method models.DeliveryMethod) *models.DeliveryCostResponse {

	cost, isFree := pricing.DeliveryCost(postcode, orderTotal, method, s.cfg)

	return &models.DeliveryCostResponse{
		Cost:           cost,
		IsFreeDelivery: isFree,
	}
}
