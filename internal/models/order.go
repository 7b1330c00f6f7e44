package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
)

type DeliveryMethod string

const (
	DeliveryMethodStandard   DeliveryMethod = "standard"
	DeliveryMethodExpress    DeliveryMethod = "express"
	DeliveryMethodCollection DeliveryMethod = "collection"
)

type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Company string `json:"company,omitempty"`
}

type DeliveryInfo struct {
	Method   DeliveryMethod `json:"method" validate:"required,oneof=standard express collection"`
	Postcode string         `json:"postcode" validate:"required"`
	Address  string         `json:"address,omitempty"`
	City     string         `json:"city,omitempty"`
}

// Order is the snapshot taken at submission time. Totals are recomputed
// server-side from the cart contents before the row is written; after that
// the record is immutable except for Status.
type Order struct {
	ID           uuid.UUID    `json:"id"`
	Number       string       `json:"number"`
	Customer     Customer     `json:"customer"`
	Delivery     DeliveryInfo `json:"delivery"`
	Items        []CartItem   `json:"items"`
	Subtotal     float64      `json:"subtotal"`
	Discount     float64      `json:"discount"`
	DeliveryCost float64      `json:"delivery_cost"`
	Total        float64      `json:"total"`
	TotalWeight  float64      `json:"total_weight"`
	IsWholesale  bool         `json:"is_wholesale"`
	Status       OrderStatus  `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateOrderRequest carries the session whose cart is being checked out.
// ClientTotal is what the customer's screen showed; it is a display hint
// only and is cross-checked against the server-recomputed total.
type CreateOrderRequest struct {
	SessionID   string       `json:"session_id" validate:"required"`
	Customer    Customer     `json:"customer" validate:"required"`
	Delivery    DeliveryInfo `json:"delivery" validate:"required"`
	ClientTotal float64      `json:"client_total" validate:"gte=0"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=new processing shipped completed"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type DeliveryCostResponse struct {
	Cost           float64 `json:"cost"`
	IsFreeDelivery bool    `json:"is_free_delivery"`
}
