package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a session cart. The product is embedded by value:
// the cart keeps the snapshot the customer saw, not a live reference.
// CalculatedPrice and CalculatedWeight are derived fields and are only ever
// written by the pricing calculator; CalculatedPrice carries the length
// discount but never the wholesale discount, which is applied once at
// aggregation time.
type CartItem struct {
	ID               string  `json:"id"`
	Product          Product `json:"product"`
	Length           float64 `json:"length"`
	Quantity         int     `json:"quantity"`
	FreeCutting      bool    `json:"free_cutting"`
	ProcessingNote   string  `json:"processing_note,omitempty"`
	CalculatedPrice  float64 `json:"calculated_price"`
	CalculatedWeight float64 `json:"calculated_weight"`
}

// Cart is an ordered collection of line items owned by one client session.
// It lives in the session store only; nothing is written to the relational
// database until the order is submitted.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartSummary is the aggregated view of a cart: subtotal of line prices,
// total weight, and the cart-level wholesale discount applied once across
// the subtotal.
type CartSummary struct {
	Subtotal       float64 `json:"subtotal"`
	TotalWeight    float64 `json:"total_weight"`
	Discount       float64 `json:"discount"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
	ItemCount      int     `json:"item_count"`
	IsWholesale    bool    `json:"is_wholesale"`
}

type AddItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" validate:"required"`
	Length         float64   `json:"length" validate:"required,gte=0.1,lte=25"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	FreeCutting    bool      `json:"free_cutting"`
	ProcessingNote string    `json:"processing_note,omitempty" validate:"omitempty,max=500"`
}

type UpdateItemRequest struct {
	ItemID         string   `json:"item_id" validate:"required"`
	Length         *float64 `json:"length,omitempty" validate:"omitempty,gte=0.1,lte=25"`
	Quantity       *int     `json:"quantity,omitempty" validate:"omitempty,min=1"`
	FreeCutting    *bool    `json:"free_cutting,omitempty"`
	ProcessingNote *string  `json:"processing_note,omitempty" validate:"omitempty,max=500"`
}

type RemoveItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type CartResponse struct {
	Cart    *Cart        `json:"cart"`
	Summary *CartSummary `json:"summary"`
}
