package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog entry: an aluminium profile sold by the metre.
// Pricing has two bases. When both PricePerKg and WeightPerMetre are set,
// price-per-kg × weight-per-metre is authoritative and the stored
// PricePerMetre is just a denormalised copy, so a single bulk update of the
// per-kg rate moves the whole catalog.
type Product struct {
	ID              uuid.UUID `json:"id"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	AltName         string    `json:"alt_name,omitempty"`
	Dimensions      string    `json:"dimensions"`
	WeightPerMetre  float64   `json:"weight_per_metre"`
	PricePerKg      *float64  `json:"price_per_kg,omitempty"`
	PricePerMetre   *float64  `json:"price_per_metre,omitempty"`
	StandardLengths []float64 `json:"standard_lengths,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	InStock         bool      `json:"in_stock"`
	Visible         bool      `json:"visible"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Category        string    `json:"category" validate:"required"`
	Name            string    `json:"name" validate:"required,min=3,max=200"`
	AltName         string    `json:"alt_name,omitempty"`
	Dimensions      string    `json:"dimensions" validate:"required"`
	WeightPerMetre  float64   `json:"weight_per_metre" validate:"required,gt=0"`
	PricePerKg      *float64  `json:"price_per_kg,omitempty" validate:"omitempty,gt=0"`
	PricePerMetre   *float64  `json:"price_per_metre,omitempty" validate:"omitempty,gt=0"`
	StandardLengths []float64 `json:"standard_lengths,omitempty" validate:"omitempty,dive,gt=0"`
	ImageURL        string    `json:"image_url,omitempty" validate:"omitempty,url"`
	InStock         bool      `json:"in_stock"`
	Visible         bool      `json:"visible"`
}

type UpdateProductRequest struct {
	Category        *string    `json:"category,omitempty"`
	Name            *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	AltName         *string    `json:"alt_name,omitempty"`
	Dimensions      *string    `json:"dimensions,omitempty"`
	WeightPerMetre  *float64   `json:"weight_per_metre,omitempty" validate:"omitempty,gt=0"`
	PricePerKg      *float64   `json:"price_per_kg,omitempty" validate:"omitempty,gt=0"`
	PricePerMetre   *float64   `json:"price_per_metre,omitempty" validate:"omitempty,gt=0"`
	StandardLengths *[]float64 `json:"standard_lengths,omitempty" validate:"omitempty,dive,gt=0"`
	ImageURL        *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	InStock         *bool      `json:"in_stock,omitempty"`
	Visible         *bool      `json:"visible,omitempty"`
}

// BulkPriceUpdateRequest applies a new pricing basis to every product in the
// catalog at once. At least one field must be present.
type BulkPriceUpdateRequest struct {
	PricePerKg     *float64 `json:"price_per_kg,omitempty" validate:"omitempty,gt=0"`
	WeightPerMetre *float64 `json:"weight_per_metre,omitempty" validate:"omitempty,gt=0"`
}

type BulkPriceUpdateResponse struct {
	UpdatedCount int `json:"updated_count"`
}
