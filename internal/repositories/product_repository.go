package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int, visibleOnly bool) ([]*models.Product, int, error)
	// BulkUpdatePrices applies a new pricing basis to every product and
	// refreshes the denormalised price_per_metre column in one statement.
	BulkUpdatePrices(ctx context.Context, pricePerKg, weightPerMetre *float64) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	lengthsJSON, err := json.Marshal(product.StandardLengths)
	if err != nil {
		return fmt.Errorf("failed to marshal standard lengths: %w", err)
	}

	query := `INSERT INTO products (id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Category, product.Name, product.AltName, product.Dimensions, product.WeightPerMetre, product.PricePerKg, product.PricePerMetre, lengthsJSON, product.ImageURL, product.InStock, product.Visible).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible, created_at, updated_at
		FROM products
		WHERE id = $1`

	var lengthsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Category, &product.Name, &product.AltName, &product.Dimensions, &product.WeightPerMetre, &product.PricePerKg, &product.PricePerMetre, &lengthsJSON, &product.ImageURL, &product.InStock, &product.Visible, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if len(lengthsJSON) > 0 {
		if err := json.Unmarshal(lengthsJSON, &product.StandardLengths); err != nil {
			return nil, fmt.Errorf("failed to unmarshal standard lengths: %w", err)
		}
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	lengthsJSON, err := json.Marshal(product.StandardLengths)
	if err != nil {
		return fmt.Errorf("failed to marshal standard lengths: %w", err)
	}

	query := `
		UPDATE products SET category = $1, name = $2, alt_name = $3, dimensions = $4, weight_per_metre = $5, price_per_kg = $6, price_per_metre = $7, standard_lengths = $8, image_url = $9, in_stock = $10, visible = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Category, product.Name, product.AltName, product.Dimensions, product.WeightPerMetre, product.PricePerKg, product.PricePerMetre, lengthsJSON, product.ImageURL, product.InStock, product.Visible, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int, visibleOnly bool) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = false OR visible = true)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, visibleOnly).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	query := `
		SELECT id, category, name, alt_name, dimensions, weight_per_metre, price_per_kg, price_per_metre, standard_lengths, image_url, in_stock, visible, created_at, updated_at
		FROM products
		WHERE ($1 = false OR visible = true)
		ORDER BY category, name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, visibleOnly, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		var lengthsJSON []byte

		err := rows.Scan(&product.ID, &product.Category, &product.Name, &product.AltName, &product.Dimensions, &product.WeightPerMetre, &product.PricePerKg, &product.PricePerMetre, &lengthsJSON, &product.ImageURL, &product.InStock, &product.Visible, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		if len(lengthsJSON) > 0 {
			if err := json.Unmarshal(lengthsJSON, &product.StandardLengths); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal standard lengths: %w", err)
			}
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) BulkUpdatePrices(ctx context.Context, pricePerKg, weightPerMetre *float64) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// COALESCE keeps the current basis for whichever field the caller left
	// unset; price_per_metre is refreshed from the effective basis so stored
	// per-metre prices never go stale after a rate change.
	query := `
		UPDATE products
		SET price_per_kg = COALESCE($1, price_per_kg),
		    weight_per_metre = COALESCE($2, weight_per_metre),
		    price_per_metre = COALESCE($1, price_per_kg) * COALESCE($2, weight_per_metre),
		    updated_at = NOW()
		WHERE COALESCE($1, price_per_kg) IS NOT NULL
	`

	result, err := r.DB.ExecContext(dbCtx, query, pricePerKg, weightPerMetre)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update prices: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return int(updatedRows), nil
}
