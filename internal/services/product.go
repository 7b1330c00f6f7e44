package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/pricing"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int, visibleOnly bool) ([]*models.Product, int, error)
	BulkUpdatePrices(ctx context.Context, req *models.BulkPriceUpdateRequest) (int, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:              uuid.New(),
		Category:        req.Category,
		Name:            req.Name,
		AltName:         req.AltName,
		Dimensions:      req.Dimensions,
		WeightPerMetre:  req.WeightPerMetre,
		PricePerKg:      req.PricePerKg,
		PricePerMetre:   req.PricePerMetre,
		StandardLengths: req.StandardLengths,
		ImageURL:        req.ImageURL,
		InStock:         req.InStock,
		Visible:         req.Visible,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	// Every product must be priceable one way or the other.
	if _, ok := pricing.EffectivePricePerMetre(product); !ok {
		return nil, appErrors.ValidationError("Product needs a price per kg or a price per metre")
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.AltName != nil {
		product.AltName = *req.AltName
	}

	if req.Dimensions != nil {
		product.Dimensions = *req.Dimensions
	}

	if req.WeightPerMetre != nil {
		product.WeightPerMetre = *req.WeightPerMetre
	}

	if req.PricePerKg != nil {
		product.PricePerKg = req.PricePerKg
	}

	if req.PricePerMetre != nil {
		product.PricePerMetre = req.PricePerMetre
	}

	if req.StandardLengths != nil {
		product.StandardLengths = *req.StandardLengths
	}

	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if req.Visible != nil {
		product.Visible = *req.Visible
	}

	if _, ok := pricing.EffectivePricePerMetre(product); !ok {
		return nil, appErrors.ValidationError("Product needs a price per kg or a price per metre")
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, size int, visibleOnly bool) ([]*models.Product, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	products, total, err := s.repo.ListProducts(ctx, page, size, visibleOnly)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) BulkUpdatePrices(ctx context.Context, req *models.BulkPriceUpdateRequest) (int, error) {

	if req.PricePerKg == nil && req.WeightPerMetre == nil {
		return 0, appErrors.ValidationError("At least one of price_per_kg or weight_per_metre is required")
	}

	updated, err := s.repo.BulkUpdatePrices(ctx, req.PricePerKg, req.WeightPerMetre)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to update catalog prices").WithError(err)
	}

	return updated, nil
}
