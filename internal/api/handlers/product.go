package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	service "github.com/alumex/aluminium-shop-platform/internal/services"
	"github.com/alumex/aluminium-shop-platform/internal/utils"
	"github.com/alumex/aluminium-shop-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a catalog product
//	@Description	Adds a new aluminium profile to the catalog. Admin only.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or missing price basis"
//	@Security		BearerAuth
//	@Router			/admin/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts serves both the public catalog and the admin listing. The
// public route is registered with visibleOnly=true, the authenticated admin
// route sees hidden products too.
func (h *ProductHandler) ListProducts(visibleOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		products, total, err := h.productService.ListProducts(r.Context(), page, size, visibleOnly)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if page < 1 {
			page = 1
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: len(products),
		})
	}
}

// BulkUpdatePrices godoc
//	@Summary		Update the pricing basis of the whole catalog
//	@Description	Applies a new price-per-kg and/or weight-per-metre to every product and refreshes the stored per-metre prices. Admin only.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			update	body		models.BulkPriceUpdateRequest	true	"New pricing basis"
//	@Success		200		{object}	models.BulkPriceUpdateResponse
//	@Failure		400		{object}	response.ErrorResponse	"Neither field present"
//	@Security		BearerAuth
//	@Router			/admin/products/prices [post]
func (h *ProductHandler) BulkUpdatePrices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.BulkPriceUpdateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid bulk price update input")
			return
		}

		updated, err := h.productService.BulkUpdatePrices(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to bulk update prices", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Catalog prices updated", slog.Int("updated", updated))
		response.Success(w, http.StatusOK, models.BulkPriceUpdateResponse{UpdatedCount: updated})
	}
}
