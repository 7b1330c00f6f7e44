package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	"github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	service "github.com/alumex/aluminium-shop-platform/internal/services"
	"github.com/alumex/aluminium-shop-platform/internal/utils"
	"github.com/alumex/aluminium-shop-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// SessionHeader identifies the anonymous cart session. The storefront
// generates a UUID on first visit and sends it with every cart call.
const SessionHeader = "X-Cart-Session"

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		response.Error(w, errors.BadRequestError("Cart session header is required"))
		return "", false
	}

	return id, true
}

// GetCart godoc
//	@Summary	Get the session cart with its aggregated summary
//	@Tags		Cart
//	@Produce	json
//	@Param		X-Cart-Session	header		string	true	"Cart session id"
//	@Success	200				{object}	models.CartResponse
//	@Router		/carts [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), session)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		summary, err := h.cartService.Summary(r.Context(), session)
		if err != nil {
			logger.Error("Failed to summarise cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.CartResponse{Cart: cart, Summary: summary})
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), session, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.UpdateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update item input")
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), session, &req)
		if err != nil {
			logger.Error("Failed to update cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		itemID := r.PathValue("id")
		if itemID == "" {
			response.Error(w, errors.BadRequestError("Item ID is required"))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), session, itemID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), session); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
