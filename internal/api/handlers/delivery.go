package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	service "github.com/alumex/aluminium-shop-platform/internal/services"
	"github.com/alumex/aluminium-shop-platform/internal/utils/response"
)

type DeliveryHandler struct {
	deliveryService service.DeliveryService
}

func NewDeliveryHandler(deliveryService service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Quote godoc
//	@Summary	Quote the delivery cost for an order total
//	@Tags		Delivery
//	@Produce	json
//	@Param		postcode	query		string	false	"Delivery postcode"
//	@Param		total		query		number	true	"Order total after discounts"
//	@Param		method		query		string	false	"Delivery method (standard, express, collection)"
//	@Success	200			{object}	models.DeliveryCostResponse
//	@Router		/delivery/cost [get]
func (h *DeliveryHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		q := r.URL.Query()

		total, err := strconv.ParseFloat(q.Get("total"), 64)
		if err != nil || total < 0 {
			logger.Warn("Invalid delivery quote total", slog.String("total", q.Get("total")))
			response.Error(w, appErrors.ValidationError("total must be a non-negative number"))
			return
		}

		method := models.DeliveryMethod(q.Get("method"))
		if method == "" {
			method = models.DeliveryMethodStandard
		}

		switch method {
		case models.DeliveryMethodStandard, models.DeliveryMethodExpress, models.DeliveryMethodCollection:
		default:
			response.Error(w, appErrors.ValidationError("unknown delivery method"))
			return
		}

		quote := h.deliveryService.Quote(r.Context(), q.Get("postcode"), total, method)

		response.Success(w, http.StatusOK, quote)
	}
}
