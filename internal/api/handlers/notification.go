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

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, validator: validator.New()}
}

// CreateLead godoc
//	@Summary		Capture a sales enquiry
//	@Description	Stores the lead and forwards it to the CRM and sales chat in the background.
//	@Tags			Leads
//	@Accept			json
//	@Produce		json
//	@Param			lead	body		models.CreateLeadRequest	true	"Lead details"
//	@Success		201		{object}	models.Lead
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/leads [post]
func (h *NotificationHandler) CreateLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateLeadRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid lead input")
			return
		}

		lead, err := h.notificationService.CreateLead(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create lead", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Lead captured", slog.String("leadId", lead.ID.String()))
		response.Success(w, http.StatusCreated, lead)
	}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if page < 1 {
			page = 1
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: len(notifications),
		})
	}
}
