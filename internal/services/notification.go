package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	"github.com/alumex/aluminium-shop-platform/internal/utils"
	"github.com/alumex/aluminium-shop-platform/pkg/crm"
	"github.com/alumex/aluminium-shop-platform/pkg/sendgrid"
	"github.com/google/uuid"
)

// NotificationService records enquiries and pushes best-effort alerts to the
// CRM, the sales chat and the sales inbox. Every outbound attempt is logged
// as a notification row first; delivery failures flip that row to failed and
// are otherwise swallowed. Nothing here ever fails the request that
// triggered it: the lead or order is already durably recorded by then.
type NotificationService interface {
	CreateLead(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error)
	NotifyOrderPlaced(ctx context.Context, order *models.Order)
	ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	crmClient    crm.Client
	emailService sendgrid.EmailService
	salesEmail   string
}

func NewNotificationService(repo repository.NotificationRepository, crmClient crm.Client, emailService sendgrid.EmailService, salesEmail string) NotificationService {
	return &notificationService{repo: repo, crmClient: crmClient, emailService: emailService, salesEmail: salesEmail}
}

func (n *notificationService) CreateLead(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error) {

	lead := &models.Lead{
		ID:      uuid.New(),
		Name:    utils.SanitizeText(req.Name),
		Phone:   req.Phone,
		Email:   req.Email,
		Message: utils.SanitizeText(req.Message),
		Source:  req.Source,
	}

	if err := n.repo.CreateLead(ctx, lead); err != nil {
		return nil, appErrors.DatabaseError("Failed to record lead").WithError(err)
	}

	// The lead is durable; forwarding is best-effort from here on.
	n.attempt(ctx, models.NotificationTypeCRMLead, "crm", "New website lead", lead.Name, lead, func(ctx context.Context) error {
		return n.crmClient.CreateLead(ctx, lead)
	})

	n.attempt(ctx, models.NotificationTypeChatAlert, "sales-chat", "New website lead", lead.Name, lead, func(ctx context.Context) error {
		return n.crmClient.SendChatMessage(ctx, fmt.Sprintf("New lead: %s, %s", lead.Name, lead.Phone))
	})

	return lead, nil
}

func (n *notificationService) NotifyOrderPlaced(ctx context.Context, order *models.Order) {

	summary := fmt.Sprintf("Order %s: £%.2f, %.1f kg, %d lines", order.Number, order.Total, order.TotalWeight, len(order.Items))

	n.attempt(ctx, models.NotificationTypeChatAlert, "sales-chat", "New order", summary, order, func(ctx context.Context) error {
		return n.crmClient.SendChatMessage(ctx, summary)
	})

	n.attempt(ctx, models.NotificationTypeEmail, n.salesEmail, "New order "+order.Number, summary, order, func(ctx context.Context) error {
		return n.emailService.Send(ctx, n.salesEmail, "New order "+order.Number, summary, "")
	})
}

// attempt records one outbound delivery and runs it. Errors end up in the
// notification log and the request log, never in the caller's error path.
func (n *notificationService) attempt(ctx context.Context, kind models.NotificationType, recipient, subject, content string, metadata any, send func(context.Context) error) {

	logger := middleware.LoggerFromContext(ctx)

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		metadataJSON = nil
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      kind,
		Recipient: recipient,
		Subject:   subject,
		Content:   content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		logger.Error("Failed to record notification", slog.String("type", string(kind)), slog.Any("error", err))
		return
	}

	if err := send(ctx); err != nil {
		logger.Warn("Notification delivery failed", slog.String("type", string(kind)), slog.Any("error", err))

		_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error())

		return
	}

	_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, "")
}

func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, total, nil
}
