package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeCRMLead   NotificationType = "crm_lead"
	NotificationTypeChatAlert NotificationType = "chat_alert"
	NotificationTypeEmail     NotificationType = "email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Lead is an enquiry from a public form, recorded locally before the
// best-effort forward to the CRM.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateLeadRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,min=6,max=30"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Message string `json:"message,omitempty" validate:"omitempty,max=2000"`
	Source  string `json:"source,omitempty" validate:"omitempty,max=200"`
}

// Notification is one outbound delivery attempt (CRM lead, chat alert or
// email). Failures are recorded here and swallowed; they never fail the
// user-facing request that triggered them.
type Notification struct {
	ID           uuid.UUID          `json:"id"`
	Type         NotificationType   `json:"type"`
	Recipient    string             `json:"recipient"`
	Subject      string             `json:"subject,omitempty"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Metadata     json.RawMessage    `json:"metadata,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
