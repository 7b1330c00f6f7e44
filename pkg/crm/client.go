// Package crm talks to the third-party CRM and the sales chat webhook. Both
// calls are fire-and-forget from the caller's point of view: an order or
// lead is already durably recorded before either is attempted, so failures
// are reported back only to be logged.
package crm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/sendgrid/rest"
)

type Client interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	SendChatMessage(ctx context.Context, text string) error
}

type client struct {
	baseURL        string
	apiKey         string
	chatWebhookURL string
}

func NewClient(baseURL, apiKey, chatWebhookURL string) Client {
	return &client{baseURL: baseURL, apiKey: apiKey, chatWebhookURL: chatWebhookURL}
}

type crmLeadPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Comment string `json:"comment,omitempty"`
	Source  string `json:"source,omitempty"`
}

func (c *client) CreateLead(ctx context.Context, lead *models.Lead) error {

	if c.baseURL == "" {
		return fmt.Errorf("crm is not configured")
	}

	body, err := json.Marshal(crmLeadPayload{
		Name:    lead.Name,
		Phone:   lead.Phone,
		Email:   lead.Email,
		Comment: lead.Message,
		Source:  lead.Source,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lead payload: %w", err)
	}

	request := rest.Request{
		Method:  rest.Post,
		BaseURL: c.baseURL + "/leads",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: body,
	}

	response, err := rest.SendWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("crm request failed: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("crm rejected the lead, status code: %d", response.StatusCode)
	}

	return nil
}

func (c *client) SendChatMessage(ctx context.Context, text string) error {

	if c.chatWebhookURL == "" {
		return fmt.Errorf("chat webhook is not configured")
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	request := rest.Request{
		Method:  rest.Post,
		BaseURL: c.chatWebhookURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}

	response, err := rest.SendWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("chat webhook request failed: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("chat webhook rejected the message, status code: %d", response.StatusCode)
	}

	return nil
}
