package notify

import (
	"context"
	"fmt"
	"net/http"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const graphAPIBaseURL = "https://graph.facebook.com/v17.0"

// WhatsAppClient delivers replies through the WhatsApp Cloud API: plain
// text messages and the interactive retailer-picker buttons.
type WhatsAppClient struct {
	config *config.WhatsAppConfig
	client *resty.Client
}

// Button is one interactive reply option.
type Button struct {
	ID    string
	Title string
}

// RetailerButtons are the standard options offered after a recipe: one per
// retailer, plus a product listing.
var RetailerButtons = []Button{
	{ID: string(common.RetailerDisco), Title: "🛒 Disco"},
	{ID: string(common.RetailerTiendaInglesa), Title: "🛍 Tienda Inglesa"},
	{ID: "listar", Title: "📋 Listar productos"},
}

// NewWhatsAppClient creates a Cloud API client.
func NewWhatsAppClient(cfg *config.WhatsAppConfig) *WhatsAppClient {
	client := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", graphAPIBaseURL, cfg.PhoneID)).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))

	return &WhatsAppClient{
		config: cfg,
		client: client,
	}
}

// SendText delivers a plain text message.
func (c *WhatsAppClient) SendText(ctx context.Context, to, body string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"text":              map[string]string{"body": body},
	}
	return c.post(ctx, payload)
}

// SendButtons delivers an interactive button message.
func (c *WhatsAppClient) SendButtons(ctx context.Context, to, question string, buttons []Button) error {
	replies := make([]map[string]interface{}, 0, len(buttons))
	for _, b := range buttons {
		replies = append(replies, map[string]interface{}{
			"type": "reply",
			"reply": map[string]string{
				"id":    b.ID,
				"title": b.Title,
			},
		})
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type":   "button",
			"body":   map[string]string{"text": question},
			"action": map[string]interface{}{"buttons": replies},
		},
	}
	return c.post(ctx, payload)
}

func (c *WhatsAppClient) post(ctx context.Context, payload interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		common.LogError("WhatsApp API rejected message",
			zap.Int("status", resp.StatusCode()),
			zap.String("response", resp.String()),
		)
		return fmt.Errorf("WhatsApp API returned status %d", resp.StatusCode())
	}
	return nil
}
