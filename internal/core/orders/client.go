package orders

import (
	"context"
	"fmt"
	"net/http"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Submission is the payload the order collaborator accepts.
type Submission struct {
	UserNumber string             `json:"usuario_numero"`
	Retailer   common.Retailer    `json:"supermercado"`
	Products   []common.OrderLine `json:"productos"`
	Total      decimal.Decimal    `json:"total"`
}

// Client submits finalized retailer orders to the order collaborator.
type Client struct {
	client *resty.Client
}

// NewClient creates an order submission client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Orders.BaseURL).
		SetTimeout(cfg.Orders.Timeout)

	return &Client{client: client}
}

// Submit sends one retailer's order. The order is read-only input: the
// client never mutates the lines it is handed. Retry policy, if any,
// belongs to the caller.
func (c *Client) Submit(ctx context.Context, userNumber string, order *common.RetailerOrder) error {
	if order == nil || len(order.Lines) == 0 {
		return common.ErrEmptyOrder
	}

	submission := Submission{
		UserNumber: userNumber,
		Retailer:   order.Retailer,
		Products:   order.Lines,
		Total:      order.Total,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(submission).
		Post("")
	if err != nil {
		return fmt.Errorf("failed to submit order: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		common.LogError("order API rejected submission",
			zap.Int("status", resp.StatusCode()),
			zap.String("retailer", string(order.Retailer)),
			zap.String("response", resp.String()),
		)
		return fmt.Errorf("order API returned status %d", resp.StatusCode())
	}

	common.LogInfo("order submitted",
		zap.String("retailer", string(order.Retailer)),
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return nil
}
