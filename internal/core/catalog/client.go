package catalog

import (
	"context"
	"fmt"
	"net/http"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client fetches product snapshots from the catalog collaborator. Each call
// returns a fresh snapshot; nothing is cached across calls.
type Client struct {
	client *resty.Client
}

// NewClient creates a catalog client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Catalog.BaseURL).
		SetTimeout(cfg.Catalog.Timeout)

	return &Client{client: client}
}

// FetchProducts retrieves the full catalog snapshot. Records without a
// product name are malformed and skipped; a failed fetch is an error,
// distinguishable from an empty catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]common.Product, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode())
	}

	var records []common.Product
	if err := common.ParseJSONBytes(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}

	products := records[:0]
	skipped := 0
	for _, p := range records {
		if p.Name == "" {
			skipped++
			continue
		}
		products = append(products, p)
	}

	common.LogInfo("catalog snapshot loaded",
		zap.Int("products", len(products)),
		zap.Int("skipped", skipped),
	)
	return products, nil
}

// FetchByRetailer retrieves the snapshot filtered to one retailer.
func (c *Client) FetchByRetailer(ctx context.Context, retailer common.Retailer) ([]common.Product, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/" + string(retailer))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog for %s: %w", retailer, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode())
	}

	var products []common.Product
	if err := common.ParseJSONBytes(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return products, nil
}
