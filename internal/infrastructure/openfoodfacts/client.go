package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/foodcheck/web/config"
	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/infrastructure/metrics"
	"github.com/foodcheck/web/internal/infrastructure/upstream"
	"go.uber.org/zap"
)

// UpstreamName labels this API in logs and metrics
const UpstreamName = "openfoodfacts"

// Client handles communication with the Open Food Facts API
type Client struct {
	api *upstream.Client
}

// NewClient creates a new Open Food Facts API client
func NewClient(cfg config.UpstreamConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	return &Client{
		api: upstream.NewClient(UpstreamName, cfg, m, logger),
	}
}

// LookupProduct fetches a product by barcode.
// The body decides the outcome whatever the HTTP status, since the API
// reports unknown barcodes as status 0 with either 200 or 404.
func (c *Client) LookupProduct(ctx context.Context, barcode string) (record *domain.ProductRecord, err error) {
	start := time.Now()
	defer func() { c.api.Observe(upstream.OutcomeFor(err), start) }()

	path := fmt.Sprintf("/api/v0/product/%s.json", url.PathEscape(barcode))

	resp, err := c.api.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var body productResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response (status %d): %v", domain.ErrMalformedResponse, resp.StatusCode, err)
	}

	if body.Status != statusFound || body.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	return MapToProductRecord(barcode, body.Product), nil
}

// SearchProducts runs a free-text search and returns the products verbatim
func (c *Client) SearchProducts(ctx context.Context, query string) (items []domain.SearchResultItem, err error) {
	start := time.Now()
	defer func() { c.api.Observe(upstream.OutcomeFor(err), start) }()

	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("json", "1")

	resp, err := c.api.Get(ctx, "/cgi/search.pl", params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var body searchResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedResponse, err)
	}

	items = make([]domain.SearchResultItem, 0, len(body.Products))
	for _, p := range body.Products {
		items = append(items, domain.SearchResultItem(p))
	}
	return items, nil
}
