package openfda

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
const UpstreamName = "openfda"

// labelResponse is the envelope of GET /drug/label.json
type labelResponse struct {
	Results []json.RawMessage `json:"results"`
}

// Client handles communication with the openFDA drug label API
type Client struct {
	api *upstream.Client
}

// NewClient creates a new openFDA API client
func NewClient(cfg config.UpstreamConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	return &Client{
		api: upstream.NewClient(UpstreamName, cfg, m, logger),
	}
}

// HasActiveIngredient reports whether at least one drug label lists the
// ingredient as active. openFDA answers 404 when nothing matches; that is
// a plain false, not an error.
func (c *Client) HasActiveIngredient(ctx context.Context, ingredient string) (found bool, err error) {
	start := time.Now()
	defer func() {
		outcome := upstream.OutcomeFor(err)
		if err == nil && !found {
			outcome = metrics.OutcomeNotFound
		}
		c.api.Observe(outcome, start)
	}()

	params := url.Values{}
	params.Add("search", "active_ingredient:"+ingredient)
	params.Add("limit", "1")

	resp, err := c.api.Get(ctx, "/drug/label.json", params)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var body labelResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedResponse, err)
	}

	return len(body.Results) > 0, nil
}
