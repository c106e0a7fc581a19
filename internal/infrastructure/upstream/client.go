package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foodcheck/web/config"
	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/infrastructure/metrics"
	"github.com/foodcheck/web/internal/logging"
	"github.com/foodcheck/web/internal/version"
	"go.uber.org/zap"
)

// maxBodyBytes caps how much of an upstream body is read into memory
const maxBodyBytes = 8 << 20

// Response is a fully read upstream reply
type Response struct {
	StatusCode int
	Body       []byte
}

// Client performs GET requests against one upstream REST API
type Client struct {
	name       string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewClient creates a client for the upstream identified by name.
// m and logger may be nil.
func NewClient(name string, cfg config.UpstreamConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		name: name,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: "foodcheck/" + version.Version,
		metrics:   m,
		logger:    logger,
	}
}

// Name returns the upstream identifier used in logs and metrics
func (c *Client) Name() string {
	return c.name
}

// Get fetches baseURL+path with the given query parameters and reads the whole body.
// Transport failures are wrapped in domain.ErrUpstreamUnavailable.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	log := logging.FromContext(ctx, c.logger).With(zap.String("upstream", c.name))
	log.Debug("upstream request", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamUnavailable, err)
	}

	log.Debug("upstream response",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// Observe records the outcome of one logical upstream call
func (c *Client) Observe(outcome string, start time.Time) {
	c.metrics.ObserveUpstream(c.name, outcome, time.Since(start))
}

// OutcomeFor maps a client error to its metrics outcome label
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrProductNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrUpstreamStatus):
		return metrics.OutcomeBadStatus
	case errors.Is(err, domain.ErrMalformedResponse):
		return metrics.OutcomeBadResponse
	default:
		return metrics.OutcomeError
	}
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
