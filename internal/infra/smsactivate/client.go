package smsactivate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"numbers-bot/internal/stories/catalog"
)

const (
	actionGetCountries = "getCountries"
	actionGetPrices    = "getPrices"

	defaultTimeout = 20 * time.Second
	maxBodySize    = 8 << 20
)

// Client is a read-only client of the SMS-activation handler API.
// Purchase and activation actions are never called.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a new price API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		apiKey:     apiKey,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchCountries returns the country catalog in upstream order.
func (c *Client) FetchCountries(ctx context.Context) ([]catalog.Country, error) {
	var countries []catalog.Country
	err := c.call(ctx, actionGetCountries, nil, func(body []byte) error {
		var err error
		countries, err = decodeCountries(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return countries, nil
}

// FetchPrices returns the extended price list for a single service.
func (c *Client) FetchPrices(ctx context.Context, service catalog.ServiceCode) (catalog.PriceList, error) {
	var prices catalog.PriceList
	err := c.call(ctx, actionGetPrices, url.Values{"service": {string(service)}}, func(body []byte) error {
		var err error
		prices, err = decodePrices(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	return prices, nil
}

// call performs one GET under the fixed timeout and decodes the body.
// Every failure is reported as *UpstreamError.
func (c *Client) call(ctx context.Context, action string, params url.Values, decode func(body []byte) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	outcome, err := c.get(ctx, action, params, decode)
	c.observe(action, outcome, time.Since(started))

	return err
}

func (c *Client) get(ctx context.Context, action string, params url.Values, decode func(body []byte) error) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return outcomeTransport, &UpstreamError{Action: action, Err: errors.Wrap(err, "rate limiting")}
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	query.Set("action", action)

	u := *c.baseURL
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return outcomeTransport, &UpstreamError{Action: action, Err: errors.Wrap(err, "build request")}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	logger := c.logger.With(slog.String("action", action), slog.String("request_id", requestID))
	logger.Debug("Requesting price API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Price API request failed", slog.Any("error", err))
		return outcomeTransport, &UpstreamError{Action: action, Err: errors.Wrap(err, "do request")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return outcomeTransport, &UpstreamError{Action: action, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Price API returned non-2xx status", slog.Int("status", resp.StatusCode))
		return outcomeStatus, &UpstreamError{
			Action:     action,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status: %s", snippet(body)),
		}
	}

	if err := decode(body); err != nil {
		logger.Warn("Price API returned malformed body", slog.Any("error", err), slog.String("body", snippet(body)))
		return outcomeMalformed, &UpstreamError{Action: action, StatusCode: resp.StatusCode, Err: err}
	}

	logger.Debug("Price API responded", slog.Int("bytes", len(body)))
	return outcomeOK, nil
}

func (c *Client) observe(action, outcome string, took time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.observe(action, outcome, took)
}

func snippet(body []byte) string {
	const limit = 128
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
