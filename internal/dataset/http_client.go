package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for the dataset HTTP client.
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultHTTPClientConfig returns recommended defaults. Dataset fetches are
// infrequent (startup plus scheduled reloads), so the rate limit is mostly
// a guard against a misconfigured reload schedule hammering the provider.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:      60 * time.Second,
		MaxRetries:   4,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 15 * time.Second,
		RateLimit:    1.0,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Entry) *RateLimitedHTTPClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	return &RateLimitedHTTPClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
	}
}

// Get executes a GET request, waiting for the rate limiter first.
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).WithField("url", url).Warn("Dataset fetch failed")
		}
		return nil, err
	}

	return resp, nil
}

// Close closes idle connections held by the client.
func (c *RateLimitedHTTPClient) Close() {
	c.client.HTTPClient.CloseIdleConnections()
}
