package httputil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 30 * time.Second

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// PageClient fetches page bodies over HTTP. It owns the transport policy the
// scraping engine deliberately doesn't have: a bounded per-attempt timeout, a
// polite per-process rate limit, and retry of throttled attempts. Callers
// above it see exactly one fetch that either yields complete text or fails.
type PageClient struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger
}

// NewPageClient creates a page fetcher. rps caps sustained requests per
// second (fractional values allowed), burst the momentary excess.
func NewPageClient(timeout time.Duration, rps float64, burst int, userAgent string, logger *slog.Logger) *PageClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PageClient{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch retrieves url and returns its body as text. Throttled responses
// (429) are retried with exponential backoff; any other failure is final.
func (c *PageClient) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	var body string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch page: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.Debug("throttled by upstream, backing off", "url", url)
			return fmt.Errorf("throttled: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("fetch page: status %d", resp.StatusCode))
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read page body: %w", err))
		}
		body = string(raw)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return body, nil
}
