// Package http provides an HTTP-based implementation of
// mediumghost.AssetFetcher for downloading the images a post references.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/mediumghost"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. Medium's CDN answers 403 to
// clients that do not identify themselves.
const DefaultUserAgent = "medium_to_ghost post exporter"

// Ensure Fetcher implements mediumghost.AssetFetcher at compile time.
var _ mediumghost.AssetFetcher = (*Fetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Fetcher downloads resources over HTTP, throttled per host and retried
// with backoff on transient failures.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	limiter     mediumghost.DomainLimiter
	retryDelays []time.Duration
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter throttles requests per host. No throttling by default.
func WithLimiter(l mediumghost.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithRetryDelays sets the delays between attempts. A nil or empty slice
// disables retries. Defaults to DefaultRetryDelays().
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithLogger sets the logger retries are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the resource at rawURL. Network errors, 429
// and 5xx responses are retried; other non-200 responses fail immediately,
// with ENOTFOUND for 404 and 410.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	maxAttempts := len(f.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.fetchOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return nil, perm.err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f.logger.Debug("retry", "url", rawURL, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, u *url.URL) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, &permanentError{err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &permanentError{err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, &permanentError{err: mediumghost.Errorf(mediumghost.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, u)}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	default:
		return nil, &permanentError{err: fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)}
	}

	return io.ReadAll(resp.Body)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }
