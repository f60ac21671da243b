package repo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ralt/drivermgr/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single lookup request
const DefaultTimeout = 10 * time.Second

// Transport performs blocking GET requests against the driver repository
type Transport interface {
	Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// Client is the HTTP Transport. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client. A nil limiter disables pacing.
func NewClient(limiter *rate.Limiter) *Client {
	return &Client{
		http:    &http.Client{},
		limiter: limiter,
	}
}

// NewLimiter returns a limiter allowing perSecond requests, or nil when
// perSecond is not positive
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Get fetches url and returns the response body. It fails on transport
// errors, on timeout and on HTTP status >= 400.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logrus.Debugf("GET %s: %d bytes", url, len(body))
	return body, nil
}

// Download streams url into the file at path
func (c *Client) Download(ctx context.Context, url, path string, timeout time.Duration) (int64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := c.do(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := utils.EnsureParentDir(path); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to download %s: %w", url, err)
	}

	logrus.Debugf("Downloaded %s to %s (%d bytes)", url, path, n)
	return n, f.Sync()
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, fmt.Errorf("repository returned status %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}
