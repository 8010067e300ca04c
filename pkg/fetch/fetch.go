// Package fetch retrieves JSON documents from upstream HTTP APIs. Responses
// are cached by URL and transient failures are retried.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spencer-p/goldenhour/pkg/cache"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/metrics"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

// StatusError is returned for non-success responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Client fetches JSON from one upstream service.
type Client struct {
	// Name labels the upstream in logs and metrics.
	Name    string
	HTTP    *http.Client
	Cache   cache.Cache
	Retries int
	Backoff time.Duration
}

// New returns a Client for the named upstream. A nil cache disables caching.
func New(name string, c cache.Cache) *Client {
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		Name:    name,
		HTTP:    http.DefaultClient,
		Cache:   c,
		Retries: defaultAttempts,
		Backoff: defaultBackoff,
	}
}

// GetJSON decodes the response to a GET of u into v.
func (c *Client) GetJSON(ctx context.Context, u *url.URL, v any) error {
	key := c.Name + " " + u.String()
	if cached, ok := c.Cache.Get(ctx, key); ok {
		if err := json.Unmarshal(cached, v); err == nil {
			return nil
		}
		log.Debugf("discarding undecodable cache entry for %s", key)
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s response: %w", c.Name, err)
	}
	c.Cache.Set(ctx, key, body)
	return nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (_ []byte, err error) {
	start := time.Now()
	code := 0
	defer func() {
		metrics.ObserveUpstream(c.Name, strconv.Itoa(code), time.Since(start).Seconds())
		if err != nil {
			log.Debugw("upstream request failed", "upstream", c.Name, "url", u.String(), "err", err)
		}
	}()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, u)
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			code = se.Code
		}
		return nil, err
	}
	defer resp.Body.Close()
	code = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.Name, err)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, u *url.URL) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	attempts := c.Retries
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.Backoff

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == attempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
