// Package apiclient wraps the remote record API. It signs requests from the
// request-scoped session, decodes the API's {message, data} envelope and
// normalizes every failure to an Error{Message, Status} before the service
// layer sees it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrmadmin/internal/platform/metrics"
	"hrmadmin/internal/requestctx"
)

// Error is the uniform failure shape surfaced to UI code. Status is the
// remote status code, or 0 for transport failures that never produced a
// response.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Transient reports whether a retry could plausibly succeed. Client errors
// are terminal; transport failures and server errors are not.
func (e *Error) Transient() bool {
	return e.Status == 0 || e.Status >= http.StatusInternalServerError
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	base           string
	httpClient     *http.Client
	collector      *metrics.Collector
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.collector = collector
	}
}

// WithBackoff overrides the retry backoff curve. Tests shrink it.
func WithBackoff(initial, maximum time.Duration) Option {
	return func(c *Client) {
		if initial > 0 {
			c.initialBackoff = initial
		}
		if maximum > 0 {
			c.maxBackoff = maximum
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		// No explicit timeout; the flow is bounded by the default transport.
		httpClient:     &http.Client{},
		initialBackoff: 10 * time.Millisecond,
		maxBackoff:     time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs one call against the API. A non-nil out receives the envelope's
// data payload; the envelope message is returned either way.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (string, error) {
	start := time.Now()
	message, err := c.call(ctx, method, path, body, out)
	c.collector.RecordCall(err, 0, time.Since(start))
	return message, err
}

// DoRetry repeats the call on transient failures, up to attempts total tries,
// with exponential backoff. Retried writes are not deduplicated; against a
// non-idempotent endpoint a retry can double-apply.
func (c *Client) DoRetry(ctx context.Context, attempts int, method, path string, body, out any) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	start := time.Now()
	var message string
	var err error
	backoff := c.initialBackoff
	used := 0
	for try := 0; try < attempts; try++ {
		used = try
		message, err = c.call(ctx, method, path, body, out)
		if err == nil {
			break
		}
		apiErr, ok := err.(*Error)
		if !ok || !apiErr.Transient() || try == attempts-1 {
			break
		}
		if sleepErr := sleepContext(ctx, backoff); sleepErr != nil {
			break
		}
		backoff *= 2
		if backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
	c.collector.RecordCall(err, used, time.Since(start))
	return message, err
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", &Error{Message: "encode request payload failed", Status: 0}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return "", &Error{Message: err.Error(), Status: 0}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", outboundRequestID(ctx))

	if sess, ok := requestctx.GetSession(ctx); ok && sess.Token != "" && !anonymousPath(path) {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Message: err.Error(), Status: 0}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Message: "read response failed", Status: 0}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Message: remoteMessage(raw, resp.StatusCode), Status: resp.StatusCode}
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return "", &Error{Message: "decode response failed", Status: resp.StatusCode}
		}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &Error{Message: "decode response payload failed", Status: resp.StatusCode}
		}
	}
	return env.Message, nil
}

// Login and register run before a session exists; the token is never
// attached to them even when one is present.
func anonymousPath(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/register")
}

func remoteMessage(raw []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("remote api returned status %d", status)
}

func outboundRequestID(ctx context.Context) string {
	if id := requestctx.GetRequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
