package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikbrunner/hive/internal/model"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryAfter = 2 * time.Second
	defaultMaxRetries = 2
	maxErrorBody      = 4096
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int // 0 = default, negative disables retries
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// Client talks to the bookmark backend over HTTP.
type Client struct {
	baseURL    string
	token      string
	maxRetries int
	maxWait    time.Duration // longest Retry-After honoured
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client for the backend at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	retries := opts.MaxRetries
	switch {
	case retries == 0:
		retries = defaultMaxRetries
	case retries < 0:
		retries = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    base.String(),
		token:      opts.Token,
		maxRetries: retries,
		maxWait:    timeout,
		httpClient: httpClient,
		logger:     logger.With("component", "remote"),
		sleep:      sleepContext,
	}, nil
}

// FetchTree returns the full bookmark forest.
func (c *Client) FetchTree(ctx context.Context) (*model.Tree, error) {
	tree := model.NewTree()
	if err := c.do(ctx, http.MethodGet, "/bookmark/tree", nil, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// CreateNode creates a node and returns it with its backend-assigned id.
func (c *Client) CreateNode(ctx context.Context, draft model.NodeDraft) (model.Node, error) {
	var node model.Node
	if err := c.do(ctx, http.MethodPost, "/bookmark", draft, &node); err != nil {
		return model.Node{}, err
	}
	if node.ID == "" {
		return model.Node{}, fmt.Errorf("%w: create response has no id", model.ErrNetwork)
	}
	return node, nil
}

// UpdateNode sends a partial update for id.
func (c *Client) UpdateNode(ctx context.Context, id string, patch model.NodePatch) error {
	return c.do(ctx, http.MethodPut, "/bookmark/"+url.PathEscape(id), patch, nil)
}

// DeleteNode deletes id and, on the backend, its subtree.
func (c *Client) DeleteNode(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookmark/"+url.PathEscape(id), nil, nil)
}

// do sends a request, retrying on 429, and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	for attempt := 0; ; attempt++ {
		status, header, body, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}

		if status == http.StatusTooManyRequests && attempt < c.maxRetries {
			wait := retryAfter(header.Get("Retry-After"), c.maxWait)
			c.logger.Warn("rate limited, retrying", "method", method, "path", path, "wait", wait, "attempt", attempt+1)
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if err := statusError(status, body); err != nil {
			return err
		}

		if out == nil || len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: unmarshal response: %v", model.ErrNetwork, err)
		}
		return nil
	}
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, http.Header, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, nil, ctxErr
		}
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: read response: %v", model.ErrNetwork, err)
	}

	c.logger.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)
	return resp.StatusCode, resp.Header, data, nil
}

// classifyTransportError maps a failed round trip onto the network errors.
func classifyTransportError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", model.ErrOffline, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %v", model.ErrOffline, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: request timed out", model.ErrNetwork)
	}

	return fmt.Errorf("%w: %v", model.ErrNetwork, err)
}

// statusError maps a non-2xx status onto the error taxonomy.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := errorMessage(body)
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return model.NewValidationError("request", msg)
	default:
		return fmt.Errorf("%w: status %d: %s", model.ErrNetwork, status, msg)
	}
}

// errorMessage extracts {"message": "..."} from an error body, falling back
// to the raw (truncated) text.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	if text == "" {
		return "no details"
	}
	return text
}

// retryAfter parses a Retry-After header given in seconds, capped at limit.
func retryAfter(value string, limit time.Duration) time.Duration {
	wait := defaultRetryAfter
	if secs, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	return min(wait, limit)
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
