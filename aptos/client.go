// Package aptos is a read-only client for the node REST API.
package aptos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/types"
)

const (
	DefaultEndpoint   = "https://fullnode.testnet.aptoslabs.com"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond

	balanceFunction = "0x1::coin::balance"
)

type Config struct {
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client

	Metrics *metrics.Provider
	Logger  *zap.Logger
}

// ClientInterface is what the rest of the service needs from a node.
type ClientInterface interface {
	View(ctx context.Context, req types.ViewRequest) ([]json.RawMessage, error)
	Balance(ctx context.Context, owner, coinType string) (string, error)
	Resource(ctx context.Context, account, resourceType string, out interface{}) error
}

// HTTPError is a non-2xx node response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("node returned %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration

	metrics *metrics.Provider
	logger  *zap.Logger
}

var _ ClientInterface = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("invalid node endpoint %q", cfg.Endpoint)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Dial: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).Dial,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		metrics:    cfg.Metrics,
		logger:     logger.With(zap.String("client", "aptos")),
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// do sends the request, retrying transport failures, 429 and 5xx with a doubling delay.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	lgr := c.logger.With(zap.String("method", method), zap.String("path", path))
	delay := c.retryDelay
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
		req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			lgr.Debug("node request failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		respBody, err := ioutil.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
			if httpErr.retryable() {
				lastErr = httpErr
				continue
			}
			return httpErr
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	lgr.Warn("node request exhausted retries", zap.Error(lastErr))
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// View runs a Move view function and returns its raw return values.
func (c *Client) View(ctx context.Context, req types.ViewRequest) (result []json.RawMessage, err error) {
	defer func(started time.Time) { c.metrics.RecordChainRequest("view", started, err) }(time.Now())
	if req.TypeArguments == nil {
		req.TypeArguments = []string{}
	}
	if req.Arguments == nil {
		req.Arguments = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if err = c.do(ctx, http.MethodPost, "/v1/view", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Balance returns coin::balance<coinType>(owner) as a base-10 string in 6-decimal
// fixed point. An empty view result reads as "0".
func (c *Client) Balance(ctx context.Context, owner, coinType string) (string, error) {
	if owner == "" || coinType == "" {
		return "", errors.New("owner and coinType required")
	}
	values, err := c.View(ctx, types.ViewRequest{
		Function:      balanceFunction,
		TypeArguments: []string{coinType},
		Arguments:     []string{owner},
	})
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "0", nil
	}
	return rawToIntString(values[0])
}

// Resource reads an account resource and decodes its data field into out.
func (c *Client) Resource(ctx context.Context, account, resourceType string, out interface{}) (err error) {
	defer func(started time.Time) { c.metrics.RecordChainRequest("resource", started, err) }(time.Now())
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	path := fmt.Sprintf("/v1/accounts/%s/resource/%s", account, resourceType)
	if err = c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("resource %s has no data", resourceType)
	}
	return json.Unmarshal(envelope.Data, out)
}

// rawToIntString accepts a u64 encoded either as a JSON string or a JSON number.
func rawToIntString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "0", nil
		}
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("unexpected balance value %s", string(raw))
	}
	if n == "" {
		return "0", nil
	}
	return n.String(), nil
}
