// Package aiservice is the HTTP client for the downstream question-answering service.
package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
)

// AccessTokenHeader carries the store's access token to the AI service.
const AccessTokenHeader = "X-Shopify-Access-Token"

const askPath = "/ask"

// ErrUnavailable is returned when the AI service refuses the connection.
var ErrUnavailable = errors.New("ai service unavailable")

// Client posts questions to the AI service. It is safe for concurrent use.
//
// No timeout is set: a call lasts until the service answers, the connection
// fails, or ctx is canceled.
type Client struct {
	httpClient *http.Client
	askURL     string
}

// New creates a Client for the service rooted at baseURL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		askURL:     strings.TrimRight(baseURL, "/") + askPath,
	}
}

// Ask sends q with token attached and returns the service's status and body as-is.
// Any status code is a successful relay; only transport failures and bodies that
// are not JSON produce errors.
func (c *Client) Ask(ctx context.Context, token string, q model.Question) (*model.Relay, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.askURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AccessTokenHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	return &model.Relay{StatusCode: resp.StatusCode, Body: raw}, nil
}
