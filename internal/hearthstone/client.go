package hearthstone

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mselser95/hearthstone-cards/internal/auth"
	"github.com/mselser95/hearthstone-cards/pkg/types"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client performs bearer-authenticated GET requests against the Blizzard API.
// It does not retry and does not refresh the token on 401.
type Client struct {
	tokens     auth.TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new API client.
func NewClient(tokens auth.TokenSource, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetJSON fetches endpoint with the current access token and decodes the body into out.
// op names the call in errors and metrics.
func (c *Client) GetJSON(ctx context.Context, op string, endpoint string, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hearthstone-cards/1.0")

	c.logger.Debug("api-request", zap.String("op", op), zap.String("url", endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestsTotal.WithLabelValues(op, "error").Inc()
		return &types.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	RequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(op, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &types.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return &types.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return nil
}

// statusError maps a non-2xx status to the error kind the caller reports.
func statusError(op string, statusCode int, body []byte) error {
	cause := fmt.Errorf("unexpected status code %d: %s", statusCode, string(body))

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &types.AuthError{Op: op, Err: cause}
	case http.StatusBadRequest, http.StatusNotFound:
		return &types.NotFoundError{Resource: op, Err: cause}
	default:
		return &types.UpstreamError{Op: op, StatusCode: statusCode, Err: cause}
	}
}
