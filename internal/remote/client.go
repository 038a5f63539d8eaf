// Package remote is the HTTP client of the transaction store API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/logging"
	"github.com/hance08/dealflow/internal/model"
	"github.com/pterm/pterm"
)

const RequestIDHeader = "X-Request-ID"

// ErrUnavailable wraps failures to reach the store at all.
var ErrUnavailable = errors.New("transaction store unavailable")

// APIError is a non-2xx answer from the store. Detail comes from the
// `{"detail": "..."}` error payload when the server sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("transaction store returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Detail
}

// IsRejected reports whether err is a server-side rejection as opposed to
// a connectivity failure.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound reports whether the store answered 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *pterm.Logger
}

func New(cfg config.APIConfig, logger *pterm.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type statusUpdate struct {
	ID     int64        `json:"id"`
	Status model.Status `json:"status"`
}

type errorPayload struct {
	Detail string `json:"detail"`
}

func (c *Client) List(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &txs); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &tx); err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return &tx, nil
}

func (c *Client) History(ctx context.Context, id int64) ([]model.StatusChange, error) {
	var changes []model.StatusChange
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d/history", id), nil, &changes); err != nil {
		return nil, fmt.Errorf("failed to get history of transaction %d: %w", id, err)
	}
	return changes, nil
}

// UpdateStatus asks the store to move transaction id to status.
// Rejections are returned as *APIError so the detail can be shown as is.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	body := statusUpdate{ID: id, Status: status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/transactions/%d", id), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		c.logger.Args(
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload errorPayload
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(raw, &payload) == nil {
				apiErr.Detail = payload.Detail
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
