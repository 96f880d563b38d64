package draftclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/drafterr"
)

// APIError is a non-2xx response. It unwraps to the drafterr sentinel named
// by the response code so callers can use errors.Is as they would in-process.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case "validation_error":
		return drafterr.ErrValidation
	case "not_found":
		return drafterr.ErrNotFound
	case "invalid_sale":
		return &drafterr.InvalidSaleError{Reason: e.Message}
	case "concurrent_modification":
		return drafterr.ErrConcurrentModification
	case "store_unavailable":
		return drafterr.ErrStoreUnavailable
	case "broadcast_unavailable":
		return drafterr.ErrBroadcastUnavailable
	}
	return nil
}

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetHTTPClient replaces the transport, e.g. with an httptest client
func (c *BaseClient) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

// MakeRequest sends in as JSON (when non-nil) and decodes the response into
// out (when non-nil).
func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w: %v", drafterr.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(responseBody)}
		var er apiutil.ErrorResponse
		if json.Unmarshal(responseBody, &er) == nil && er.Code != "" {
			apiErr.Code = er.Code
			apiErr.Message = er.Error
		}
		return apiErr
	}

	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(responseBody))
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
