// ABOUTME: HTTP client for the hotel RMS API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

// Client is the API client for the hotel RMS backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status        string    `json:"status"`
	SearchAPI     string    `json:"search_api"`
	RateLimit     RateLimit `json:"rate_limit"`
	Metrics       bool      `json:"metrics"`
	UptimeSeconds int       `json:"uptime_seconds"`
}

// RateLimit describes the backend's search quota
type RateLimit struct {
	Enabled       bool `json:"enabled"`
	Limit         int  `json:"limit"`
	WindowSeconds int  `json:"window_seconds"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidation reports whether err is a 400 response from the backend.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// CalculateOccupancy calls POST /api/v1/occupancy/calculate
func (c *Client) CalculateOccupancy(ctx context.Context, input models.OccupancyInput) (*models.OccupancyResponse, error) {
	var result models.OccupancyResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/occupancy/calculate", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportOccupancy calls POST /api/v1/occupancy/export and returns the
// rendered document. format is json, yaml or xlsx.
func (c *Client) ExportOccupancy(ctx context.Context, input models.OccupancyInput, format string) ([]byte, error) {
	path := "/api/v1/occupancy/export?" + url.Values{"format": {format}}.Encode()
	resp, err := c.send(ctx, http.MethodPost, path, input)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return data, nil
}

// CalculateInventory calls POST /api/v1/inventory/calculate
func (c *Client) CalculateInventory(ctx context.Context, input models.InventoryInput) (*models.InventoryResponse, error) {
	var result models.InventoryResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/inventory/calculate", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchResult is either a property detail or a listing, plus remaining quota
type SearchResult struct {
	PropertyDetail *models.PropertyDetail   `json:"propertyDetail,omitempty"`
	Properties     []models.PropertySummary `json:"properties,omitempty"`
	Remaining      int                      `json:"remaining"`
}

// SearchHotels calls GET /api/v1/hotels/search
func (c *Client) SearchHotels(ctx context.Context, query url.Values) (*SearchResult, error) {
	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/hotels/search?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// send issues the request and returns the response only for 200 OK.
// The caller closes the body.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.handleErrorResponse(resp)
	}
	return resp, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("backend returned status %d", resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: errResp.Error, Field: errResp.Field}
}
