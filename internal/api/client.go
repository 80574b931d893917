// Package api implements clients for the remote voluntree service. The
// service is opaque at this boundary: it issues signed session tokens and
// JSON envelopes; nothing here interprets envelope codes beyond carrying
// them to the caller.
package api

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
)

// DefaultTimeout bounds every remote exchange; the bootstrap follow-up
// fetches rely on it as their only timeout.
const DefaultTimeout = 15 * time.Second

// Envelope is the error body returned by the remote service on non-2xx
// responses.
type Envelope struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// Error is a rejected exchange carrying the remote envelope. Code drives
// programmatic branching; Message is user-facing.
type Error struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
}

// Client is the shared HTTP plumbing for the remote service clients.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for one remote base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// decodeError turns a non-2xx response into an *Error. An unreadable body
// still yields a displayable error pair.
func decodeError(resp *http.Response) error {
	apiErr := &Error{
		Status:  resp.StatusCode,
		Code:    "UNKNOWN_ERROR",
		Message: "Something went wrong",
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		if env.Code != "" {
			apiErr.Code = env.Code
		}
		if env.Message != "" {
			apiErr.Message = env.Message
		}
		apiErr.RequestID = env.RequestID
	}

	return apiErr
}
