// Package scpsl implements the client for the SCP:SL central status API
// and the decoding of the server metadata it returns.
package scpsl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// responseLimit caps how much of a status response is read; the API
// returns a few KB per server even with full player lists.
const responseLimit = 1 << 20

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status api returned HTTP %d", e.Code)
}

// FormatError is returned when the response body is not valid JSON.
type FormatError struct {
	err error
}

func (e *FormatError) Error() string {
	return "status api returned malformed payload: " + e.err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.err
}

// Client queries the serverinfo endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// NewClient builds a Client for the given endpoint with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Timeout returns the per-request timeout the client applies.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// ServerInfo requests the full status of every server owned by the
// account. The request always asks for last-online, player counts,
// player lists, info, version, and flags.
func (c *Client) ServerInfo(ctx context.Context, key, accountID string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("id", accountID)
	params.Set("key", key)
	params.Set("lo", "true")
	params.Set("players", "true")
	params.Set("list", "true")
	params.Set("info", "true")
	params.Set("version", "true")
	params.Set("flags", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseLimit))
	if err != nil {
		return nil, err
	}

	data, err := decodeResponse(body)
	if err != nil {
		// Keep the raw body for diagnosis; it never reaches the user.
		log.Error().
			Str("account_id", accountID).
			Str("body", string(body)).
			Msg("Status API returned non-JSON payload")

		return nil, &FormatError{err: err}
	}

	return data, nil
}
