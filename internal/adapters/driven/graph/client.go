// Package graph implements the ItemStore port against the Microsoft
// Graph external connections API.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
)

// Microsoft Graph API base URL.
const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// requestTimeout bounds every individual Graph call. The schema wait
// loop has its own overall budget on top of this.
const requestTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.ItemStore = (*Client)(nil)

// Client talks to the external connections API for one fixed connection
// id. Bearer tokens are passed per call; the client holds none.
type Client struct {
	baseURL      string
	connectionID string
	httpClient   *http.Client
	limiter      *RateLimiter
}

// NewClient creates a Graph client bound to the given connection id.
func NewClient(connectionID string) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		connectionID: connectionID,
		httpClient:   &http.Client{Timeout: requestTimeout},
		limiter:      NewRateLimiter(),
	}
}

// connectionURL returns the base URL of the bound connection.
func (c *Client) connectionURL() string {
	return fmt.Sprintf("%s/external/connections/%s", c.baseURL, c.connectionID)
}

// do sends one authenticated request and returns the response and its
// fully read body. A nil payload sends no body.
func (c *Client) do(ctx context.Context, token, method, url string, payload any) (*http.Response, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	return resp, body, nil
}

// ok reports whether the status code is in the 2xx range.
func ok(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
