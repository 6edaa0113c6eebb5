package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// CreateConnection provisions the external connection. The host rejects
// duplicate ids; a rejection surfaces as an APIError carrying the raw
// response body.
func (c *Client) CreateConnection(ctx context.Context, token string, conn domain.Connection) (*domain.Connection, error) {
	url := c.baseURL + "/external/connections"

	resp, body, err := c.do(ctx, token, http.MethodPost, url, conn)
	if err != nil {
		return nil, err
	}
	if !ok(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var created domain.Connection
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode connection: %w", err)
	}
	return &created, nil
}

// GetConnection fetches the bound connection.
func (c *Client) GetConnection(ctx context.Context, token string) (*domain.Connection, error) {
	resp, body, err := c.do(ctx, token, http.MethodGet, c.connectionURL(), nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("connection %s: %w", c.connectionID, domain.ErrNotFound)
	}
	if !ok(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var conn domain.Connection
	if err := json.Unmarshal(body, &conn); err != nil {
		return nil, fmt.Errorf("decode connection: %w", err)
	}
	return &conn, nil
}

// ListConnections lists all external connections in the tenant.
func (c *Client) ListConnections(ctx context.Context, token string) ([]domain.Connection, error) {
	url := c.baseURL + "/external/connections"

	resp, body, err := c.do(ctx, token, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !ok(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var listing struct {
		Value []domain.Connection `json:"value"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode connections: %w", err)
	}
	return listing.Value, nil
}
