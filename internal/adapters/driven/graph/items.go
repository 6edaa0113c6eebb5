package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// UpsertItem creates or replaces an item by id. The host validates the
// properties against the registered schema; a mismatch is rejected with
// the validation detail in the APIError body.
func (c *Client) UpsertItem(ctx context.Context, token string, item *domain.ExternalItem) error {
	url := c.connectionURL() + "/items/" + item.ID

	resp, body, err := c.do(ctx, token, http.MethodPut, url, item)
	if err != nil {
		return err
	}
	if !ok(resp.StatusCode) {
		return newAPIError(resp.StatusCode, body)
	}
	return nil
}

// DeleteItem removes an item by id. A 404 counts as success - the item
// is already absent.
func (c *Client) DeleteItem(ctx context.Context, token, itemID string) error {
	url := c.connectionURL() + "/items/" + itemID

	resp, body, err := c.do(ctx, token, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if !ok(resp.StatusCode) && resp.StatusCode != http.StatusNotFound {
		return newAPIError(resp.StatusCode, body)
	}
	return nil
}

// CountItems returns the number of items currently in the connection.
func (c *Client) CountItems(ctx context.Context, token string) (int, error) {
	url := c.connectionURL() + "/items"

	resp, body, err := c.do(ctx, token, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if !ok(resp.StatusCode) {
		return 0, newAPIError(resp.StatusCode, body)
	}

	var listing struct {
		Value []json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return 0, fmt.Errorf("decode items: %w", err)
	}
	return len(listing.Value), nil
}
