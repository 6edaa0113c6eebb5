package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// RegisterSchema submits the property schema. Registration is
// asynchronous: the host answers 202 Accepted with the operation URL in
// the Location header. Any other status is a rejection carrying the
// host's error payload.
func (c *Client) RegisterSchema(ctx context.Context, token string, schema domain.Schema) (string, error) {
	url := c.connectionURL() + "/schema"

	resp, body, err := c.do(ctx, token, http.MethodPatch, url, schema)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusAccepted {
		return "", newAPIError(resp.StatusCode, body)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("schema accepted but no operation location returned")
	}
	return location, nil
}

// GetSchema fetches the registered schema. A 404 means no schema is
// registered yet, reported as domain.ErrSchemaNotFound so callers can
// tell absence from failure.
func (c *Client) GetSchema(ctx context.Context, token string) (*domain.Schema, error) {
	url := c.connectionURL() + "/schema"

	resp, body, err := c.do(ctx, token, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrSchemaNotFound
	}
	if !ok(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var schema domain.Schema
	if err := json.Unmarshal(body, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &schema, nil
}

// operationResponse is the Graph representation of an async operation.
type operationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GetOperation checks an asynchronous operation once. The reference may
// be the full operation URL from a Location header or a bare operation
// id.
//
// A non-2xx response is a soft failure: the returned operation has
// StatusUnknown and a nil error, so the caller's wait loop continues
// instead of aborting on a transient poll hiccup.
func (c *Client) GetOperation(ctx context.Context, token, operationRef string) (*domain.Operation, error) {
	url := operationRef
	if !strings.HasPrefix(operationRef, "http") {
		url = c.connectionURL() + "/operations/" + operationRef
	}

	resp, body, err := c.do(ctx, token, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !ok(resp.StatusCode) {
		return &domain.Operation{
			Ref:          operationRef,
			Status:       domain.StatusUnknown,
			ErrorMessage: fmt.Sprintf("HTTP %d", resp.StatusCode),
		}, nil
	}

	var op operationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}

	result := &domain.Operation{Ref: operationRef, Status: domain.OperationStatus(op.Status)}
	if result.Status == "" {
		result.Status = domain.StatusUnknown
	}
	if op.Error != nil {
		result.ErrorMessage = op.Error.Message
	}
	return result, nil
}

// ListOperations lists every operation recorded on the connection.
func (c *Client) ListOperations(ctx context.Context, token string) ([]domain.Operation, error) {
	url := c.connectionURL() + "/operations"

	resp, body, err := c.do(ctx, token, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !ok(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var listing struct {
		Value []operationResponse `json:"value"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode operations: %w", err)
	}

	ops := make([]domain.Operation, 0, len(listing.Value))
	for _, raw := range listing.Value {
		op := domain.Operation{Ref: raw.ID, Status: domain.OperationStatus(raw.Status)}
		if op.Status == "" {
			op.Status = domain.StatusUnknown
		}
		if raw.Error != nil {
			op.ErrorMessage = raw.Error.Message
		}
		ops = append(ops, op)
	}
	return ops, nil
}
