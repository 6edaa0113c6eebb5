package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error types for Microsoft Graph API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("graph: unauthorised")

	// ErrForbidden indicates the app lacks permission for the resource.
	ErrForbidden = errors.New("graph: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrConflict indicates the resource already exists, e.g. creating a
	// connection with an id that is taken.
	ErrConflict = errors.New("graph: conflict")

	// ErrRateLimited indicates the request was throttled.
	ErrRateLimited = errors.New("graph: rate limited")

	// ErrBadRequest indicates the request was malformed, e.g. an item
	// whose properties do not match the registered schema.
	ErrBadRequest = errors.New("graph: bad request")

	// ErrServerError indicates a server-side error from Microsoft Graph.
	ErrServerError = errors.New("graph: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// APIError is a non-2xx Graph response. It keeps the raw body so a
// failed administrative step can be diagnosed without re-running it.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

// graphErrorBody is the standard Graph error envelope.
type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newAPIError builds an APIError from a response, extracting the Graph
// error code and message when the body carries the standard envelope.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: body}

	var envelope graphErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// Error renders the host's message when present, the raw body otherwise.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph: HTTP %d: %s", e.StatusCode, string(e.Body))
}

// Unwrap maps the status code onto the sentinel errors so callers can
// use errors.Is.
func (e *APIError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// IsNotFound checks if the status code indicates a missing resource.
func IsNotFound(statusCode int) bool {
	return statusCode == http.StatusNotFound
}

// IsRetryable checks if the status code is potentially transient.
func IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
