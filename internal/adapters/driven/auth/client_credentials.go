// Package auth implements the TokenProvider port with the OAuth2
// client-credentials grant against Microsoft Entra.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
)

const (
	// tokenURLTemplate is the tenant-scoped Entra token endpoint.
	//nolint:gosec // G101: not credentials, OAuth endpoint URL
	tokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

	// graphDefaultScope requests the app's configured Graph permissions.
	graphDefaultScope = "https://graph.microsoft.com/.default"

	// tokenRequestTimeout bounds the exchange call.
	tokenRequestTimeout = 30 * time.Second
)

// Ensure ClientCredentials implements the interface.
var _ driven.TokenProvider = (*ClientCredentials)(nil)

// ClientCredentials exchanges service credentials for short-lived bearer
// tokens. There is deliberately no caching or refresh: every GetToken
// call performs a fresh exchange, and callers request one token per
// batch.
type ClientCredentials struct {
	cfg clientcredentials.Config
}

// NewClientCredentials creates a token provider for the given tenant and
// application.
func NewClientCredentials(tenantID, clientID, clientSecret string) *ClientCredentials {
	return &ClientCredentials{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     fmt.Sprintf(tokenURLTemplate, tenantID),
			Scopes:       []string{graphDefaultScope},
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

// GetToken performs the client-credentials exchange. Failures wrap
// domain.ErrAuthFailed with the identity provider's error description so
// the operator sees why the exchange was rejected.
func (p *ClientCredentials) GetToken(ctx context.Context) (string, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		return "", fmt.Errorf("%w: TENANT_ID, CLIENT_ID and CLIENT_SECRET must be set", domain.ErrAuthFailed)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: tokenRequestTimeout})

	token, err := p.cfg.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", fmt.Errorf("%w: %s", domain.ErrAuthFailed, describeRetrieveError(retrieveErr))
		}
		return "", fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access token", domain.ErrAuthFailed)
	}
	return token.AccessToken, nil
}

// describeRetrieveError prefers the provider's error_description, then
// its error code, then the raw body.
func describeRetrieveError(err *oauth2.RetrieveError) string {
	if err.ErrorDescription != "" {
		return err.ErrorDescription
	}
	if err.ErrorCode != "" {
		return err.ErrorCode
	}
	return fmt.Sprintf("HTTP %d: %s", err.Response.StatusCode, string(err.Body))
}
