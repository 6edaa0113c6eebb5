package driven

import "context"

// TokenProvider provides bearer tokens for authenticated item store calls.
//
// Tokens come from a client-credentials grant and are short-lived. There
// is no caching or refresh: every GetToken call performs a fresh exchange,
// so callers request one token per logical operation or batch, never per
// item.
type TokenProvider interface {
	// GetToken exchanges the service credentials for an access token.
	// Returns domain.ErrAuthFailed (wrapped with the provider's error
	// description) when the exchange is rejected.
	GetToken(ctx context.Context) (string, error)
}
