package offers

import "errors"

// Closed error taxonomy for the SDK. Callers match with errors.Is; every
// error the client returns wraps exactly one of these sentinels.
var (
	// ErrConfiguration reports an unsupported transport kind or otherwise
	// unusable client configuration, detected before any network call.
	ErrConfiguration = errors.New("offers: invalid client configuration")

	// ErrAuth reports rejected credentials (HTTP 401 on any call).
	ErrAuth = errors.New("offers: authentication failed")

	// ErrInvalidRequest reports an upstream policy rejection of the request
	// itself (HTTP 400 during token acquisition, e.g. refreshing too soon).
	ErrInvalidRequest = errors.New("offers: invalid request")

	// ErrContractViolation reports HTTP 422 on a request this client
	// guarantees is well-formed. It signals an SDK/API contract mismatch and
	// is surfaced loudly rather than retried or swallowed.
	ErrContractViolation = errors.New("offers: upstream contract violation")

	// ErrAPI is the catch-all for unrecognized status codes and malformed
	// success responses.
	ErrAPI = errors.New("offers: unexpected API response")
)
