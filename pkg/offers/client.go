package offers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/offerly-hq/offers-sdk-go/pkg/transport"
)

const (
	// DefaultBaseURL is the upstream used when none is configured.
	DefaultBaseURL = "https://python.exercise.applifting.cz"

	// DefaultLogDir receives per-request log files when logging is enabled.
	DefaultLogDir = "logs"

	authPath     = "/api/v1/auth"
	registerPath = "/api/v1/products/register"
	offersPath   = "/api/v1/products/%s/offers"

	// accessTokenTTL is the local validity window for access tokens. It is a
	// cache heuristic: the upstream may still reject a locally "valid" token,
	// in which case the 401 propagates as ErrAuth.
	accessTokenTTL = 5 * time.Minute
)

// Config carries the optional knobs for constructing a Client.
type Config struct {
	// BaseURL of the Offers service. Defaults to DefaultBaseURL.
	BaseURL string
	// TransportKind selects the HTTP backend. Defaults to transport.KindResty.
	TransportKind string
	// Logging enables per-request log files under LogDir.
	Logging bool
	LogDir  string
	// Logger receives informational notices (soft outcomes, token refreshes).
	Logger Logger
	// Registry resolves TransportKind. Defaults to transport.DefaultRegistry.
	Registry transport.Registry
}

// Client talks to the Offers service. It owns access-token lifecycle: every
// authenticated operation goes through ensureValid, which refreshes the token
// exactly when the local validity window has lapsed.
type Client struct {
	baseURL       string
	refreshToken  string
	transportKind string
	transport     transport.Transport
	logging       bool
	logDir        string
	log           Logger
	now           func() time.Time

	// mu guards the token pair. Token and expiry are only ever written
	// together; concurrent ensureValid calls collapse into one refresh.
	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New constructs a Client for the given refresh token. The transport kind is
// resolved eagerly: an unsupported kind fails with ErrConfiguration before
// any network call.
func New(refreshToken string, cfg Config) (*Client, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token is empty", ErrConfiguration)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TransportKind == "" {
		cfg.TransportKind = transport.KindResty
	}
	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
	reg := cfg.Registry
	if reg == nil {
		reg = transport.DefaultRegistry()
	}

	tr, err := reg.New(cfg.TransportKind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		refreshToken:  refreshToken,
		transportKind: strings.TrimSpace(strings.ToLower(cfg.TransportKind)),
		transport:     tr,
		logging:       cfg.Logging,
		logDir:        cfg.LogDir,
		log:           ensureLogger(cfg.Logger),
		now:           time.Now,
	}, nil
}

// TransportKind reports the configured backend.
func (c *Client) TransportKind() string { return c.transportKind }

// RetrieveAccessToken exchanges the refresh token for a fresh access token.
// Most callers never need this directly; authenticated operations refresh on
// demand.
func (c *Client) RetrieveAccessToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

// ensureValid refreshes the access token when it is missing or past its
// local validity window. The mutex serializes concurrent refreshes: every
// caller returns with a valid token or the propagated auth error.
func (c *Client) ensureValid(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return nil
	}
	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) error {
	url := c.baseURL + authPath
	headers := c.bearerHeaders(c.refreshToken)

	// The auth bootstrap is the one deliberately blocking call: nothing else
	// can proceed without it.
	env := c.transport.Post(ctx, url, nil, headers)
	c.logRequest("auth", url, headers, nil, env)

	switch env.StatusCode {
	case 201:
		token, ok := env.StringField("access_token")
		if !ok {
			return fmt.Errorf("%w: auth response missing access_token: %v", ErrAPI, env.Data)
		}
		// Token and expiry move together, never independently.
		c.accessToken = token
		c.tokenExpiry = c.now().Add(accessTokenTTL)
		c.log.DebugObj("access token refreshed", "token_expiry", c.tokenExpiry)
		return nil
	case 400:
		return fmt.Errorf("%w: HTTP 400: %v", ErrInvalidRequest, env.Data)
	case 401:
		return errAuthStatus(env)
	case 422:
		return errContractStatus(env)
	default:
		return errUnknownStatus(env)
	}
}

// snapshotToken returns the current token pair under the lock.
func (c *Client) snapshotToken() (string, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.tokenExpiry
}

// bearerHeaders builds the non-standard auth headers the Offers service
// expects: the raw token under a "Bearer" key, not the Authorization scheme.
func (c *Client) bearerHeaders(token string) map[string]string {
	return map[string]string{
		"accept": "application/json",
		"Bearer": token,
	}
}

// accessHeaders returns headers carrying the current access token.
func (c *Client) accessHeaders() map[string]string {
	token, _ := c.snapshotToken()
	return c.bearerHeaders(token)
}

func errAuthStatus(env transport.Envelope) error {
	return fmt.Errorf("%w: HTTP 401: %v", ErrAuth, env.Data)
}

func errContractStatus(env transport.Envelope) error {
	// The client never sends requests that can legitimately fail validation,
	// so a 422 means the upstream contract shifted underneath us.
	return fmt.Errorf("%w: HTTP 422: %v", ErrContractViolation, env.Data)
}

func errUnknownStatus(env transport.Envelope) error {
	return fmt.Errorf("%w: unhandled status %d: %v", ErrAPI, env.StatusCode, env.Data)
}
