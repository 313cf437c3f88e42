package offers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// State is the persistable snapshot of a Client. It is a flat record so it
// round-trips through JSON (and the statestore backends) unchanged.
type State struct {
	BaseURL        string    `json:"base_url"`
	RefreshToken   string    `json:"refresh_token"`
	AccessToken    string    `json:"access_token"`
	TokenExpiry    time.Time `json:"token_expiry"`
	HTTPClientType string    `json:"http_client_type"`
	Logging        bool      `json:"logging"`
	LogDir         string    `json:"log_dir"`
}

// State snapshots the client, including the current token pair, so a later
// invocation can resume inside the token's validity window.
func (c *Client) State() State {
	token, expiry := c.snapshotToken()
	return State{
		BaseURL:        c.baseURL,
		RefreshToken:   c.refreshToken,
		AccessToken:    token,
		TokenExpiry:    expiry,
		HTTPClientType: c.transportKind,
		Logging:        c.logging,
		LogDir:         c.logDir,
	}
}

// FromState restores a client from a snapshot. An unrecognized
// http_client_type fails with ErrConfiguration before any network call.
func FromState(state State, cfg Config) (*Client, error) {
	cfg.BaseURL = state.BaseURL
	cfg.TransportKind = state.HTTPClientType
	cfg.Logging = state.Logging
	cfg.LogDir = state.LogDir

	c, err := New(state.RefreshToken, cfg)
	if err != nil {
		return nil, err
	}

	c.accessToken = state.AccessToken
	c.tokenExpiry = state.TokenExpiry
	return c, nil
}

// Validate checks the parts of a loaded state that must hold before use.
func (s State) Validate() error {
	if strings.TrimSpace(s.RefreshToken) == "" {
		return fmt.Errorf("%w: state has no refresh token", ErrConfiguration)
	}
	return nil
}

// MarshalIndent renders the state as the canonical persisted JSON document.
func (s State) MarshalIndent() ([]byte, error) {
	raw, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal client state: %w", err)
	}
	return raw, nil
}

// ParseState decodes a persisted JSON document.
func ParseState(raw []byte) (State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("parse client state: %w", err)
	}
	return s, nil
}
