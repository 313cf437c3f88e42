package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// NetHTTP implements Transport on the standard library's http.Client.
type NetHTTP struct {
	client *http.Client
}

// NewNetHTTP creates a net/http-backed transport.
func NewNetHTTP() *NetHTTP {
	return &NetHTTP{client: &http.Client{}}
}

// Kind identifies the backend.
func (t *NetHTTP) Kind() string { return KindNetHTTP }

// Get performs an HTTP GET and captures the outcome into an envelope.
func (t *NetHTTP) Get(ctx context.Context, rawURL string, params, headers map[string]string) Envelope {
	target, err := withQuery(rawURL, params)
	if err != nil {
		return FailureEnvelope(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return FailureEnvelope(err)
	}
	applyHeaders(req, headers)

	return t.do(req)
}

// Post performs an HTTP POST with a JSON body and captures the outcome into
// an envelope.
func (t *NetHTTP) Post(ctx context.Context, rawURL string, body any, headers map[string]string) Envelope {
	if body == nil {
		body = map[string]any{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return FailureEnvelope(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return FailureEnvelope(err)
	}
	applyHeaders(req, headers)
	req.Header.Set("Content-Type", "application/json")

	return t.do(req)
}

func (t *NetHTTP) do(req *http.Request) Envelope {
	resp, err := t.client.Do(req)
	if err != nil {
		return FailureEnvelope(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FailureEnvelope(err)
	}
	return NewEnvelope(raw, resp.StatusCode)
}

func withQuery(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
