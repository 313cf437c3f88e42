package transport

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// Resty adapts resty.Client to the Transport interface.
type Resty struct {
	client *resty.Client
}

// NewResty creates a resty-backed transport.
func NewResty() *Resty {
	return &Resty{client: resty.New()}
}

// Kind identifies the backend.
func (t *Resty) Kind() string { return KindResty }

// Get performs an HTTP GET and captures the outcome into an envelope.
func (t *Resty) Get(ctx context.Context, url string, params, headers map[string]string) Envelope {
	req := t.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return FailureEnvelope(err)
	}
	return NewEnvelope(resp.Body(), resp.StatusCode())
}

// Post performs an HTTP POST with a JSON body and captures the outcome into
// an envelope.
func (t *Resty) Post(ctx context.Context, url string, body any, headers map[string]string) Envelope {
	req := t.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body == nil {
		body = map[string]any{}
	}
	req.SetHeader("Content-Type", "application/json")
	req.SetBody(body)

	resp, err := req.Post(url)
	if err != nil {
		return FailureEnvelope(err)
	}
	return NewEnvelope(resp.Body(), resp.StatusCode())
}
