package transport

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// FastHTTP implements Transport on valyala/fasthttp.
type FastHTTP struct {
	client *fasthttp.Client
}

// NewFastHTTP creates a fasthttp-backed transport.
func NewFastHTTP() *FastHTTP {
	return &FastHTTP{client: &fasthttp.Client{}}
}

// Kind identifies the backend.
func (t *FastHTTP) Kind() string { return KindFastHTTP }

// Get performs an HTTP GET and captures the outcome into an envelope.
func (t *FastHTTP) Get(ctx context.Context, url string, params, headers map[string]string) Envelope {
	if err := ctx.Err(); err != nil {
		return FailureEnvelope(err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(url)
	for k, v := range params {
		req.URI().QueryArgs().Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if err := t.client.Do(req, resp); err != nil {
		return FailureEnvelope(err)
	}
	return envelopeFrom(resp)
}

// Post performs an HTTP POST with a JSON body and captures the outcome into
// an envelope.
func (t *FastHTTP) Post(ctx context.Context, url string, body any, headers map[string]string) Envelope {
	if err := ctx.Err(); err != nil {
		return FailureEnvelope(err)
	}

	if body == nil {
		body = map[string]any{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return FailureEnvelope(err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(url)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := t.client.Do(req, resp); err != nil {
		return FailureEnvelope(err)
	}
	return envelopeFrom(resp)
}

func envelopeFrom(resp *fasthttp.Response) Envelope {
	// Copy the body out: the response buffer is recycled on release.
	raw := append([]byte(nil), resp.Body()...)
	return NewEnvelope(raw, resp.StatusCode())
}
