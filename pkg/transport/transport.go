package transport

import (
	"context"
	"encoding/json"
)

// Package transport provides the HTTP backend abstraction for the Offers SDK.

// FailureStatus is the sentinel status code reported when a request never
// produced an HTTP response (DNS failure, connection refused, broken pipe).
const FailureStatus = 500

// Envelope is the uniform result of every transport call. Transports never
// return errors: network-level failures are captured as an envelope with
// FailureStatus and an "error" entry in Data.
type Envelope struct {
	Data       any
	StatusCode int
}

// Transport abstracts HTTP calls so the client can swap backends.
type Transport interface {
	Kind() string
	Get(ctx context.Context, url string, params, headers map[string]string) Envelope
	Post(ctx context.Context, url string, body any, headers map[string]string) Envelope
}

// NewEnvelope builds an envelope from a raw response body and status code.
// Unparsable or empty bodies degrade to an empty object.
func NewEnvelope(body []byte, statusCode int) Envelope {
	return Envelope{Data: parseBody(body), StatusCode: statusCode}
}

// FailureEnvelope builds the envelope reported for network-level failures.
func FailureEnvelope(err error) Envelope {
	msg := "unknown transport failure"
	if err != nil {
		msg = err.Error()
	}
	return Envelope{
		Data:       map[string]any{"error": msg},
		StatusCode: FailureStatus,
	}
}

// StringField extracts a string value from mapping-shaped envelope data.
func (e Envelope) StringField(key string) (string, bool) {
	m, ok := e.Data.(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := m[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// List returns the envelope data as a list, if it is one.
func (e Envelope) List() ([]any, bool) {
	l, ok := e.Data.([]any)
	return l, ok
}

func parseBody(body []byte) any {
	if len(body) == 0 {
		return map[string]any{}
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]any{}
	}
	if data == nil {
		return map[string]any{}
	}
	return data
}
