package transport

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewEnvelopeParsesObject(t *testing.T) {
	env := NewEnvelope([]byte(`{"access_token":"abc","n":1}`), 201)
	if env.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", env.StatusCode)
	}
	token, ok := env.StringField("access_token")
	if !ok || token != "abc" {
		t.Fatalf("StringField = %q, %v", token, ok)
	}
}

func TestNewEnvelopeParsesList(t *testing.T) {
	env := NewEnvelope([]byte(`[{"id":"x"},{"id":"y"}]`), 200)
	list, ok := env.List()
	if !ok || len(list) != 2 {
		t.Fatalf("List = %v, %v", list, ok)
	}
}

func TestNewEnvelopeDegradesToEmptyObject(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"not json":  []byte("<html>oops</html>"),
		"json null": []byte("null"),
	}
	for name, body := range cases {
		env := NewEnvelope(body, 204)
		if !reflect.DeepEqual(env.Data, map[string]any{}) {
			t.Errorf("%s: data = %#v, want empty map", name, env.Data)
		}
	}
}

func TestFailureEnvelope(t *testing.T) {
	env := FailureEnvelope(errors.New("connection refused"))
	if env.StatusCode != FailureStatus {
		t.Fatalf("status = %d, want %d", env.StatusCode, FailureStatus)
	}
	msg, ok := env.StringField("error")
	if !ok || msg != "connection refused" {
		t.Fatalf("error field = %q, %v", msg, ok)
	}
}

func TestStringFieldOnNonMapping(t *testing.T) {
	env := NewEnvelope([]byte(`[1,2,3]`), 200)
	if _, ok := env.StringField("anything"); ok {
		t.Fatal("expected no string field on list data")
	}
}
