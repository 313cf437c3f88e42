package offers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

func testProduct() Product {
	return Product{
		ID:          uuid.MustParse("ad4c8529-0804-4053-a8d7-5e8b972422c7"),
		Name:        "Widget",
		Description: "A widget",
	}
}

// registerServer serves auth plus a register endpoint with the given handler.
func registerServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, authHandler(&calls, testToken))
	mux.HandleFunc(registerPath, handler)
	return httptest.NewServer(mux)
}

func TestRegisterProductSuccess(t *testing.T) {
	product := testProduct()
	srv := registerServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Bearer"); got != testToken {
			t.Errorf("Bearer header = %q, want %q", got, testToken)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["id"] != product.ID.String() || body["name"] != product.Name {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%q}`, body["id"])
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	outcome, err := c.RegisterProduct(context.Background(), product)
	if err != nil {
		t.Fatalf("RegisterProduct: %v", err)
	}
	if outcome != OutcomeRegistered {
		t.Fatalf("outcome = %v, want registered", outcome)
	}
}

func TestRegisterProductIDMismatch(t *testing.T) {
	srv := registerServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"00000000-0000-0000-0000-000000000000"}`)
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.RegisterProduct(context.Background(), testProduct()); !errors.Is(err, ErrAPI) {
		t.Fatalf("err = %v, want ErrAPI", err)
	}
}

func TestRegisterProductTwiceSecondIsSoft(t *testing.T) {
	product := testProduct()
	var registrations atomic.Int32
	srv := registerServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if registrations.Add(1) == 1 {
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"id":%q}`, product.ID)
			return
		}
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"detail":"already exists"}`)
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	first, err := c.RegisterProduct(context.Background(), product)
	if err != nil || first != OutcomeRegistered {
		t.Fatalf("first = %v, %v", first, err)
	}
	second, err := c.RegisterProduct(context.Background(), product)
	if err != nil {
		t.Fatalf("second registration raised: %v", err)
	}
	if second != OutcomeAlreadyRegistered {
		t.Fatalf("second = %v, want already_registered", second)
	}
}

func TestRegisterProductErrorStatuses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"validation error", http.StatusUnprocessableEntity, ErrContractViolation},
		{"teapot", http.StatusTeapot, ErrAPI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := registerServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"detail":"x"}`)
			})
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			if _, err := c.RegisterProduct(context.Background(), testProduct()); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
