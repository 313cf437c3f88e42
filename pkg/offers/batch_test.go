package offers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

var productB = uuid.MustParse("44444444-4444-4444-8444-444444444444")

func TestOffersBatchPreservesPositionalOrder(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, authHandler(&calls, testToken))
	mux.HandleFunc("/api/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		// A answers slowly with two offers, B instantly with 404, so
		// completion order is the reverse of input order.
		if strings.Contains(r.URL.Path, productA.String()) {
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `[
				{"id":%q,"price":100,"items_in_stock":1},
				{"id":%q,"price":200,"items_in_stock":2}
			]`, offer1, offer2)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"not registered"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	results, err := c.OffersBatch(context.Background(), []uuid.UUID{productA, productB})
	if err != nil {
		t.Fatalf("OffersBatch: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if len(results[0]) != 2 || results[0][0].ID != offer1 || results[0][1].ID != offer2 {
		t.Fatalf("results[0] = %v", results[0])
	}
	if results[1] == nil || len(results[1]) != 0 {
		t.Fatalf("results[1] = %v, want empty slice", results[1])
	}
}

func TestOffersBatchSharesOneToken(t *testing.T) {
	var authCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, authHandler(&authCalls, testToken))
	mux.HandleFunc("/api/v1/products/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ids := []uuid.UUID{productA, productB, productA, productB}
	if _, err := c.OffersBatch(context.Background(), ids); err != nil {
		t.Fatalf("OffersBatch: %v", err)
	}
	if n := authCalls.Load(); n != 1 {
		t.Fatalf("auth calls = %d, want 1", n)
	}
}

func TestRegisterProductsMixedOutcomes(t *testing.T) {
	newProduct := testProduct()
	existing := Product{ID: productB, Name: "Old", Description: "already there"}

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, authHandler(&calls, testToken))
	mux.HandleFunc(registerPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		decodeJSONBody(t, r, &body)
		if body["id"] == existing.ID.String() {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"detail":"exists"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%q}`, body["id"])
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	outcomes, err := c.RegisterProducts(context.Background(), []Product{newProduct, existing})
	if err != nil {
		t.Fatalf("RegisterProducts: %v", err)
	}
	if outcomes[0] != OutcomeRegistered {
		t.Fatalf("outcomes[0] = %v", outcomes[0])
	}
	if outcomes[1] != OutcomeAlreadyRegistered {
		t.Fatalf("outcomes[1] = %v", outcomes[1])
	}
}

func TestRegisterProductsCollectsErrors(t *testing.T) {
	good := testProduct()
	bad := Product{ID: productB, Name: "Bad", Description: "rejected"}

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(authPath, authHandler(&calls, testToken))
	mux.HandleFunc(registerPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		decodeJSONBody(t, r, &body)
		if body["id"] == bad.ID.String() {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"detail":"invalid"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%q}`, body["id"])
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	outcomes, err := c.RegisterProducts(context.Background(), []Product{good, bad})
	if err == nil {
		t.Fatal("expected joined error for rejected product")
	}
	if outcomes[0] != OutcomeRegistered {
		t.Fatalf("outcomes[0] = %v, want registered", outcomes[0])
	}
	if !strings.Contains(err.Error(), bad.ID.String()) {
		t.Fatalf("error does not name failed product: %v", err)
	}
}
