package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"vet-booking-client/internal/adapters/vetapi"
)

func TestBearerHeader(t *testing.T) {
	cases := map[string]string{
		"abc":         "Bearer abc",
		" abc ":       "Bearer abc",
		"Bearer abc":  "Bearer abc",
		"bearer  abc": "Bearer abc",
		"BEARER abc":  "Bearer abc",
		"Bearerabc":   "Bearer Bearerabc",
	}
	for in, want := range cases {
		got, err := BearerHeader(in)
		if err != nil || got != want {
			t.Fatalf("BearerHeader(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, in := range []string{"", "   ", "Bearer ", "Bearer    "} {
		if _, err := BearerHeader(in); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("BearerHeader(%q) expected ErrMissingToken, got %v", in, err)
		}
	}
}

func TestRepository_AttachesSingleBearerPrefix(t *testing.T) {
	var got atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	api, err := vetapi.NewWithHTTP(ts.URL, ts.Client())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	repo := New(api)

	for _, token := range []string{"abc", "Bearer abc"} {
		if _, err := repo.ListPets(context.Background(), token); err != nil {
			t.Fatalf("list pets: %v", err)
		}
		if h := got.Load().(string); h != "Bearer abc" {
			t.Fatalf("token %q sent header %q", token, h)
		}
	}
}

func TestRepository_MissingTokenSkipsNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	api, _ := vetapi.NewWithHTTP(ts.URL, ts.Client())
	repo := New(api)

	if err := repo.CancelAppointment(context.Background(), "", 1); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestRepository_PublicEndpointsSendNoAuthorization(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization on %s", r.URL.Path)
		}
		if r.URL.Path != "/api/sucursales/4/veterinarios" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Dra. Soto","sucursalId":4}]`))
	}))
	defer ts.Close()

	api, _ := vetapi.NewWithHTTP(ts.URL, ts.Client())
	vets, err := New(api).ListBranchVeterinarians(context.Background(), 4)
	if err != nil {
		t.Fatalf("list vets: %v", err)
	}
	if len(vets) != 1 || vets[0].BranchID != 4 {
		t.Fatalf("unexpected vets: %+v", vets)
	}
}
