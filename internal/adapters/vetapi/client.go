// Package vetapi es el cliente HTTP tipado del backend de la clínica.
// Un método por endpoint; los endpoints autenticados reciben el valor
// completo del header Authorization (lo arma internal/repository).
package vetapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/domain/reviews"
	"vet-booking-client/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("vetapi client not configured")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewWithHTTP permite inyectar un *http.Client (p.ej. el de httptest).
func NewWithHTTP(baseURL string, hc *http.Client) (*Client, error) {
	c, err := NewClient(Config{BaseURL: baseURL})
	if err != nil {
		return nil, err
	}
	if hc != nil {
		c.http.HTTP = hc
	}
	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// -------- AUTH --------

func (c *Client) Register(ctx context.Context, in auth.RegisterRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", in, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, in auth.LoginRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &out)
	return out, err
}

// -------- MASCOTAS --------

func (c *Client) ListPets(ctx context.Context, authorization string) ([]pets.Pet, error) {
	out := []pets.Pet{}
	err := c.do(ctx, http.MethodGet, "/api/mascotas", authorization, nil, &out)
	return out, err
}

func (c *Client) GetPet(ctx context.Context, authorization string, id int) (pets.Pet, error) {
	var out pets.Pet
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/mascotas/%d", id), authorization, nil, &out)
	return out, err
}

func (c *Client) CreatePet(ctx context.Context, authorization string, in pets.Request) (pets.Pet, error) {
	var out pets.Pet
	err := c.do(ctx, http.MethodPost, "/api/mascotas", authorization, in, &out)
	return out, err
}

func (c *Client) UpdatePet(ctx context.Context, authorization string, id int, in pets.Request) (pets.Pet, error) {
	var out pets.Pet
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/mascotas/%d", id), authorization, in, &out)
	return out, err
}

func (c *Client) DeletePet(ctx context.Context, authorization string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/mascotas/%d", id), authorization, nil, nil)
}

// -------- SUCURSALES --------

func (c *Client) ListBranches(ctx context.Context) ([]branches.Branch, error) {
	out := []branches.Branch{}
	err := c.do(ctx, http.MethodGet, "/api/sucursales", "", nil, &out)
	return out, err
}

func (c *Client) GetBranch(ctx context.Context, id int) (branches.Branch, error) {
	var out branches.Branch
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/sucursales/%d", id), "", nil, &out)
	return out, err
}

func (c *Client) ListBranchVeterinarians(ctx context.Context, branchID int) ([]branches.Veterinarian, error) {
	out := []branches.Veterinarian{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/sucursales/%d/veterinarios", branchID), "", nil, &out)
	return out, err
}

// -------- CITAS --------

func (c *Client) ListAppointments(ctx context.Context, authorization string) ([]appointments.Appointment, error) {
	out := []appointments.Appointment{}
	err := c.do(ctx, http.MethodGet, "/api/citas", authorization, nil, &out)
	return out, err
}

func (c *Client) GetAppointment(ctx context.Context, authorization string, id int) (appointments.Appointment, error) {
	var out appointments.Appointment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/citas/%d", id), authorization, nil, &out)
	return out, err
}

func (c *Client) CreateAppointment(ctx context.Context, authorization string, in appointments.Request) (appointments.Appointment, error) {
	var out appointments.Appointment
	err := c.do(ctx, http.MethodPost, "/api/citas", authorization, in, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, authorization string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/citas/%d", id), authorization, nil, nil)
}

// -------- RESEÑAS --------

func (c *Client) CreateReview(ctx context.Context, authorization string, in reviews.Request) (reviews.Review, error) {
	var out reviews.Review
	err := c.do(ctx, http.MethodPost, "/api/resenas", authorization, in, &out)
	return out, err
}

func (c *Client) ListVeterinarianReviews(ctx context.Context, vetID int) ([]reviews.Review, error) {
	out := []reviews.Review{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/resenas/veterinario/%d", vetID), "", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, authorization string, in, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	var headers map[string]string
	if authorization != "" {
		headers = map[string]string{"Authorization": authorization}
	}
	if err := c.http.DoJSON(ctx, method, path, headers, in, out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}
