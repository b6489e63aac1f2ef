// Package repository adapta vetapi para los view-models: recibe el token
// crudo de la sesión y arma el header Authorization. No agrega lógica.
package repository

import (
	"context"
	"errors"
	"strings"

	"vet-booking-client/internal/adapters/vetapi"
	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/domain/reviews"
)

var ErrMissingToken = errors.New("missing session token")

const bearerPrefix = "Bearer "

// BearerHeader es el único lugar donde se antepone "Bearer ". Si el token ya
// venía con prefijo se quita primero, así nunca se envía "Bearer Bearer ...".
func BearerHeader(token string) (string, error) {
	parts := strings.Fields(token)
	if len(parts) > 0 && strings.EqualFold(parts[0], "Bearer") {
		parts = parts[1:]
	}
	token = strings.Join(parts, " ")
	if token == "" {
		return "", ErrMissingToken
	}
	return bearerPrefix + token, nil
}

type Repository struct {
	api *vetapi.Client
}

func New(api *vetapi.Client) *Repository {
	return &Repository{api: api}
}

// -------- AUTH --------

func (r *Repository) Register(ctx context.Context, in auth.RegisterRequest) (auth.LoginResponse, error) {
	return r.api.Register(ctx, in)
}

func (r *Repository) Login(ctx context.Context, in auth.LoginRequest) (auth.LoginResponse, error) {
	return r.api.Login(ctx, in)
}

// -------- MASCOTAS --------

func (r *Repository) ListPets(ctx context.Context, token string) ([]pets.Pet, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return nil, err
	}
	return r.api.ListPets(ctx, h)
}

func (r *Repository) GetPet(ctx context.Context, token string, id int) (pets.Pet, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return pets.Pet{}, err
	}
	return r.api.GetPet(ctx, h, id)
}

func (r *Repository) CreatePet(ctx context.Context, token string, in pets.Request) (pets.Pet, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return pets.Pet{}, err
	}
	return r.api.CreatePet(ctx, h, in)
}

func (r *Repository) UpdatePet(ctx context.Context, token string, id int, in pets.Request) (pets.Pet, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return pets.Pet{}, err
	}
	return r.api.UpdatePet(ctx, h, id, in)
}

func (r *Repository) DeletePet(ctx context.Context, token string, id int) error {
	h, err := BearerHeader(token)
	if err != nil {
		return err
	}
	return r.api.DeletePet(ctx, h, id)
}

// -------- SUCURSALES --------

func (r *Repository) ListBranches(ctx context.Context) ([]branches.Branch, error) {
	return r.api.ListBranches(ctx)
}

func (r *Repository) GetBranch(ctx context.Context, id int) (branches.Branch, error) {
	return r.api.GetBranch(ctx, id)
}

func (r *Repository) ListBranchVeterinarians(ctx context.Context, branchID int) ([]branches.Veterinarian, error) {
	return r.api.ListBranchVeterinarians(ctx, branchID)
}

// -------- CITAS --------

func (r *Repository) ListAppointments(ctx context.Context, token string) ([]appointments.Appointment, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return nil, err
	}
	return r.api.ListAppointments(ctx, h)
}

func (r *Repository) GetAppointment(ctx context.Context, token string, id int) (appointments.Appointment, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return r.api.GetAppointment(ctx, h, id)
}

func (r *Repository) CreateAppointment(ctx context.Context, token string, in appointments.Request) (appointments.Appointment, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return r.api.CreateAppointment(ctx, h, in)
}

func (r *Repository) CancelAppointment(ctx context.Context, token string, id int) error {
	h, err := BearerHeader(token)
	if err != nil {
		return err
	}
	return r.api.CancelAppointment(ctx, h, id)
}

// -------- RESEÑAS --------

func (r *Repository) CreateReview(ctx context.Context, token string, in reviews.Request) (reviews.Review, error) {
	h, err := BearerHeader(token)
	if err != nil {
		return reviews.Review{}, err
	}
	return r.api.CreateReview(ctx, h, in)
}

func (r *Repository) ListVeterinarianReviews(ctx context.Context, vetID int) ([]reviews.Review, error) {
	return r.api.ListVeterinarianReviews(ctx, vetID)
}
