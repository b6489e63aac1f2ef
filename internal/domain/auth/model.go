package auth

import (
	"strings"

	"vet-booking-client/internal/platform/validation"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse lo devuelven tanto /login como /register.
type LoginResponse struct {
	Token   string  `json:"token"`
	UserID  int     `json:"userId"`
	Message *string `json:"message,omitempty"`
}

// RegisterRequest: los seis campos son obligatorios.
type RegisterRequest struct {
	FirstName string `json:"nombre" validate:"required"`
	LastName  string `json:"apellido" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Phone     string `json:"telefono" validate:"required"`
	Address   string `json:"direccion" validate:"required"`
}

func (r RegisterRequest) Normalize() RegisterRequest {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	return r
}

func (r RegisterRequest) Validate() error {
	return validation.Struct(r.Normalize())
}

// DisplayName es lo que se guarda como user_name en la sesión.
func (r RegisterRequest) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	Address   string `json:"direccion"`
}
