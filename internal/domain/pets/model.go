package pets

import (
	"strings"

	"vet-booking-client/internal/platform/validation"
)

// Pet es la mascota tal como la devuelve GET /api/mascotas.
// Edad es texto libre ("2 años", "6 meses").
type Pet struct {
	ID       int     `json:"id"`
	Name     string  `json:"nombre"`
	Species  string  `json:"especie"`
	Breed    string  `json:"raza"`
	Age      string  `json:"edad"`
	Weight   float64 `json:"peso"`
	Color    string  `json:"color"`
	Vaccines *string `json:"vacunas,omitempty"`
	Allergy  *string `json:"alergias,omitempty"`
	OwnerID  int     `json:"usuarioId"`
}

// Request es el body de POST/PUT /api/mascotas.
type Request struct {
	Name     string  `json:"nombre" validate:"required"`
	Species  string  `json:"especie" validate:"required"`
	Breed    string  `json:"raza" validate:"required"`
	Age      string  `json:"edad" validate:"required"`
	Weight   float64 `json:"peso" validate:"gt=0"`
	Color    string  `json:"color" validate:"required"`
	Vaccines *string `json:"vacunas"`
	Allergy  *string `json:"alergias"`
}

// Normalize recorta espacios y convierte opcionales vacíos en nil.
func (r Request) Normalize() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Species = strings.TrimSpace(r.Species)
	r.Breed = strings.TrimSpace(r.Breed)
	r.Age = strings.TrimSpace(r.Age)
	r.Color = strings.TrimSpace(r.Color)
	r.Vaccines = optional(r.Vaccines)
	r.Allergy = optional(r.Allergy)
	return r
}

func (r Request) Validate() error {
	return validation.Struct(r.Normalize())
}

// RequestFrom arma un Request para editar una mascota existente.
func RequestFrom(p Pet) Request {
	return Request{
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      p.Age,
		Weight:   p.Weight,
		Color:    p.Color,
		Vaccines: p.Vaccines,
		Allergy:  p.Allergy,
	}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
