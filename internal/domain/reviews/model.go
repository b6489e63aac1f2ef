package reviews

import (
	"strings"
	"unicode/utf8"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/platform/validation"
)

const (
	MinStars         = 1
	MaxStars         = 5
	MinCommentLength = 10
	MaxCommentLength = 500
)

type Review struct {
	ID           int                 `json:"id"`
	Stars        int                 `json:"estrellas"`
	Comment      string              `json:"comentario"`
	CreatedAt    string              `json:"fechaCreacion"`
	User         *UserSummary        `json:"usuario,omitempty"`
	Veterinarian *VetSummary         `json:"veterinario,omitempty"`
	Appointment  *AppointmentSummary `json:"cita,omitempty"`
}

// AppointmentID devuelve 0 si la reseña no trae la cita embebida.
func (r Review) AppointmentID() int {
	if r.Appointment == nil {
		return 0
	}
	return r.Appointment.ID
}

type UserSummary struct {
	ID        int     `json:"id"`
	FirstName string  `json:"nombre"`
	LastName  *string `json:"apellido,omitempty"`
}

type VetSummary struct {
	ID        int     `json:"id"`
	Name      string  `json:"nombre"`
	Specialty *string `json:"especialidad,omitempty"`
}

type AppointmentSummary struct {
	ID       int     `json:"id"`
	DateTime *string `json:"fechaHora,omitempty"`
}

// Request es el body de POST /api/resenas.
type Request struct {
	AppointmentID int    `json:"citaId" validate:"gt=0"`
	Stars         int    `json:"estrellas" validate:"gte=1,lte=5"`
	Comment       string `json:"comentario" validate:"required"`
}

func (r Request) Normalize() Request {
	r.Comment = strings.TrimSpace(r.Comment)
	return r
}

// Validate aplica una única política: 1..5 estrellas y comentario de 10 a 500 caracteres.
func (r Request) Validate() error {
	r = r.Normalize()
	if err := validation.Struct(r); err != nil {
		return err
	}
	n := utf8.RuneCountInString(r.Comment)
	if n < MinCommentLength {
		return validation.Field("comentario", "min", "10")
	}
	if n > MaxCommentLength {
		return validation.Field("comentario", "max", "500")
	}
	return nil
}

// Reviewable filtra las citas que admiten reseña: completadas, del
// veterinario indicado (vetID 0 = cualquiera) y sin reseña ya registrada.
func Reviewable(citas []appointments.Appointment, existing []Review, vetID int) []appointments.Appointment {
	reviewed := make(map[int]struct{}, len(existing))
	for _, r := range existing {
		if id := r.AppointmentID(); id != 0 {
			reviewed[id] = struct{}{}
		}
	}

	out := make([]appointments.Appointment, 0)
	for _, c := range citas {
		if !c.State().CanReview() {
			continue
		}
		if vetID != 0 && c.VeterinarianID != vetID {
			continue
		}
		if c.ReviewText != nil && strings.TrimSpace(*c.ReviewText) != "" {
			continue
		}
		if _, ok := reviewed[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
