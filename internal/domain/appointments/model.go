package appointments

import (
	"encoding/json"
	"strings"

	"vet-booking-client/internal/platform/validation"
)

type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCompleted Status = "COMPLETADA"
	StatusCancelled Status = "CANCELADA"
)

// ParseStatus normaliza mayúsculas/espacios; acepta también los nombres en inglés.
func ParseStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDIENTE", "PENDING":
		return StatusPending
	case "CONFIRMADA", "CONFIRMED":
		return StatusConfirmed
	case "COMPLETADA", "COMPLETED":
		return StatusCompleted
	case "CANCELADA", "CANCELLED", "CANCELED":
		return StatusCancelled
	default:
		return Status(strings.ToUpper(strings.TrimSpace(s)))
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel: el cliente solo pide cancelar citas pendientes o confirmadas.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanReview: solo citas completadas admiten reseña.
func (s Status) CanReview() bool {
	return s == StatusCompleted
}

// Appointment unifica las dos formas que devolvía el backend (ids + nombres
// desnormalizados). Los ids son la referencia; los nombres son solo display.
type Appointment struct {
	ID             int     `json:"id"`
	PetID          int     `json:"mascotaId"`
	BranchID       int     `json:"sucursalId"`
	VeterinarianID int     `json:"veterinarioId"`
	UserID         int     `json:"usuarioId"`
	DateTime       string  `json:"fechaHora"`
	Reason         string  `json:"motivoCita"`
	ClientMessage  *string `json:"mensajeCliente,omitempty"`
	Status         Status  `json:"estado"`
	Diagnosis      *string `json:"diagnostico,omitempty"`
	Treatment      *string `json:"tratamiento,omitempty"`
	Notes          *string `json:"observaciones,omitempty"`
	ReviewText     *string `json:"resenaVeterinario,omitempty"`

	PetName               string  `json:"mascotaNombre,omitempty"`
	VeterinarianName      string  `json:"veterinarioNombre,omitempty"`
	VeterinarianSpecialty *string `json:"veterinarioEspecialidad,omitempty"`
	BranchName            string  `json:"sucursalNombre,omitempty"`
}

type ref struct {
	ID        int     `json:"id"`
	Name      string  `json:"nombre"`
	Specialty *string `json:"especialidad"`
}

// UnmarshalJSON acepta también la forma de listado/detalle, que trae el motivo
// como "motivo", y las entidades anidadas mascota/veterinario/sucursal.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	type plain Appointment
	var w struct {
		plain
		Motivo      *string `json:"motivo"`
		Mascota     *ref    `json:"mascota"`
		Veterinario *ref    `json:"veterinario"`
		Sucursal    *ref    `json:"sucursal"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := Appointment(w.plain)
	if out.Reason == "" && w.Motivo != nil {
		out.Reason = *w.Motivo
	}
	if m := w.Mascota; m != nil {
		out.PetID = orInt(out.PetID, m.ID)
		out.PetName = orString(out.PetName, m.Name)
	}
	if v := w.Veterinario; v != nil {
		out.VeterinarianID = orInt(out.VeterinarianID, v.ID)
		out.VeterinarianName = orString(out.VeterinarianName, v.Name)
		if out.VeterinarianSpecialty == nil {
			out.VeterinarianSpecialty = v.Specialty
		}
	}
	if b := w.Sucursal; b != nil {
		out.BranchID = orInt(out.BranchID, b.ID)
		out.BranchName = orString(out.BranchName, b.Name)
	}
	*a = out
	return nil
}

func orInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func orString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// State devuelve el estado normalizado.
func (a Appointment) State() Status {
	return ParseStatus(string(a.Status))
}

// Request es el body de POST /api/citas.
type Request struct {
	PetID          int     `json:"mascotaId" validate:"gt=0"`
	BranchID       int     `json:"sucursalId" validate:"gt=0"`
	VeterinarianID int     `json:"veterinarioId" validate:"gt=0"`
	DateTime       string  `json:"fechaHora" validate:"required"`
	Reason         string  `json:"motivoCita" validate:"required"`
	ClientMessage  *string `json:"mensajeCliente"`
}

func (r Request) Normalize() Request {
	r.DateTime = strings.TrimSpace(r.DateTime)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.ClientMessage != nil {
		msg := strings.TrimSpace(*r.ClientMessage)
		if msg == "" {
			r.ClientMessage = nil
		} else {
			r.ClientMessage = &msg
		}
	}
	return r
}

// Validate exige ids, motivo y una fecha con formato canónico.
func (r Request) Validate() error {
	r = r.Normalize()
	if err := validation.Struct(r); err != nil {
		return err
	}
	if _, err := ParseDateTime(r.DateTime); err != nil {
		return validation.Field("fechaHora", "datetime", DateTimeLayout)
	}
	return nil
}
