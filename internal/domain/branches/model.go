package branches

// Branch es una sucursal. Solo lectura desde el cliente.
type Branch struct {
	ID            int            `json:"id"`
	Name          string         `json:"nombre"`
	Address       string         `json:"direccion"`
	Phone         string         `json:"telefono"`
	BusinessHours string         `json:"horarioAtencion"`
	Services      *string        `json:"serviciosDisponibles,omitempty"`
	City          *string        `json:"ciudad,omitempty"`
	Active        *bool          `json:"activo,omitempty"`
	Veterinarians []Veterinarian `json:"veterinarios,omitempty"`
}

// IsActive trata la ausencia del campo como activa.
func (b Branch) IsActive() bool {
	return b.Active == nil || *b.Active
}

// Veterinarian pertenece a exactamente una sucursal.
type Veterinarian struct {
	ID           int      `json:"id"`
	Name         string   `json:"nombre"`
	Email        string   `json:"email"`
	Phone        string   `json:"telefono"`
	Specialty    string   `json:"especialidad"`
	License      string   `json:"licencia"`
	BranchID     int      `json:"sucursalId"`
	AvgRating    *float64 `json:"promResenas,omitempty"`
	TotalReviews *int     `json:"totalResenas,omitempty"`
}

func (v Veterinarian) BelongsTo(branchID int) bool {
	return v.BranchID == branchID
}
