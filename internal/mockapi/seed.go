package mockapi

import "vet-booking-client/internal/domain/branches"

func strPtr(s string) *string { return &s }

func (s *Server) seed() {
	centro := s.store.addBranch(branches.Branch{
		Name:          "Sucursal Centro",
		Address:       "Av. Principal 123",
		Phone:         "555-0100",
		BusinessHours: "Lun a Vie 9:00-18:00",
		Services:      strPtr("Consulta, Vacunación, Cirugía"),
		City:          strPtr("Ciudad de México"),
	})
	norte := s.store.addBranch(branches.Branch{
		Name:          "Sucursal Norte",
		Address:       "Calle Norte 45",
		Phone:         "555-0200",
		BusinessHours: "Lun a Sáb 10:00-20:00",
		Services:      strPtr("Consulta, Estética"),
		City:          strPtr("Monterrey"),
	})

	for _, v := range []branches.Veterinarian{
		{Name: "Dra. Laura Ruiz", Email: "laura.ruiz@vetapp.test", Phone: "555-0101", Specialty: "Medicina general", License: "MV-1001", BranchID: centro.ID},
		{Name: "Dr. Martín Soto", Email: "martin.soto@vetapp.test", Phone: "555-0102", Specialty: "Cirugía", License: "MV-1002", BranchID: centro.ID},
		{Name: "Dra. Sofía Paredes", Email: "sofia.paredes@vetapp.test", Phone: "555-0201", Specialty: "Dermatología", License: "MV-2001", BranchID: norte.ID},
	} {
		_, _ = s.store.addVeterinarian(v)
	}
}
