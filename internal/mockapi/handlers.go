package mockapi

import (
	"net/http"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/domain/reviews"

	"golang.org/x/crypto/bcrypt"
)

// ==================== AUTH ====================

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}
	req = req.Normalize()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u, err := s.store.createUser(auth.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}, hash)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID})
	s.writeSession(w, http.StatusCreated, u, "registro exitoso")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, ok := s.store.userByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeStoreError(w, ErrBadCredential)
		return
	}
	s.writeSession(w, http.StatusOK, u.User, "login exitoso")
}

func (s *Server) writeSession(w http.ResponseWriter, status int, u auth.User, msg string) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, status, auth.LoginResponse{Token: tok, UserID: u.ID, Message: &msg})
}

// ==================== MASCOTAS ====================

func (s *Server) listPets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listPets(userID(r)))
}

func (s *Server) getPet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	p, err := s.store.getPet(userID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	s.savePet(w, r, 0, http.StatusCreated)
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	s.savePet(w, r, id, http.StatusOK)
}

func (s *Server) savePet(w http.ResponseWriter, r *http.Request, id, status int) {
	var req pets.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}
	p, err := s.store.savePet(userID(r), id, req.Normalize())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, status, p)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.deletePet(userID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ==================== SUCURSALES ====================

func (s *Server) listBranches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listBranches())
}

func (s *Server) getBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	b, err := s.store.getBranch(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) listBranchVets(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	items, err := s.store.listBranchVets(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ==================== CITAS ====================

func (s *Server) listCitas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listCitas(userID(r)))
}

func (s *Server) getCita(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	a, err := s.store.getCita(userID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) createCita(w http.ResponseWriter, r *http.Request) {
	var req appointments.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}
	a, err := s.store.createCita(userID(r), req.Normalize())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// cancelCita: 409 si la cita no está PENDIENTE ni CONFIRMADA.
func (s *Server) cancelCita(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.cancelCita(userID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ==================== RESEÑAS ====================

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviews.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}
	rv, err := s.store.createReview(userID(r), req.Normalize(), s.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (s *Server) listVetReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	items, err := s.store.listVetReviews(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
