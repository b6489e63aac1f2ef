package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/domain/reviews"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadCredential = errors.New("invalid credentials")
	ErrConflict      = errors.New("conflict")
)

type userRecord struct {
	auth.User
	passwordHash []byte
}

// store es el estado en memoria del backend falso. Todos los métodos toman mu.
type store struct {
	mu sync.Mutex

	nextID int

	users        map[int]userRecord
	usersByEmail map[string]int
	pets         map[int]pets.Pet
	branches     map[int]branches.Branch
	vets         map[int]branches.Veterinarian
	citas        map[int]appointments.Appointment
	reviews      map[int]reviews.Review
}

func newStore() *store {
	return &store{
		nextID:       1,
		users:        map[int]userRecord{},
		usersByEmail: map[string]int{},
		pets:         map[int]pets.Pet{},
		branches:     map[int]branches.Branch{},
		vets:         map[int]branches.Veterinarian{},
		citas:        map[int]appointments.Appointment{},
		reviews:      map[int]reviews.Review{},
	}
}

func (s *store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

// ==================== USUARIOS ====================

func (s *store) createUser(u auth.User, hash []byte) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.usersByEmail[key]; ok {
		return auth.User{}, ErrEmailTaken
	}
	u.ID = s.id()
	s.users[u.ID] = userRecord{User: u, passwordHash: hash}
	s.usersByEmail[key] = u.ID
	return u, nil
}

func (s *store) userByEmail(email string) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.usersByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return userRecord{}, false
	}
	return s.users[id], true
}

// ==================== MASCOTAS ====================

func (s *store) listPets(ownerID int) []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]pets.Pet, 0)
	for _, p := range s.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) getPet(ownerID, id int) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownedPet(ownerID, id)
}

func (s *store) ownedPet(ownerID, id int) (pets.Pet, error) {
	p, ok := s.pets[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	if p.OwnerID != ownerID {
		return pets.Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *store) savePet(ownerID, id int, in pets.Request) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != 0 {
		if _, err := s.ownedPet(ownerID, id); err != nil {
			return pets.Pet{}, err
		}
	} else {
		id = s.id()
	}
	p := pets.Pet{
		ID:       id,
		Name:     in.Name,
		Species:  in.Species,
		Breed:    in.Breed,
		Age:      in.Age,
		Weight:   in.Weight,
		Color:    in.Color,
		Vaccines: in.Vaccines,
		Allergy:  in.Allergy,
		OwnerID:  ownerID,
	}
	s.pets[id] = p
	return p, nil
}

func (s *store) deletePet(ownerID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedPet(ownerID, id); err != nil {
		return err
	}
	delete(s.pets, id)
	return nil
}

// ==================== SUCURSALES ====================

func (s *store) addBranch(b branches.Branch) branches.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	b.Veterinarians = nil
	s.branches[b.ID] = b
	return b
}

func (s *store) addVeterinarian(v branches.Veterinarian) (branches.Veterinarian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.branches[v.BranchID]; !ok {
		return branches.Veterinarian{}, ErrNotFound
	}
	v.ID = s.id()
	s.vets[v.ID] = v
	return v, nil
}

func (s *store) listBranches() []branches.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]branches.Branch, 0, len(s.branches))
	for _, b := range s.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// getBranch devuelve la sucursal con sus veterinarios embebidos.
func (s *store) getBranch(id int) (branches.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.branches[id]
	if !ok {
		return branches.Branch{}, ErrNotFound
	}
	b.Veterinarians = s.branchVets(id)
	return b, nil
}

func (s *store) listBranchVets(branchID int) ([]branches.Veterinarian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.branches[branchID]; !ok {
		return nil, ErrNotFound
	}
	return s.branchVets(branchID), nil
}

func (s *store) branchVets(branchID int) []branches.Veterinarian {
	out := make([]branches.Veterinarian, 0)
	for _, v := range s.vets {
		if v.BranchID == branchID {
			out = append(out, s.withRating(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) withRating(v branches.Veterinarian) branches.Veterinarian {
	total, sum := 0, 0
	for _, r := range s.reviews {
		if r.Veterinarian != nil && r.Veterinarian.ID == v.ID {
			total++
			sum += r.Stars
		}
	}
	v.TotalReviews = &total
	if total > 0 {
		avg := float64(sum) / float64(total)
		v.AvgRating = &avg
	}
	return v
}

// ==================== CITAS ====================

func (s *store) listCitas(userID int) []appointments.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]appointments.Appointment, 0)
	for _, a := range s.citas {
		if a.UserID == userID {
			out = append(out, s.decorate(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) getCita(userID, id int) (appointments.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.ownedCita(userID, id)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return s.decorate(a), nil
}

func (s *store) ownedCita(userID, id int) (appointments.Appointment, error) {
	a, ok := s.citas[id]
	if !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	if a.UserID != userID {
		return appointments.Appointment{}, ErrForbidden
	}
	return a, nil
}

// createCita valida referencias: mascota propia, veterinario de la sucursal.
func (s *store) createCita(userID int, in appointments.Request) (appointments.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedPet(userID, in.PetID); err != nil {
		return appointments.Appointment{}, err
	}
	if _, ok := s.branches[in.BranchID]; !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	v, ok := s.vets[in.VeterinarianID]
	if !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	if v.BranchID != in.BranchID {
		return appointments.Appointment{}, ErrConflict
	}

	a := appointments.Appointment{
		ID:             s.id(),
		PetID:          in.PetID,
		BranchID:       in.BranchID,
		VeterinarianID: in.VeterinarianID,
		UserID:         userID,
		DateTime:       in.DateTime,
		Reason:         in.Reason,
		ClientMessage:  in.ClientMessage,
		Status:         appointments.StatusPending,
	}
	s.citas[a.ID] = a
	return s.decorate(a), nil
}

func (s *store) cancelCita(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.ownedCita(userID, id)
	if err != nil {
		return err
	}
	if !a.State().CanCancel() {
		return ErrConflict
	}
	a.Status = appointments.StatusCancelled
	s.citas[id] = a
	return nil
}

func (s *store) setStatus(id int, st appointments.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.citas[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = st
	s.citas[id] = a
	return nil
}

// decorate completa los nombres desnormalizados para display.
func (s *store) decorate(a appointments.Appointment) appointments.Appointment {
	if p, ok := s.pets[a.PetID]; ok {
		a.PetName = p.Name
	}
	if v, ok := s.vets[a.VeterinarianID]; ok {
		a.VeterinarianName = v.Name
		if v.Specialty != "" {
			spec := v.Specialty
			a.VeterinarianSpecialty = &spec
		}
	}
	if b, ok := s.branches[a.BranchID]; ok {
		a.BranchName = b.Name
	}
	return a
}

// ==================== RESEÑAS ====================

// createReview: solo citas propias COMPLETADA y una reseña por cita.
func (s *store) createReview(userID int, in reviews.Request, now time.Time) (reviews.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedCita(userID, in.AppointmentID)
	if err != nil {
		return reviews.Review{}, err
	}
	if !a.State().CanReview() || a.ReviewText != nil {
		return reviews.Review{}, ErrConflict
	}
	for _, r := range s.reviews {
		if r.AppointmentID() == a.ID {
			return reviews.Review{}, ErrConflict
		}
	}

	u := s.users[userID]
	lastName := u.LastName
	dt := a.DateTime
	r := reviews.Review{
		ID:          s.id(),
		Stars:       in.Stars,
		Comment:     in.Comment,
		CreatedAt:   appointments.FormatDateTime(now),
		User:        &reviews.UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: &lastName},
		Appointment: &reviews.AppointmentSummary{ID: a.ID, DateTime: &dt},
	}
	if v, ok := s.vets[a.VeterinarianID]; ok {
		spec := v.Specialty
		r.Veterinarian = &reviews.VetSummary{ID: v.ID, Name: v.Name, Specialty: &spec}
	}
	s.reviews[r.ID] = r

	comment := in.Comment
	a.ReviewText = &comment
	s.citas[a.ID] = a
	return r, nil
}

func (s *store) listVetReviews(vetID int) ([]reviews.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vets[vetID]; !ok {
		return nil, ErrNotFound
	}
	out := make([]reviews.Review, 0)
	for _, r := range s.reviews {
		if r.Veterinarian != nil && r.Veterinarian.ID == vetID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
