package viewmodel

import (
	"context"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/domain/reviews"
	"vet-booking-client/internal/platform/logger"
	"vet-booking-client/internal/platform/observable"
)

type UserRepository interface {
	ListPets(ctx context.Context, token string) ([]pets.Pet, error)
	GetPet(ctx context.Context, token string, id int) (pets.Pet, error)
	CreatePet(ctx context.Context, token string, in pets.Request) (pets.Pet, error)
	UpdatePet(ctx context.Context, token string, id int, in pets.Request) (pets.Pet, error)
	DeletePet(ctx context.Context, token string, id int) error

	ListBranches(ctx context.Context) ([]branches.Branch, error)
	GetBranch(ctx context.Context, id int) (branches.Branch, error)
	ListBranchVeterinarians(ctx context.Context, branchID int) ([]branches.Veterinarian, error)

	ListAppointments(ctx context.Context, token string) ([]appointments.Appointment, error)
	GetAppointment(ctx context.Context, token string, id int) (appointments.Appointment, error)
	CreateAppointment(ctx context.Context, token string, in appointments.Request) (appointments.Appointment, error)
	CancelAppointment(ctx context.Context, token string, id int) error

	CreateReview(ctx context.Context, token string, in reviews.Request) (reviews.Review, error)
	ListVeterinarianReviews(ctx context.Context, vetID int) ([]reviews.Review, error)
}

// BookingForm son los campos de texto del formulario de cita.
type BookingForm struct {
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Reason  string
	Message string
}

// UserState es el snapshot único que renderizan las pantallas de usuario.
// Solo el view-model lo modifica.
type UserState struct {
	IsLoading bool
	Error     string

	Pets          []pets.Pet
	Branches      []branches.Branch
	Veterinarians []branches.Veterinarian
	Appointments  []appointments.Appointment
	Reviews       []reviews.Review

	SelectedPet          *pets.Pet
	SelectedBranch       *branches.Branch
	SelectedVeterinarian *branches.Veterinarian

	Booking BookingForm
}

type UserViewModel struct {
	repo  UserRepository
	log   logger.Logger
	state *observable.Value[UserState]
	life  lifecycle

	// pending cuenta operaciones en vuelo; solo se toca dentro de update.
	pending int
}

func NewUserViewModel(repo UserRepository, log logger.Logger) *UserViewModel {
	if log == nil {
		log = logger.Nop()
	}
	return &UserViewModel{
		repo:  repo,
		log:   log.With(map[string]any{"vm": "user"}),
		state: observable.New(UserState{}),
		life:  newLifecycle(),
	}
}

func (vm *UserViewModel) State() UserState { return vm.state.Get() }

func (vm *UserViewModel) Subscribe() (<-chan UserState, func()) { return vm.state.Subscribe() }

// ==================== MASCOTAS ====================

func (vm *UserViewModel) LoadPets(ctx context.Context, token string) error {
	return vm.run(ctx, "load_pets", func(ctx context.Context) error {
		return vm.fetchPets(ctx, token)
	})
}

func (vm *UserViewModel) fetchPets(ctx context.Context, token string) error {
	items, err := vm.repo.ListPets(ctx, token)
	if err != nil {
		return err
	}
	vm.update(func(s UserState) UserState {
		s.Pets = nonNil(items)
		return s
	})
	return nil
}

// GetPet no toca las listas; devuelve el detalle al llamador.
func (vm *UserViewModel) GetPet(ctx context.Context, token string, id int) (pets.Pet, error) {
	var out pets.Pet
	err := vm.run(ctx, "get_pet", func(ctx context.Context) error {
		p, err := vm.repo.GetPet(ctx, token, id)
		out = p
		return err
	})
	return out, err
}

func (vm *UserViewModel) CreatePet(ctx context.Context, token string, in pets.Request, onSuccess func(pets.Pet)) error {
	if err := in.Validate(); err != nil {
		vm.reject("create_pet", err)
		return err
	}
	return vm.run(ctx, "create_pet", func(ctx context.Context) error {
		p, err := vm.repo.CreatePet(ctx, token, in.Normalize())
		if err != nil {
			return err
		}
		_ = vm.LoadPets(ctx, token)
		call(onSuccess, p)
		return nil
	})
}

func (vm *UserViewModel) UpdatePet(ctx context.Context, token string, id int, in pets.Request, onSuccess func(pets.Pet)) error {
	if err := in.Validate(); err != nil {
		vm.reject("update_pet", err)
		return err
	}
	return vm.run(ctx, "update_pet", func(ctx context.Context) error {
		p, err := vm.repo.UpdatePet(ctx, token, id, in.Normalize())
		if err != nil {
			return err
		}
		_ = vm.LoadPets(ctx, token)
		call(onSuccess, p)
		return nil
	})
}

func (vm *UserViewModel) DeletePet(ctx context.Context, token string, id int, onSuccess func()) error {
	return vm.run(ctx, "delete_pet", func(ctx context.Context) error {
		if err := vm.repo.DeletePet(ctx, token, id); err != nil {
			return err
		}
		vm.update(func(s UserState) UserState {
			if s.SelectedPet != nil && s.SelectedPet.ID == id {
				s.SelectedPet = nil
			}
			return s
		})
		_ = vm.LoadPets(ctx, token)
		if onSuccess != nil {
			onSuccess()
		}
		return nil
	})
}

// ==================== SUCURSALES ====================

func (vm *UserViewModel) LoadBranches(ctx context.Context) error {
	return vm.run(ctx, "load_branches", vm.fetchBranches)
}

func (vm *UserViewModel) fetchBranches(ctx context.Context) error {
	items, err := vm.repo.ListBranches(ctx)
	if err != nil {
		return err
	}
	vm.update(func(s UserState) UserState {
		s.Branches = nonNil(items)
		return s
	})
	return nil
}

// LoadBranchDetail selecciona la sucursal y usa sus veterinarios embebidos.
func (vm *UserViewModel) LoadBranchDetail(ctx context.Context, id int) error {
	return vm.run(ctx, "load_branch", func(ctx context.Context) error {
		b, err := vm.repo.GetBranch(ctx, id)
		if err != nil {
			return err
		}
		vm.update(func(s UserState) UserState {
			if s.SelectedBranch == nil || s.SelectedBranch.ID != b.ID {
				s.SelectedVeterinarian = nil
			}
			s.SelectedBranch = &b
			s.Veterinarians = nonNil(b.Veterinarians)
			return s
		})
		return nil
	})
}

func (vm *UserViewModel) LoadBranchVeterinarians(ctx context.Context, branchID int) error {
	return vm.loadVeterinarians(ctx, branchID, false)
}

// loadVeterinarians con onlyIfSelected descarta la respuesta si entretanto
// se eligió otra sucursal (evita mostrar veterinarios de una sucursal vieja).
func (vm *UserViewModel) loadVeterinarians(ctx context.Context, branchID int, onlyIfSelected bool) error {
	return vm.run(ctx, "load_veterinarians", func(ctx context.Context) error {
		items, err := vm.repo.ListBranchVeterinarians(ctx, branchID)
		if err != nil {
			return err
		}
		vm.update(func(s UserState) UserState {
			if onlyIfSelected && (s.SelectedBranch == nil || s.SelectedBranch.ID != branchID) {
				return s
			}
			s.Veterinarians = nonNil(items)
			return s
		})
		return nil
	})
}

// ==================== CITAS ====================

func (vm *UserViewModel) LoadAppointments(ctx context.Context, token string) error {
	return vm.run(ctx, "load_appointments", func(ctx context.Context) error {
		items, err := vm.repo.ListAppointments(ctx, token)
		if err != nil {
			return err
		}
		vm.update(func(s UserState) UserState {
			s.Appointments = nonNil(items)
			return s
		})
		return nil
	})
}

func (vm *UserViewModel) GetAppointment(ctx context.Context, token string, id int) (appointments.Appointment, error) {
	var out appointments.Appointment
	err := vm.run(ctx, "get_appointment", func(ctx context.Context) error {
		a, err := vm.repo.GetAppointment(ctx, token, id)
		out = a
		return err
	})
	return out, err
}

// CreateAppointment: si el backend acepta, refresca la lista y luego llama
// onSuccess exactamente una vez. Sin UI optimista.
func (vm *UserViewModel) CreateAppointment(ctx context.Context, token string, in appointments.Request, onSuccess func(appointments.Appointment)) error {
	if err := in.Validate(); err != nil {
		vm.reject("create_appointment", err)
		return err
	}
	return vm.run(ctx, "create_appointment", func(ctx context.Context) error {
		a, err := vm.repo.CreateAppointment(ctx, token, in.Normalize())
		if err != nil {
			return err
		}
		_ = vm.LoadAppointments(ctx, token)
		call(onSuccess, a)
		return nil
	})
}

// CancelAppointment rechaza localmente citas cuyo estado conocido no es
// PENDIENTE ni CONFIRMADA; si la cita no está en memoria decide el servidor.
func (vm *UserViewModel) CancelAppointment(ctx context.Context, token string, id int, onSuccess func()) error {
	if a, ok := vm.findAppointment(id); ok && !a.State().CanCancel() {
		vm.reject("cancel_appointment", ErrNotCancellable)
		return ErrNotCancellable
	}
	return vm.run(ctx, "cancel_appointment", func(ctx context.Context) error {
		if err := vm.repo.CancelAppointment(ctx, token, id); err != nil {
			return err
		}
		_ = vm.LoadAppointments(ctx, token)
		if onSuccess != nil {
			onSuccess()
		}
		return nil
	})
}

// ==================== RESEÑAS ====================

func (vm *UserViewModel) LoadVeterinarianReviews(ctx context.Context, vetID int) error {
	return vm.run(ctx, "load_reviews", func(ctx context.Context) error {
		items, err := vm.repo.ListVeterinarianReviews(ctx, vetID)
		if err != nil {
			return err
		}
		vm.update(func(s UserState) UserState {
			s.Reviews = nonNil(items)
			return s
		})
		return nil
	})
}

// CreateReview exige cita COMPLETADA y sin reseña previa. Si la cita no está
// en memoria se consulta antes de enviar; el servidor sigue siendo la fuente de verdad.
func (vm *UserViewModel) CreateReview(ctx context.Context, token string, in reviews.Request, onSuccess func(reviews.Review)) error {
	if err := in.Validate(); err != nil {
		vm.reject("create_review", err)
		return err
	}
	in = in.Normalize()

	return vm.run(ctx, "create_review", func(ctx context.Context) error {
		cita, ok := vm.findAppointment(in.AppointmentID)
		if !ok {
			a, err := vm.repo.GetAppointment(ctx, token, in.AppointmentID)
			if err != nil {
				return err
			}
			cita = a
		}
		if !cita.State().CanReview() {
			return ErrNotReviewable
		}
		if len(reviews.Reviewable([]appointments.Appointment{cita}, vm.State().Reviews, 0)) == 0 {
			return ErrAlreadyReviewed
		}

		r, err := vm.repo.CreateReview(ctx, token, in)
		if err != nil {
			return err
		}
		if cita.VeterinarianID != 0 {
			_ = vm.LoadVeterinarianReviews(ctx, cita.VeterinarianID)
		}
		call(onSuccess, r)
		return nil
	})
}

// ReviewableAppointments filtra las citas cargadas que aún admiten reseña
// (vetID 0 = de cualquier veterinario).
func (vm *UserViewModel) ReviewableAppointments(vetID int) []appointments.Appointment {
	s := vm.State()
	return reviews.Reviewable(s.Appointments, s.Reviews, vetID)
}

// ==================== UTILS ====================

func (vm *UserViewModel) ClearError() {
	vm.update(func(s UserState) UserState {
		s.Error = ""
		return s
	})
}

// ClearState vuelve al estado inicial (p.ej. al cerrar sesión).
func (vm *UserViewModel) ClearState() {
	vm.update(func(s UserState) UserState {
		return UserState{IsLoading: s.IsLoading}
	})
}

// Close cancela requests en vuelo; después de Close el estado no cambia más.
func (vm *UserViewModel) Close() {
	vm.life.close()
	vm.state.Close()
}

// run envuelve op con loading/error uniformes. Toda salida baja el flag de
// carga (con operaciones anidadas, baja cuando termina la última).
func (vm *UserViewModel) run(ctx context.Context, op string, fn func(context.Context) error) error {
	if vm.life.closed() {
		return ErrClosed
	}
	ctx, done := vm.life.bind(ctx)
	defer done()

	vm.update(func(s UserState) UserState {
		vm.pending++
		s.IsLoading = true
		s.Error = ""
		return s
	})
	vm.log.Debug("request", map[string]any{"op": op})

	err := fn(ctx)

	msg := ""
	if err != nil {
		msg = Message(err)
		vm.log.Warn("request failed", map[string]any{"op": op, "error": msg})
	}
	vm.update(func(s UserState) UserState {
		if vm.pending > 0 {
			vm.pending--
		}
		s.IsLoading = vm.pending > 0
		if err != nil {
			s.Error = msg
		}
		return s
	})
	if vm.life.closed() && err == nil {
		return ErrClosed
	}
	return err
}

// reject publica un error de validación sin pasar por la red.
func (vm *UserViewModel) reject(op string, err error) {
	msg := Message(err)
	vm.log.Debug("rejected", map[string]any{"op": op, "error": msg})
	vm.update(func(s UserState) UserState {
		s.Error = msg
		return s
	})
}

func (vm *UserViewModel) update(fn func(UserState) UserState) {
	if vm.life.closed() {
		return
	}
	vm.state.Update(fn)
}

func (vm *UserViewModel) findAppointment(id int) (appointments.Appointment, bool) {
	for _, a := range vm.State().Appointments {
		if a.ID == id {
			return a, true
		}
	}
	return appointments.Appointment{}, false
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
