package viewmodel

import (
	"context"
	"errors"
	"strings"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
)

// StartBooking reinicia el formulario y carga mascotas y sucursales en una
// sola petición de UI: un fallo de cualquiera de las dos queda en Error.
func (vm *UserViewModel) StartBooking(ctx context.Context, token string) error {
	vm.ResetBooking()
	return vm.run(ctx, "start_booking", func(ctx context.Context) error {
		return errors.Join(vm.fetchPets(ctx, token), vm.fetchBranches(ctx))
	})
}

// ResetBooking limpia selecciones y campos del formulario.
func (vm *UserViewModel) ResetBooking() {
	vm.update(func(s UserState) UserState {
		s.SelectedPet = nil
		s.SelectedBranch = nil
		s.SelectedVeterinarian = nil
		s.Veterinarians = []branches.Veterinarian{}
		s.Booking = BookingForm{}
		return s
	})
}

func (vm *UserViewModel) SelectPet(p pets.Pet) {
	vm.update(func(s UserState) UserState {
		s.SelectedPet = &p
		return s
	})
}

// SelectBranch cambia la sucursal: descarta el veterinario elegido y la lista
// anterior, y carga los veterinarios de la nueva.
func (vm *UserViewModel) SelectBranch(ctx context.Context, b branches.Branch) error {
	vm.update(func(s UserState) UserState {
		s.SelectedBranch = &b
		s.SelectedVeterinarian = nil
		s.Veterinarians = []branches.Veterinarian{}
		return s
	})
	return vm.loadVeterinarians(ctx, b.ID, true)
}

// SelectVeterinarian exige una sucursal elegida a la que pertenezca v.
func (vm *UserViewModel) SelectVeterinarian(v branches.Veterinarian) error {
	s := vm.State()
	switch {
	case s.SelectedBranch == nil:
		vm.reject("select_veterinarian", ErrBranchRequired)
		return ErrBranchRequired
	case v.BranchID != 0 && !v.BelongsTo(s.SelectedBranch.ID):
		vm.reject("select_veterinarian", ErrVeterinarianBranch)
		return ErrVeterinarianBranch
	}
	vm.update(func(s UserState) UserState {
		s.SelectedVeterinarian = &v
		return s
	})
	return nil
}

func (vm *UserViewModel) SetBookingDate(date string) {
	vm.editBooking(func(f *BookingForm) { f.Date = date })
}

func (vm *UserViewModel) SetBookingTime(clock string) {
	vm.editBooking(func(f *BookingForm) { f.Time = clock })
}

func (vm *UserViewModel) SetBookingReason(reason string) {
	vm.editBooking(func(f *BookingForm) { f.Reason = reason })
}

func (vm *UserViewModel) SetBookingMessage(msg string) {
	vm.editBooking(func(f *BookingForm) { f.Message = msg })
}

// CanSubmit indica si el formulario está completo (no valida el formato).
func (vm *UserViewModel) CanSubmit() bool {
	s := vm.State()
	return s.SelectedPet != nil &&
		s.SelectedBranch != nil &&
		s.SelectedVeterinarian != nil &&
		strings.TrimSpace(s.Booking.Date) != "" &&
		strings.TrimSpace(s.Booking.Time) != "" &&
		strings.TrimSpace(s.Booking.Reason) != ""
}

// BookingRequest arma el request desde el estado actual. Devuelve el primer
// campo faltante en el orden del formulario.
func (vm *UserViewModel) BookingRequest() (appointments.Request, error) {
	return bookingRequest(vm.State())
}

// SubmitBooking envía la cita y, si sale bien, limpia el formulario antes de
// llamar onSuccess.
func (vm *UserViewModel) SubmitBooking(ctx context.Context, token string, onSuccess func(appointments.Appointment)) error {
	in, err := vm.BookingRequest()
	if err != nil {
		vm.reject("submit_booking", err)
		return err
	}
	return vm.CreateAppointment(ctx, token, in, func(a appointments.Appointment) {
		vm.ResetBooking()
		call(onSuccess, a)
	})
}

func (vm *UserViewModel) editBooking(fn func(*BookingForm)) {
	vm.update(func(s UserState) UserState {
		fn(&s.Booking)
		return s
	})
}

func bookingRequest(s UserState) (appointments.Request, error) {
	switch {
	case s.SelectedPet == nil:
		return appointments.Request{}, ErrPetRequired
	case s.SelectedBranch == nil:
		return appointments.Request{}, ErrBranchRequired
	case s.SelectedVeterinarian == nil:
		return appointments.Request{}, ErrVeterinarianRequired
	case s.SelectedVeterinarian.BranchID != 0 && !s.SelectedVeterinarian.BelongsTo(s.SelectedBranch.ID):
		return appointments.Request{}, ErrVeterinarianBranch
	case strings.TrimSpace(s.Booking.Date) == "" || strings.TrimSpace(s.Booking.Time) == "":
		return appointments.Request{}, ErrDateTimeRequired
	case strings.TrimSpace(s.Booking.Reason) == "":
		return appointments.Request{}, ErrReasonRequired
	}

	when, err := appointments.ComposeDateTime(s.Booking.Date, s.Booking.Time)
	if err != nil {
		return appointments.Request{}, ErrDateTimeInvalid
	}

	in := appointments.Request{
		PetID:          s.SelectedPet.ID,
		BranchID:       s.SelectedBranch.ID,
		VeterinarianID: s.SelectedVeterinarian.ID,
		DateTime:       when,
		Reason:         s.Booking.Reason,
	}
	if msg := s.Booking.Message; strings.TrimSpace(msg) != "" {
		in.ClientMessage = &msg
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return appointments.Request{}, err
	}
	return in, nil
}
