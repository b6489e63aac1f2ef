package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/viewmodel"
)

func init() {
	register(command{name: "book", usage: "-pet <id> -branch <id> -vet <id> -date YYYY-MM-DD -time HH:MM -reason <text> [-message <text>]", auth: true, handler: runBook})
	register(command{name: "appointments", usage: "[list | show <id> | cancel <id>]", auth: true, handler: runAppointments})
}

// runBook recorre el flujo de reserva del view-model: StartBooking carga
// mascotas y sucursales, y cada selección se valida contra lo cargado.
func runBook(ctx context.Context, a *app, args []string) error {
	fs := newFlags("book")
	petID := fs.Int("pet", 0, "pet id")
	branchID := fs.Int("branch", 0, "branch id")
	vetID := fs.Int("vet", 0, "veterinarian id")
	date := fs.String("date", "", "YYYY-MM-DD")
	clock := fs.String("time", "", "HH:MM")
	reason := fs.String("reason", "", "reason for the appointment")
	message := fs.String("message", "", "optional message for the clinic")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.StartBooking(ctx, a.token()); err != nil {
		return err
	}
	s := vm.State()

	if p, ok := findPet(s.Pets, *petID); ok {
		vm.SelectPet(p)
	}
	if b, ok := findBranch(s.Branches, *branchID); ok {
		if err := vm.SelectBranch(ctx, b); err != nil {
			return err
		}
		if v, ok := findVet(vm.State().Veterinarians, *vetID); ok {
			if err := vm.SelectVeterinarian(v); err != nil {
				return err
			}
		}
	}
	vm.SetBookingDate(*date)
	vm.SetBookingTime(*clock)
	vm.SetBookingReason(*reason)
	vm.SetBookingMessage(*message)

	return vm.SubmitBooking(ctx, a.token(), func(c appointments.Appointment) {
		a.printf("appointment %d booked for %s (%s)\n", c.ID, c.DateTime, c.State())
	})
}

func runAppointments(ctx context.Context, a *app, args []string) error {
	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		if err := vm.LoadAppointments(ctx, a.token()); err != nil {
			return err
		}
		a.printAppointments(vm.State().Appointments)
		return nil

	case "show":
		id, err := argID(args)
		if err != nil {
			return err
		}
		c, err := vm.GetAppointment(ctx, a.token(), id)
		if err != nil {
			return err
		}
		a.printAppointment(c)
		return nil

	case "cancel":
		id, err := argID(args)
		if err != nil {
			return err
		}
		// con la lista cargada el view-model puede rechazar sin ir al servidor
		if err := vm.LoadAppointments(ctx, a.token()); err != nil {
			return err
		}
		return vm.CancelAppointment(ctx, a.token(), id, func() {
			a.printf("appointment %d cancelled\n", id)
		})
	}
	return ErrUsage
}

func (a *app) printAppointments(items []appointments.Appointment) {
	if len(items) == 0 {
		a.printf("no appointments\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFECHA\tMASCOTA\tVETERINARIO\tSUCURSAL\tESTADO")
	for _, c := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.DateTime,
			nameOrID(c.PetName, c.PetID),
			nameOrID(c.VeterinarianName, c.VeterinarianID),
			nameOrID(c.BranchName, c.BranchID),
			c.State())
	}
	_ = tw.Flush()
}

func (a *app) printAppointment(c appointments.Appointment) {
	a.printf("cita #%d (%s)\n", c.ID, c.State())
	a.printf("  fecha:         %s\n", c.DateTime)
	a.printf("  mascota:       %s\n", nameOrID(c.PetName, c.PetID))
	a.printf("  veterinario:   %s\n", nameOrID(c.VeterinarianName, c.VeterinarianID))
	a.printf("  sucursal:      %s\n", nameOrID(c.BranchName, c.BranchID))
	a.printf("  motivo:        %s\n", c.Reason)
	a.printf("  mensaje:       %s\n", optDash(c.ClientMessage))
	a.printf("  diagnóstico:   %s\n", optDash(c.Diagnosis))
	a.printf("  tratamiento:   %s\n", optDash(c.Treatment))
	a.printf("  observaciones: %s\n", optDash(c.Notes))
	a.printf("  reseña:        %s\n", optDash(c.ReviewText))
}

func nameOrID(name string, id int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func findPet(items []pets.Pet, id int) (pets.Pet, bool) {
	for _, p := range items {
		if p.ID == id {
			return p, true
		}
	}
	return pets.Pet{}, false
}

func findBranch(items []branches.Branch, id int) (branches.Branch, bool) {
	for _, b := range items {
		if b.ID == id {
			return b, true
		}
	}
	return branches.Branch{}, false
}

func findVet(items []branches.Veterinarian, id int) (branches.Veterinarian, bool) {
	for _, v := range items {
		if v.ID == id {
			return v, true
		}
	}
	return branches.Veterinarian{}, false
}
