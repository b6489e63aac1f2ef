package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"vet-booking-client/internal/domain/pets"
	"vet-booking-client/internal/viewmodel"
)

func init() {
	register(command{name: "pets", usage: "[list | show <id> | add <flags> | update <id> <flags> | delete <id>]", auth: true, handler: runPets})
}

func runPets(ctx context.Context, a *app, args []string) error {
	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		if err := vm.LoadPets(ctx, a.token()); err != nil {
			return err
		}
		a.printPets(vm.State().Pets)
		return nil

	case "show":
		id, err := argID(args)
		if err != nil {
			return err
		}
		p, err := vm.GetPet(ctx, a.token(), id)
		if err != nil {
			return err
		}
		a.printPet(p)
		return nil

	case "add":
		in, err := petFlags("add", pets.Request{}, args)
		if err != nil {
			return err
		}
		return vm.CreatePet(ctx, a.token(), in, func(p pets.Pet) {
			a.printf("pet %d created\n", p.ID)
		})

	case "update":
		id, err := argID(args)
		if err != nil {
			return err
		}
		cur, err := vm.GetPet(ctx, a.token(), id)
		if err != nil {
			return err
		}
		in, err := petFlags("update", pets.RequestFrom(cur), args[1:])
		if err != nil {
			return err
		}
		return vm.UpdatePet(ctx, a.token(), id, in, func(p pets.Pet) {
			a.printf("pet %d updated\n", p.ID)
		})

	case "delete":
		id, err := argID(args)
		if err != nil {
			return err
		}
		return vm.DeletePet(ctx, a.token(), id, func() {
			a.printf("pet %d deleted\n", id)
		})
	}
	return ErrUsage
}

// petFlags parte de base; update solo pisa los flags presentes.
func petFlags(name string, base pets.Request, args []string) (pets.Request, error) {
	fs := newFlags(name)
	fs.StringVar(&base.Name, "nombre", base.Name, "name")
	fs.StringVar(&base.Species, "especie", base.Species, "species")
	fs.StringVar(&base.Breed, "raza", base.Breed, "breed")
	fs.StringVar(&base.Age, "edad", base.Age, "age, free text")
	fs.Float64Var(&base.Weight, "peso", base.Weight, "weight in kg")
	fs.StringVar(&base.Color, "color", base.Color, "color")
	vacunas := fs.String("vacunas", derefOr(base.Vaccines), "vaccines")
	alergias := fs.String("alergias", derefOr(base.Allergy), "allergies")
	if err := parseFlags(fs, args); err != nil {
		return pets.Request{}, err
	}
	base.Vaccines = vacunas
	base.Allergy = alergias
	return base.Normalize(), nil
}

func (a *app) printPets(items []pets.Pet) {
	if len(items) == 0 {
		a.printf("no pets\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tESPECIE\tRAZA\tEDAD\tPESO")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Species, p.Breed, p.Age, p.Weight)
	}
	_ = tw.Flush()
}

func (a *app) printPet(p pets.Pet) {
	a.printf("%s (#%d)\n", p.Name, p.ID)
	a.printf("  especie:  %s\n", p.Species)
	a.printf("  raza:     %s\n", p.Breed)
	a.printf("  edad:     %s\n", p.Age)
	a.printf("  peso:     %.1f kg\n", p.Weight)
	a.printf("  color:    %s\n", p.Color)
	a.printf("  vacunas:  %s\n", optDash(p.Vaccines))
	a.printf("  alergias: %s\n", optDash(p.Allergy))
}

func argID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", ErrUsage)
	}
	return id, nil
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
