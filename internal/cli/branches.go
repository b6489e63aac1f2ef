package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/viewmodel"
)

func init() {
	register(command{name: "branches", usage: "[list | show <id>]", handler: runBranches})
	register(command{name: "vets", usage: "<branchId>", handler: runVets})
}

func runBranches(ctx context.Context, a *app, args []string) error {
	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		if err := vm.LoadBranches(ctx); err != nil {
			return err
		}
		a.printBranches(vm.State().Branches)
		return nil

	case "show":
		id, err := argID(args)
		if err != nil {
			return err
		}
		if err := vm.LoadBranchDetail(ctx, id); err != nil {
			return err
		}
		s := vm.State()
		b := *s.SelectedBranch
		a.printf("%s (#%d)\n", b.Name, b.ID)
		a.printf("  dirección: %s\n", b.Address)
		a.printf("  ciudad:    %s\n", optDash(b.City))
		a.printf("  teléfono:  %s\n", b.Phone)
		a.printf("  horario:   %s\n", b.BusinessHours)
		a.printf("  servicios: %s\n", optDash(b.Services))
		a.printf("\n")
		a.printVets(s.Veterinarians)
		return nil
	}
	return ErrUsage
}

func runVets(ctx context.Context, a *app, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.LoadBranchVeterinarians(ctx, id); err != nil {
		return err
	}
	a.printVets(vm.State().Veterinarians)
	return nil
}

func (a *app) printBranches(items []branches.Branch) {
	if len(items) == 0 {
		a.printf("no branches\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCIUDAD\tHORARIO\tACTIVA")
	for _, b := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", b.ID, b.Name, optDash(b.City), b.BusinessHours, b.IsActive())
	}
	_ = tw.Flush()
}

func (a *app) printVets(items []branches.Veterinarian) {
	if len(items) == 0 {
		a.printf("no veterinarians\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tESPECIALIDAD\tRATING")
	for _, v := range items {
		rating := "-"
		if v.AvgRating != nil {
			rating = fmt.Sprintf("%.1f", *v.AvgRating)
			if v.TotalReviews != nil {
				rating += fmt.Sprintf(" (%d)", *v.TotalReviews)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", v.ID, v.Name, v.Specialty, rating)
	}
	_ = tw.Flush()
}
