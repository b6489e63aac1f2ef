package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"vet-booking-client/internal/domain/reviews"
	"vet-booking-client/internal/viewmodel"
)

func init() {
	register(command{name: "review", usage: "-cita <id> -stars 1..5 -comment <text>", auth: true, handler: runReview})
	register(command{name: "reviewable", usage: "[-vet <id>]", auth: true, handler: runReviewable})
	register(command{name: "reviews", usage: "<vetId>", handler: runReviews})
}

func runReview(ctx context.Context, a *app, args []string) error {
	fs := newFlags("review")
	var in reviews.Request
	fs.IntVar(&in.AppointmentID, "cita", 0, "appointment id")
	fs.IntVar(&in.Stars, "stars", 0, "rating 1..5")
	fs.StringVar(&in.Comment, "comment", "", "comment (10..500 characters)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	// lista de citas + reseñas del veterinario para que el view-model detecte duplicados
	if err := vm.LoadAppointments(ctx, a.token()); err != nil {
		return err
	}
	for _, c := range vm.State().Appointments {
		if c.ID == in.AppointmentID && c.VeterinarianID != 0 {
			if err := vm.LoadVeterinarianReviews(ctx, c.VeterinarianID); err != nil {
				return err
			}
			break
		}
	}

	return vm.CreateReview(ctx, a.token(), in, func(r reviews.Review) {
		a.printf("review %d saved (%d stars)\n", r.ID, r.Stars)
	})
}

func runReviewable(ctx context.Context, a *app, args []string) error {
	fs := newFlags("reviewable")
	vetID := fs.Int("vet", 0, "only appointments with this veterinarian")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.LoadAppointments(ctx, a.token()); err != nil {
		return err
	}
	if *vetID != 0 {
		if err := vm.LoadVeterinarianReviews(ctx, *vetID); err != nil {
			return err
		}
	}
	items := vm.ReviewableAppointments(*vetID)
	if len(items) == 0 {
		a.printf("nothing to review\n")
		return nil
	}
	a.printAppointments(items)
	return nil
}

func runReviews(ctx context.Context, a *app, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	vm := viewmodel.NewUserViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.LoadVeterinarianReviews(ctx, id); err != nil {
		return err
	}
	items := vm.State().Reviews
	if len(items) == 0 {
		a.printf("no reviews\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tESTRELLAS\tAUTOR\tFECHA\tCOMENTARIO")
	for _, r := range items {
		author := "-"
		if r.User != nil {
			author = strings.TrimSpace(r.User.FirstName + " " + derefOr(r.User.LastName))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, strings.Repeat("*", r.Stars), author, orDash(r.CreatedAt), r.Comment)
	}
	_ = tw.Flush()
	return nil
}
