package cli

import (
	"context"
	"strings"

	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/session"
	"vet-booking-client/internal/viewmodel"
)

func init() {
	register(command{name: "login", usage: "-email <email> -password <password>", handler: runLogin})
	register(command{name: "register", usage: "-nombre -apellido -email -password -telefono -direccion", handler: runRegister})
	register(command{name: "logout", usage: "", handler: runLogout})
	register(command{name: "status", usage: "", handler: runStatus})
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	// la pantalla exige campos no vacíos antes de llamar al view-model
	if strings.TrimSpace(*email) == "" || *password == "" {
		return ErrUsage
	}

	vm := viewmodel.NewAuthViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.Login(ctx, strings.TrimSpace(*email), *password); err != nil {
		return err
	}
	return a.saveSession(ctx, vm.State(), "", strings.TrimSpace(*email))
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	var in auth.RegisterRequest
	fs.StringVar(&in.FirstName, "nombre", "", "first name")
	fs.StringVar(&in.LastName, "apellido", "", "last name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Password, "password", "", "password")
	fs.StringVar(&in.Phone, "telefono", "", "phone")
	fs.StringVar(&in.Address, "direccion", "", "address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	vm := viewmodel.NewAuthViewModel(a.repo, a.log)
	defer vm.Close()

	if err := vm.Register(ctx, in); err != nil {
		return err
	}
	in = in.Normalize()
	return a.saveSession(ctx, vm.State(), in.DisplayName(), in.Email)
}

// saveSession persiste la sesión al observar un login/registro exitoso.
func (a *app) saveSession(ctx context.Context, st viewmodel.AuthState, name, email string) error {
	if !st.LoginSuccess && !st.RegisterSuccess {
		return nil
	}
	if name == "" {
		if claims, err := a.inspector.Inspect(st.Token); err == nil && claims.Email != "" {
			email = claims.Email
		}
	}
	err := a.store.SaveLogin(ctx, session.Login{
		Token:     st.Token,
		UserID:    st.UserID,
		UserName:  name,
		UserEmail: email,
	})
	if err != nil {
		return err
	}
	a.printf("logged in as %s (user %d)\n", orDash(email), st.UserID)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.store.ClearAll(ctx); err != nil {
		return err
	}
	a.printf("logged out\n")
	return nil
}

func runStatus(_ context.Context, a *app, _ []string) error {
	snap := a.store.Snapshot()
	if !snap.IsLoggedIn {
		a.printf("not logged in\n")
		return nil
	}
	a.printf("logged in\n")
	a.printf("  user id: %d\n", snap.UserID)
	a.printf("  name:    %s\n", orDash(snap.UserName))
	a.printf("  email:   %s\n", orDash(snap.UserEmail))

	claims, err := a.inspector.Inspect(snap.Token)
	switch {
	case err != nil:
		a.printf("  token:   opaque\n")
	case claims.ExpiresAt == nil:
		a.printf("  token:   no expiry\n")
	default:
		a.printf("  expires: %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
