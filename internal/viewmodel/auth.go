package viewmodel

import (
	"context"

	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/platform/logger"
	"vet-booking-client/internal/platform/observable"
)

type AuthRepository interface {
	Login(ctx context.Context, in auth.LoginRequest) (auth.LoginResponse, error)
	Register(ctx context.Context, in auth.RegisterRequest) (auth.LoginResponse, error)
}

// Phase: Idle -> Loading -> {LoginSucceeded | RegisterSucceeded | Failed};
// Failed vuelve a Idle al editar un campo o limpiar el error.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoginSucceeded
	PhaseRegisterSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoginSucceeded:
		return "login_success"
	case PhaseRegisterSucceeded:
		return "register_success"
	case PhaseFailed:
		return "error"
	default:
		return "idle"
	}
}

type AuthState struct {
	Phase           Phase
	IsLoading       bool
	Error           string
	LoginSuccess    bool
	RegisterSuccess bool
	Token           string
	UserID          int
}

// AuthViewModel maneja login/registro. No persiste la sesión: quien observa
// LoginSuccess/RegisterSuccess decide guardarla.
type AuthViewModel struct {
	repo  AuthRepository
	log   logger.Logger
	state *observable.Value[AuthState]
	life  lifecycle
}

func NewAuthViewModel(repo AuthRepository, log logger.Logger) *AuthViewModel {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthViewModel{
		repo:  repo,
		log:   log.With(map[string]any{"vm": "auth"}),
		state: observable.New(AuthState{}),
		life:  newLifecycle(),
	}
}

func (vm *AuthViewModel) State() AuthState { return vm.state.Get() }

func (vm *AuthViewModel) Subscribe() (<-chan AuthState, func()) { return vm.state.Subscribe() }

func (vm *AuthViewModel) Login(ctx context.Context, email, password string) error {
	return vm.authenticate(ctx, "login", func(ctx context.Context) (auth.LoginResponse, error) {
		return vm.repo.Login(ctx, auth.LoginRequest{Email: email, Password: password})
	}, PhaseLoginSucceeded)
}

// Register valida los seis campos antes de llamar al backend.
func (vm *AuthViewModel) Register(ctx context.Context, in auth.RegisterRequest) error {
	if err := in.Validate(); err != nil {
		vm.fail("register", err)
		return err
	}
	in = in.Normalize()
	return vm.authenticate(ctx, "register", func(ctx context.Context) (auth.LoginResponse, error) {
		return vm.repo.Register(ctx, in)
	}, PhaseRegisterSucceeded)
}

// ClearError no cancela un request en vuelo.
func (vm *AuthViewModel) ClearError() {
	vm.update(func(s AuthState) AuthState {
		s.Error = ""
		if s.Phase == PhaseFailed {
			s.Phase = PhaseIdle
		}
		return s
	})
}

// FieldEdited se llama cuando el usuario modifica un campo del formulario.
func (vm *AuthViewModel) FieldEdited() {
	vm.ClearError()
}

// Close cancela requests en vuelo y congela el estado.
func (vm *AuthViewModel) Close() {
	vm.life.close()
	vm.state.Close()
}

func (vm *AuthViewModel) authenticate(
	ctx context.Context,
	op string,
	call func(context.Context) (auth.LoginResponse, error),
	success Phase,
) error {
	if vm.life.closed() {
		return ErrClosed
	}
	ctx, done := vm.life.bind(ctx)
	defer done()

	vm.update(func(s AuthState) AuthState {
		s.Phase = PhaseLoading
		s.IsLoading = true
		s.Error = ""
		s.LoginSuccess = false
		s.RegisterSuccess = false
		return s
	})
	vm.log.Debug("request", map[string]any{"op": op})

	resp, err := call(ctx)
	if err != nil {
		vm.fail(op, err)
		return err
	}

	vm.update(func(s AuthState) AuthState {
		s.Phase = success
		s.IsLoading = false
		s.Error = ""
		s.Token = resp.Token
		s.UserID = resp.UserID
		s.LoginSuccess = success == PhaseLoginSucceeded
		s.RegisterSuccess = success == PhaseRegisterSucceeded
		return s
	})
	vm.log.Info("authenticated", map[string]any{"op": op, "user_id": resp.UserID})
	return nil
}

func (vm *AuthViewModel) fail(op string, err error) {
	msg := Message(err)
	vm.log.Warn("request failed", map[string]any{"op": op, "error": msg})
	vm.update(func(s AuthState) AuthState {
		s.Phase = PhaseFailed
		s.IsLoading = false
		s.Error = msg
		s.LoginSuccess = false
		s.RegisterSuccess = false
		return s
	})
}

func (vm *AuthViewModel) update(fn func(AuthState) AuthState) {
	if vm.life.closed() {
		return
	}
	vm.state.Update(fn)
}
