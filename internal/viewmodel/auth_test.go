package viewmodel

import (
	"context"
	"errors"
	"testing"

	"vet-booking-client/internal/domain/auth"
	"vet-booking-client/internal/platform/httpclient"
	"vet-booking-client/internal/platform/validation"
)

// -------------------------
// Test repo
// -------------------------

type fakeAuthRepo struct {
	loginResp auth.LoginResponse
	loginErr  error
	regErr    error
	calls     int
	block     chan struct{}
}

func (r *fakeAuthRepo) Login(ctx context.Context, in auth.LoginRequest) (auth.LoginResponse, error) {
	r.calls++
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return auth.LoginResponse{}, ctx.Err()
		}
	}
	return r.loginResp, r.loginErr
}

func (r *fakeAuthRepo) Register(ctx context.Context, in auth.RegisterRequest) (auth.LoginResponse, error) {
	r.calls++
	return r.loginResp, r.regErr
}

func TestAuth_LoginSuccess(t *testing.T) {
	repo := &fakeAuthRepo{loginResp: auth.LoginResponse{Token: "abc", UserID: 7}}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	if err := vm.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("login: %v", err)
	}

	s := vm.State()
	if !s.LoginSuccess || s.Phase != PhaseLoginSucceeded {
		t.Fatalf("expected login success, got %+v", s)
	}
	if s.IsLoading {
		t.Fatalf("loading flag must be reset")
	}
	if s.Token != "abc" || s.UserID != 7 || s.Error != "" {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestAuth_LoginUnauthorized(t *testing.T) {
	repo := &fakeAuthRepo{loginErr: &httpclient.HTTPError{StatusCode: 401, Status: "Unauthorized"}}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	if err := vm.Login(context.Background(), "a@b.com", "bad"); err == nil {
		t.Fatalf("expected error")
	}

	s := vm.State()
	if s.Error != "Error: 401 Unauthorized" {
		t.Fatalf("unexpected error text: %q", s.Error)
	}
	if s.LoginSuccess || s.IsLoading || s.Phase != PhaseFailed {
		t.Fatalf("unexpected state: %+v", s)
	}

	vm.FieldEdited()
	if s := vm.State(); s.Error != "" || s.Phase != PhaseIdle {
		t.Fatalf("editing a field should clear the error: %+v", s)
	}
}

func TestAuth_TransportErrorUsesMessage(t *testing.T) {
	repo := &fakeAuthRepo{loginErr: errors.New("dial tcp: connection refused")}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	_ = vm.Login(context.Background(), "a@b.com", "x")
	if got := vm.State().Error; got != "dial tcp: connection refused" {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestAuth_RegisterValidatesBeforeNetwork(t *testing.T) {
	repo := &fakeAuthRepo{}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	err := vm.Register(context.Background(), auth.RegisterRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "secret",
	})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("no request should be sent, got %d calls", repo.calls)
	}
	if s := vm.State(); s.Error == "" || s.IsLoading {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestAuth_RegisterSuccess(t *testing.T) {
	repo := &fakeAuthRepo{loginResp: auth.LoginResponse{Token: "t", UserID: 3}}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	err := vm.Register(context.Background(), auth.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Díaz",
		Email:     "ana@example.com",
		Password:  "secret",
		Phone:     "555-0101",
		Address:   "Calle 1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if s := vm.State(); !s.RegisterSuccess || s.LoginSuccess || s.UserID != 3 {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestAuth_CloseCancelsInFlight(t *testing.T) {
	repo := &fakeAuthRepo{block: make(chan struct{})}
	vm := NewAuthViewModel(repo, nil)

	done := make(chan error, 1)
	go func() { done <- vm.Login(context.Background(), "a@b.com", "x") }()

	// espera a que el request esté en vuelo
	ch, cancel := vm.Subscribe()
	defer cancel()
	for s := range ch {
		if s.IsLoading {
			break
		}
	}

	before := vm.State()
	vm.Close()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if after := vm.State(); after != before {
		t.Fatalf("state changed after Close: %+v -> %+v", before, after)
	}
	if err := vm.Login(context.Background(), "a@b.com", "x"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestAuth_LoadingClearsPreviousSuccess(t *testing.T) {
	repo := &fakeAuthRepo{loginResp: auth.LoginResponse{Token: "abc", UserID: 7}}
	vm := NewAuthViewModel(repo, nil)
	defer vm.Close()

	if err := vm.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("login: %v", err)
	}

	repo.block = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- vm.Login(context.Background(), "a@b.com", "x") }()

	ch, cancel := vm.Subscribe()
	defer cancel()
	for s := range ch {
		if s.Phase != PhaseLoading {
			continue
		}
		if s.LoginSuccess || s.RegisterSuccess {
			t.Errorf("loading state keeps a previous success: %+v", s)
		}
		break
	}

	close(repo.block)
	if err := <-done; err != nil {
		t.Fatalf("second login: %v", err)
	}
	if !vm.State().LoginSuccess {
		t.Fatalf("expected login success after second login")
	}
}
