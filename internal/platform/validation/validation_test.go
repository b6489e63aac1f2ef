package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string `json:"nombre" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Stars int    `json:"estrellas" validate:"gte=1,lte=5"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "nope", Stars: 9})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", verr.Fields)
	}

	want := "nombre is required; email must be a valid email; estrellas must be <= 5"
	if verr.Error() != want {
		t.Fatalf("message = %q, want %q", verr.Error(), want)
	}
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(sample{Name: "Milo", Email: "a@b.com", Stars: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
