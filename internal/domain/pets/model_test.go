package pets

import (
	"errors"
	"testing"

	"vet-booking-client/internal/platform/validation"
)

func TestRequestValidate(t *testing.T) {
	empty := " "
	req := Request{
		Name:     " Milo ",
		Species:  "Perro",
		Breed:    "Mestizo",
		Age:      "2 años",
		Weight:   12.5,
		Color:    "Café",
		Vaccines: &empty,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := req.Normalize()
	if n.Name != "Milo" || n.Vaccines != nil {
		t.Fatalf("unexpected normalization: %+v", n)
	}

	req.Weight = 0
	req.Color = ""
	err := req.Validate()

	var verr *validation.Error
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("expected peso and color errors, got %v", err)
	}
}

func TestRequestFrom(t *testing.T) {
	p := Pet{ID: 3, Name: "Luna", Species: "Gato", Breed: "Siamés", Age: "1", Weight: 4, Color: "Blanco", OwnerID: 7}
	r := RequestFrom(p)
	if r.Name != "Luna" || r.Weight != 4 {
		t.Fatalf("unexpected request: %+v", r)
	}
}
