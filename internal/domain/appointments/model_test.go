package appointments

import (
	"encoding/json"
	"errors"
	"testing"

	"vet-booking-client/internal/platform/validation"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pendiente":  StatusPending,
		" CONFIRMED": StatusConfirmed,
		"Completada": StatusCompleted,
		"canceled":   StatusCancelled,
		"reprogram":  Status("REPROGRAM"),
	}
	for in, want := range cases {
		if got := ParseStatus(in); got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusGates(t *testing.T) {
	for _, tc := range []struct {
		s         Status
		canCancel bool
		canReview bool
	}{
		{StatusPending, true, false},
		{StatusConfirmed, true, false},
		{StatusCompleted, false, true},
		{StatusCancelled, false, false},
	} {
		if tc.s.CanCancel() != tc.canCancel || tc.s.CanReview() != tc.canReview {
			t.Fatalf("%s: cancel=%v review=%v", tc.s, tc.s.CanCancel(), tc.s.CanReview())
		}
	}
}

func TestComposeDateTime(t *testing.T) {
	got, err := ComposeDateTime("2025-06-01", "10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-06-01T10:00:00" {
		t.Fatalf("got %q", got)
	}

	got, err = ComposeDateTime(" 2025-06-01 ", "09:30:15")
	if err != nil || got != "2025-06-01T09:30:15" {
		t.Fatalf("got %q err=%v", got, err)
	}

	for _, bad := range [][2]string{
		{"2025-13-01", "10:00"},
		{"01/06/2025", "10:00"},
		{"2025-06-01", "25:00"},
		{"2025-06-01", ""},
	} {
		if _, err := ComposeDateTime(bad[0], bad[1]); !errors.Is(err, ErrInvalidDateTime) {
			t.Fatalf("ComposeDateTime(%q,%q) expected ErrInvalidDateTime, got %v", bad[0], bad[1], err)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	if _, err := ParseDateTime("2025-06-01T10:00:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDateTime("2025-06-01T10:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDateTime("2025-06-01 10:00:00"); err == nil {
		t.Fatalf("expected error for space separator")
	}
	if _, err := ParseDateTime("2025-06-01T10:00:00Z"); err == nil {
		t.Fatalf("expected error for timezone suffix")
	}
}

func TestRequestValidate(t *testing.T) {
	blank := "   "
	ok := Request{PetID: 3, BranchID: 1, VeterinarianID: 5, DateTime: "2025-06-01T10:00:00", Reason: "Checkup", ClientMessage: &blank}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Normalize().ClientMessage != nil {
		t.Fatalf("blank message should normalize to nil")
	}

	bad := ok
	bad.Reason = "  "
	if err := bad.Validate(); !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	bad = ok
	bad.DateTime = "mañana"
	err := bad.Validate()
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Fields[0].Field != "fechaHora" {
		t.Fatalf("expected fechaHora error, got %v", err)
	}
}

func TestAppointment_DecodesListShape(t *testing.T) {
	body := `{"id":1,"fechaHora":"2025-03-14T09:30:00","motivo":"Checkup","estado":"PENDIENTE",
		"mascotaNombre":"Firulais","veterinarioNombre":"Dra. Ruiz","veterinarioEspecialidad":null,
		"veterinarioId":5,"sucursalNombre":"Centro"}`

	var a Appointment
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Reason != "Checkup" {
		t.Fatalf("reason lost: %+v", a)
	}
	if a.PetName != "Firulais" || a.VeterinarianID != 5 || a.BranchName != "Centro" || a.State() != StatusPending {
		t.Fatalf("unexpected appointment: %+v", a)
	}
}

func TestAppointment_DecodesNestedEntities(t *testing.T) {
	body := `{"id":2,"mascotaId":0,"motivoCita":"Vacuna","estado":"COMPLETADA",
		"mascota":{"id":7,"nombre":"Milo"},
		"veterinario":{"id":3,"nombre":"Dra. Laura Ruiz","especialidad":"Medicina general"},
		"sucursal":{"id":1,"nombre":"Sucursal Centro"}}`

	var a Appointment
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Reason != "Vacuna" {
		t.Fatalf("motivoCita must win: %q", a.Reason)
	}
	if a.PetID != 7 || a.PetName != "Milo" {
		t.Fatalf("pet not taken from nested object: %+v", a)
	}
	if a.VeterinarianID != 3 || a.VeterinarianSpecialty == nil || *a.VeterinarianSpecialty != "Medicina general" {
		t.Fatalf("vet not taken from nested object: %+v", a)
	}
	if a.BranchID != 1 || a.BranchName != "Sucursal Centro" {
		t.Fatalf("branch not taken from nested object: %+v", a)
	}
}

func TestAppointment_EncodesMotivoCita(t *testing.T) {
	raw, err := json.Marshal(Appointment{ID: 1, Reason: "Control"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Appointment
	if err := json.Unmarshal(raw, &back); err != nil || back.Reason != "Control" {
		t.Fatalf("round trip: %v %+v", err, back)
	}
}
