package reviews

import (
	"errors"
	"strings"
	"testing"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/platform/validation"
)

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		ok   bool
	}{
		{"valid", Request{AppointmentID: 1, Stars: 5, Comment: "Excelente atención"}, true},
		{"zero stars", Request{AppointmentID: 1, Stars: 0, Comment: "Excelente atención"}, false},
		{"six stars", Request{AppointmentID: 1, Stars: 6, Comment: "Excelente atención"}, false},
		{"short comment", Request{AppointmentID: 1, Stars: 4, Comment: "  bien   "}, false},
		{"exactly ten runes", Request{AppointmentID: 1, Stars: 4, Comment: "ñañañañaña"}, true},
		{"too long", Request{AppointmentID: 1, Stars: 4, Comment: strings.Repeat("a", 501)}, false},
		{"missing appointment", Request{Stars: 4, Comment: "Excelente atención"}, false},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, validation.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestReviewable(t *testing.T) {
	done := "ya comentada"
	citas := []appointments.Appointment{
		{ID: 1, VeterinarianID: 5, Status: "COMPLETADA"},
		{ID: 2, VeterinarianID: 5, Status: "PENDIENTE"},
		{ID: 3, VeterinarianID: 6, Status: "completada"},
		{ID: 4, VeterinarianID: 5, Status: "COMPLETADA"},
		{ID: 5, VeterinarianID: 5, Status: "COMPLETADA", ReviewText: &done},
	}
	existing := []Review{{ID: 9, Appointment: &AppointmentSummary{ID: 4}}}

	got := Reviewable(citas, existing, 5)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only appointment 1, got %+v", got)
	}

	all := Reviewable(citas, existing, 0)
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 3 {
		t.Fatalf("expected appointments 1 and 3, got %+v", all)
	}
}
