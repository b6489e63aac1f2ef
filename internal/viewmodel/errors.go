package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vet-booking-client/internal/platform/httpclient"
	"vet-booking-client/internal/platform/validation"
	"vet-booking-client/internal/repository"
)

const NetworkErrorFallback = "network error"

var ErrClosed = errors.New("view-model closed")

// FormError es un error de validación del lado cliente: nunca llega al servidor.
type FormError struct {
	Field string
	Msg   string
}

func (e *FormError) Error() string { return e.Msg }

func (e *FormError) Is(target error) bool { return target == validation.ErrInvalidInput }

var (
	ErrPetRequired          = &FormError{Field: "mascota", Msg: "please select a pet"}
	ErrBranchRequired       = &FormError{Field: "sucursal", Msg: "please select a branch"}
	ErrVeterinarianRequired = &FormError{Field: "veterinario", Msg: "please select a veterinarian"}
	ErrVeterinarianBranch   = &FormError{Field: "veterinario", Msg: "veterinarian does not work at the selected branch"}
	ErrDateTimeRequired     = &FormError{Field: "fechaHora", Msg: "please select date and time"}
	ErrDateTimeInvalid      = &FormError{Field: "fechaHora", Msg: "date must be YYYY-MM-DD and time HH:MM"}
	ErrReasonRequired       = &FormError{Field: "motivoCita", Msg: "please enter the reason for the appointment"}

	ErrNotCancellable  = &FormError{Field: "estado", Msg: "only pending or confirmed appointments can be cancelled"}
	ErrNotReviewable   = &FormError{Field: "estado", Msg: "only completed appointments can be reviewed"}
	ErrAlreadyReviewed = &FormError{Field: "citaId", Msg: "this appointment already has a review"}
)

// Message traduce err al texto que ve el usuario:
//   - HTTP no-2xx: "Error: <code> <reason>" (+ ": <message>" si el servidor lo envió)
//   - validación: el mensaje de validación
//   - transporte/parseo: err.Error() o NetworkErrorFallback
func Message(err error) string {
	if err == nil {
		return ""
	}

	if herr, ok := httpclient.AsHTTPError(err); ok {
		status := strings.TrimSpace(herr.Status)
		if status == "" {
			status = http.StatusText(herr.StatusCode)
		}
		msg := fmt.Sprintf("Error: %d %s", herr.StatusCode, status)
		if herr.Message != "" && !strings.EqualFold(herr.Message, status) {
			msg += ": " + herr.Message
		}
		return msg
	}

	var ferr *FormError
	if errors.As(err, &ferr) {
		return ferr.Msg
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}

	switch {
	case errors.Is(err, repository.ErrMissingToken):
		return "session expired, please log in again"
	case errors.Is(err, context.Canceled), errors.Is(err, ErrClosed):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return NetworkErrorFallback
}
