package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vet-booking-client/internal/middleware"
	"vet-booking-client/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responde {"message": ...}, el formato que el cliente extrae.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeStoreError mapea errores del store a status HTTP.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "recurso no encontrado")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "no autorizado para este recurso")
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusConflict, "el email ya está registrado")
	case errors.Is(err, ErrBadCredential):
		writeError(w, http.StatusUnauthorized, "credenciales inválidas")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "operación no permitida en el estado actual")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// intParam lee un id numérico de la ruta; responde 400 si no lo es.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// userID es el id numérico del sujeto del token. Rutas con RequireAuth.
func userID(r *http.Request) int {
	claims, _ := middleware.GetClaims(r.Context())
	id, _ := strconv.Atoi(claims.UserID)
	return id
}
