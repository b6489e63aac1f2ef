package mockapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/domain/branches"
	"vet-booking-client/internal/mockapi"

	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) (*mockapi.Server, *httptest.Server) {
	t.Helper()
	srv, err := mockapi.New(mockapi.Options{Secret: "test-secret", Seed: true, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new mockapi: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHTTP_EndToEnd_BookingAndReview(t *testing.T) {
	srv, ts := newServer(t)

	// 1) Registro devuelve token
	token, _ := register(t, ts.URL, "ana@example.com")

	// 2) Sin token no hay mascotas
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/mascotas", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// 3) Crea mascota
	petID := createID(t, ts.URL, "/api/mascotas", token, map[string]any{
		"nombre":  "Milo",
		"especie": "Perro",
		"raza":    "Mestizo",
		"edad":    "2 años",
		"peso":    12.5,
		"color":   "Café",
	})

	// 4) Sucursal y veterinario (públicos)
	branchID, vetID := firstBranchAndVet(t, ts.URL)

	// 5) Agenda cita
	citaID := createID(t, ts.URL, "/api/citas", token, map[string]any{
		"mascotaId":     petID,
		"sucursalId":    branchID,
		"veterinarioId": vetID,
		"fechaHora":     "2025-03-14T09:30:00",
		"motivoCita":    "Vacunación",
	})

	// 6) Lista con nombres desnormalizados
	{
		st, body := doReq(t, ts.URL, "GET", "/api/citas", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list citas, got %d body=%s", st, string(body))
		}
		var out []appointments.Appointment
		_ = json.Unmarshal(body, &out)
		if len(out) != 1 || out[0].PetName != "Milo" || out[0].BranchName == "" || out[0].VeterinarianName == "" {
			t.Fatalf("unexpected list: %s", string(body))
		}
		if out[0].State() != appointments.StatusPending {
			t.Fatalf("new appointment must be PENDIENTE, got %q", out[0].Status)
		}
	}

	// 7) Reseña antes de completar => 409
	review := map[string]any{"citaId": citaID, "estrellas": 5, "comentario": "Excelente atención"}
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/resenas", token, review)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 review on pending, got %d", st)
		}
	}

	// 8) La clínica completa la cita
	if err := srv.SetAppointmentStatus(citaID, appointments.StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}

	// 9) Cancelar ya no se puede
	{
		st, _ := doReq(t, ts.URL, "DELETE", fmt.Sprintf("/api/citas/%d", citaID), token, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cancel on completed, got %d", st)
		}
	}

	// 10) Reseña ok, luego duplicada => 409
	createID(t, ts.URL, "/api/resenas", token, review)
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/resenas", token, review)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate review, got %d", st)
		}
	}

	// 11) Reseñas del veterinario (público) y promedio
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/api/resenas/veterinario/%d", vetID), "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "Excelente atención") {
			t.Fatalf("expected review listed, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", fmt.Sprintf("/api/sucursales/%d/veterinarios", branchID), "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vets, got %d", st)
		}
		var vets []branches.Veterinarian
		_ = json.Unmarshal(body, &vets)
		for _, v := range vets {
			if v.ID == vetID && (v.TotalReviews == nil || *v.TotalReviews != 1) {
				t.Fatalf("expected 1 review on vet, got %s", string(body))
			}
		}
	}
}

func TestHTTP_LoginAndOwnership(t *testing.T) {
	_, ts := newServer(t)

	register(t, ts.URL, "ana@example.com")
	other, _ := register(t, ts.URL, "beto@example.com")

	{
		st, _ := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "wrong"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "secret123"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var resp struct {
		Token  string `json:"token"`
		UserID int    `json:"userId"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" || resp.UserID == 0 {
		t.Fatalf("login: missing token body=%s", string(body))
	}

	petID := createID(t, ts.URL, "/api/mascotas", resp.Token, map[string]any{
		"nombre": "Luna", "especie": "Gato", "raza": "Siamés", "edad": "1 año", "peso": 3.1, "color": "Crema",
	})

	// otro usuario no ve ni borra la mascota
	path := fmt.Sprintf("/api/mascotas/%d", petID)
	if st, _ := doReq(t, ts.URL, "GET", path, other, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 foreign pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", path, other, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 foreign delete, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", path, resp.Token, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 own delete, got %d", st)
	}

	// email duplicado
	if st, _ := doReq(t, ts.URL, "POST", "/api/auth/register", "", registerBody("ana@example.com")); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate email, got %d", st)
	}
}

func TestHTTP_RejectsInvalidInput(t *testing.T) {
	_, ts := newServer(t)
	token, _ := register(t, ts.URL, "ana@example.com")

	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{"pet without name", "/api/mascotas", map[string]any{"especie": "Perro", "peso": 3}},
		{"cita bad date", "/api/citas", map[string]any{"mascotaId": 1, "sucursalId": 1, "veterinarioId": 3, "fechaHora": "14/03/2025", "motivoCita": "x"}},
		{"review short comment", "/api/resenas", map[string]any{"citaId": 1, "estrellas": 5, "comentario": "ok"}},
		{"review stars", "/api/resenas", map[string]any{"citaId": 1, "estrellas": 9, "comentario": "Todo muy bien"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", tc.path, token, tc.body)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
			if !strings.Contains(string(body), `"message"`) {
				t.Fatalf("error body must carry message: %s", string(body))
			}
		})
	}
}

func TestHTTP_ExpiredTokenIsUnauthorized(t *testing.T) {
	var clock atomic.Int64
	clock.Store(time.Now().UnixNano())
	srv, err := mockapi.New(mockapi.Options{
		Secret:     "test-secret",
		TokenTTL:   time.Minute,
		Now:        func() time.Time { return time.Unix(0, clock.Load()) },
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("new mockapi: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	token, _ := register(t, ts.URL, "ana@example.com")
	if st, _ := doReq(t, ts.URL, "GET", "/api/mascotas", token, nil); st != http.StatusOK {
		t.Fatalf("expected 200 with fresh token, got %d", st)
	}

	clock.Add(int64(2 * time.Minute))
	if st, _ := doReq(t, ts.URL, "GET", "/api/mascotas", token, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with expired token, got %d", st)
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	_, ts := newServer(t)

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}
	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/resenas/veterinario/{id}") {
		t.Fatalf("unexpected swagger doc: %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func registerBody(email string) map[string]any {
	return map[string]any{
		"nombre":    "Ana",
		"apellido":  "Díaz",
		"email":     email,
		"password":  "secret123",
		"telefono":  "555-0101",
		"direccion": "Calle 1",
	}
}

func register(t *testing.T, baseURL, email string) (string, int) {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/auth/register", "", registerBody(email))
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	var out struct {
		Token  string `json:"token"`
		UserID int    `json:"userId"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		t.Fatalf("register: missing token body=%s", string(body))
	}
	return out.Token, out.UserID
}

func createID(t *testing.T, baseURL, path, token string, payload map[string]any) int {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", path, token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}
	var out struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(body, &out)
	if out.ID == 0 {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return out.ID
}

func firstBranchAndVet(t *testing.T, baseURL string) (int, int) {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/api/sucursales", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 branches, got %d", st)
	}
	var bs []branches.Branch
	_ = json.Unmarshal(body, &bs)
	if len(bs) == 0 {
		t.Fatalf("no seeded branches")
	}

	st, body = doReq(t, baseURL, "GET", fmt.Sprintf("/api/sucursales/%d", bs[0].ID), "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 branch detail, got %d", st)
	}
	var b branches.Branch
	_ = json.Unmarshal(body, &b)
	if len(b.Veterinarians) == 0 {
		t.Fatalf("branch detail without vets: %s", string(body))
	}
	return b.ID, b.Veterinarians[0].ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
