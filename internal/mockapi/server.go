// Package mockapi es un backend falso en memoria con el mismo contrato REST
// que consume el cliente. Sirve para desarrollo local y tests end-to-end.
package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-booking-client/internal/domain/appointments"
	"vet-booking-client/internal/middleware"
	_ "vet-booking-client/internal/mockapi/docs"
	"vet-booking-client/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 24 * time.Hour

type Options struct {
	Secret   string // requerido
	TokenTTL time.Duration
	Logger   logger.Logger
	Now      func() time.Time

	// Seed carga sucursales y veterinarios de ejemplo.
	Seed bool

	// BcryptCost por defecto bcrypt.DefaultCost; los tests usan bcrypt.MinCost.
	BcryptCost int
}

type Server struct {
	store  *store
	tokens tokens
	log    logger.Logger
	now    func() time.Time
	cost   int
}

func New(opts Options) (*Server, error) {
	secret := strings.TrimSpace(opts.Secret)
	if secret == "" {
		return nil, errors.New("mockapi: secret required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	s := &Server{
		store:  newStore(),
		tokens: tokens{secret: []byte(secret), ttl: opts.TokenTTL, now: opts.Now},
		log:    opts.Logger.With(map[string]any{"component": "mockapi"}),
		now:    opts.Now,
		cost:   opts.BcryptCost,
	}
	if opts.Seed {
		s.seed()
	}
	return s, nil
}

// Handler arma el router chi con todas las rutas.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLog)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(s.tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.register)
		api.Post("/auth/login", s.login)

		api.Get("/sucursales", s.listBranches)
		api.Get("/sucursales/{id}", s.getBranch)
		api.Get("/sucursales/{id}/veterinarios", s.listBranchVets)
		api.Get("/resenas/veterinario/{id}", s.listVetReviews)

		api.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth)

			pr.Get("/mascotas", s.listPets)
			pr.Post("/mascotas", s.createPet)
			pr.Get("/mascotas/{id}", s.getPet)
			pr.Put("/mascotas/{id}", s.updatePet)
			pr.Delete("/mascotas/{id}", s.deletePet)

			pr.Get("/citas", s.listCitas)
			pr.Post("/citas", s.createCita)
			pr.Get("/citas/{id}", s.getCita)
			pr.Delete("/citas/{id}", s.cancelCita)

			pr.Post("/resenas", s.createReview)
		})
	})

	return r
}

// SetAppointmentStatus simula el cambio de estado que hace la clínica
// (confirmar, completar). No hay endpoint de cliente para esto.
func (s *Server) SetAppointmentStatus(id int, st appointments.Status) error {
	st = appointments.ParseStatus(string(st))
	if !st.Valid() {
		return errors.New("mockapi: invalid status " + string(st))
	}
	return s.store.setStatus(id, st)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"elapsed_ms": s.now().Sub(start).Milliseconds(),
		})
	})
}
