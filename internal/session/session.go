// Package session persiste la sesión del usuario (token, id, nombre, email,
// logged-in) sobre un Backend clave-valor y expone cada campo como valor observable.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"vet-booking-client/internal/platform/observable"
)

const (
	KeyToken      = "token"
	KeyUserID     = "user_id"
	KeyUserName   = "user_name"
	KeyUserEmail  = "user_email"
	KeyIsLoggedIn = "is_logged_in"
)

var (
	ErrNoToken = errors.New("session: cannot mark logged in without token")
)

// Backend es un almacén clave-valor durable. SetMany debe ser atómico:
// o se ven todas las claves nuevas o ninguna.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
	Close() error
}

// Snapshot es la vista completa de la sesión en un instante.
type Snapshot struct {
	Token      string
	UserID     int
	UserName   string
	UserEmail  string
	IsLoggedIn bool
}

// Login agrupa lo que se guarda tras un login/registro exitoso.
type Login struct {
	Token     string
	UserID    int
	UserName  string
	UserEmail string
}

type Store struct {
	backend Backend

	// mu serializa escrituras para que backend y observables no diverjan.
	mu sync.Mutex

	token      *observable.Value[string]
	userID     *observable.Value[int]
	userName   *observable.Value[string]
	userEmail  *observable.Value[string]
	isLoggedIn *observable.Value[bool]
}

func New(backend Backend) *Store {
	return &Store{
		backend:    backend,
		token:      observable.New(""),
		userID:     observable.New(0),
		userName:   observable.New(""),
		userEmail:  observable.New(""),
		isLoggedIn: observable.New(false),
	}
}

// Load lee los valores persistidos y los publica en los observables.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{}
	for _, k := range []string{KeyToken, KeyUserID, KeyUserName, KeyUserEmail, KeyIsLoggedIn} {
		v, ok, err := s.backend.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("session: load %s: %w", k, err)
		}
		if ok {
			values[k] = v
		}
	}

	snap := decode(values)
	// Un valor persistido inconsistente (logged-in sin token) se trata como deslogueado.
	if snap.IsLoggedIn && snap.Token == "" {
		snap.IsLoggedIn = false
	}
	s.publish(snap)
	return nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	return s.write(ctx, func(cur Snapshot) (Snapshot, error) {
		cur.Token = token
		if token == "" {
			cur.IsLoggedIn = false
		}
		return cur, nil
	})
}

func (s *Store) SaveUserID(ctx context.Context, id int) error {
	return s.write(ctx, func(cur Snapshot) (Snapshot, error) {
		cur.UserID = id
		return cur, nil
	})
}

func (s *Store) SaveUserName(ctx context.Context, name string) error {
	return s.write(ctx, func(cur Snapshot) (Snapshot, error) {
		cur.UserName = name
		return cur, nil
	})
}

func (s *Store) SaveUserEmail(ctx context.Context, email string) error {
	return s.write(ctx, func(cur Snapshot) (Snapshot, error) {
		cur.UserEmail = email
		return cur, nil
	})
}

// SetLoggedIn(true) exige que ya exista un token guardado.
func (s *Store) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	return s.write(ctx, func(cur Snapshot) (Snapshot, error) {
		if loggedIn && cur.Token == "" {
			return cur, ErrNoToken
		}
		cur.IsLoggedIn = loggedIn
		return cur, nil
	})
}

// SaveLogin escribe todos los campos de la sesión en una sola operación.
func (s *Store) SaveLogin(ctx context.Context, in Login) error {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return ErrNoToken
	}
	return s.write(ctx, func(Snapshot) (Snapshot, error) {
		return Snapshot{
			Token:      token,
			UserID:     in.UserID,
			UserName:   in.UserName,
			UserEmail:  in.UserEmail,
			IsLoggedIn: true,
		}, nil
	})
}

// ClearAll borra todos los campos; los observables vuelven a sus defaults.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.publish(Snapshot{})
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

func (s *Store) Token() *observable.Value[string]     { return s.token }
func (s *Store) UserID() *observable.Value[int]       { return s.userID }
func (s *Store) UserName() *observable.Value[string]  { return s.userName }
func (s *Store) UserEmail() *observable.Value[string] { return s.userEmail }
func (s *Store) IsLoggedIn() *observable.Value[bool]  { return s.isLoggedIn }

// Close cierra las suscripciones y el backend.
func (s *Store) Close() error {
	s.token.Close()
	s.userID.Close()
	s.userName.Close()
	s.userEmail.Close()
	s.isLoggedIn.Close()
	return s.backend.Close()
}

func (s *Store) write(ctx context.Context, fn func(Snapshot) (Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current())
	if err != nil {
		return err
	}
	if err := s.backend.SetMany(ctx, encode(next)); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	s.publish(next)
	return nil
}

func (s *Store) current() Snapshot {
	return Snapshot{
		Token:      s.token.Get(),
		UserID:     s.userID.Get(),
		UserName:   s.userName.Get(),
		UserEmail:  s.userEmail.Get(),
		IsLoggedIn: s.isLoggedIn.Get(),
	}
}

// publish baja primero is_logged_in y lo sube al final, para que un
// observador nunca vea logged-in=true junto a un token vacío.
func (s *Store) publish(snap Snapshot) {
	if !snap.IsLoggedIn {
		s.isLoggedIn.Set(false)
	}
	s.token.Set(snap.Token)
	s.userID.Set(snap.UserID)
	s.userName.Set(snap.UserName)
	s.userEmail.Set(snap.UserEmail)
	if snap.IsLoggedIn {
		s.isLoggedIn.Set(true)
	}
}

func encode(s Snapshot) map[string]string {
	return map[string]string{
		KeyToken:      s.Token,
		KeyUserID:     strconv.Itoa(s.UserID),
		KeyUserName:   s.UserName,
		KeyUserEmail:  s.UserEmail,
		KeyIsLoggedIn: strconv.FormatBool(s.IsLoggedIn),
	}
}

func decode(values map[string]string) Snapshot {
	id, _ := strconv.Atoi(values[KeyUserID])
	logged, _ := strconv.ParseBool(values[KeyIsLoggedIn])
	return Snapshot{
		Token:      values[KeyToken],
		UserID:     id,
		UserName:   values[KeyUserName],
		UserEmail:  values[KeyUserEmail],
		IsLoggedIn: logged,
	}
}
