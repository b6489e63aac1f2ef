package jwtinspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"vet-booking-client/internal/ports/auth"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrTokenMalformed = errors.New("token is not a jwt")
)

// Inspector implementa auth.TokenInspector con golang-jwt (ParseUnverified).
type Inspector struct {
	parser *jwt.Parser
}

func New() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

var _ auth.TokenInspector = (*Inspector)(nil)

func (i *Inspector) Inspect(token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	out := auth.Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.UserID = strings.TrimSpace(sub)
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = strings.TrimSpace(email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
	}
	return out, nil
}
