package mockapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vet-booking-client/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokens emite y verifica JWT HS256. Implementa auth.AuthVerifier.
type tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (t tokens) Issue(userID int, email string) (string, error) {
	now := t.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (t tokens) Verify(_ context.Context, token string) (auth.Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := auth.Claims{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		out.ExpiresAt = &exp
	}
	return out, nil
}

var _ auth.AuthVerifier = tokens{}
