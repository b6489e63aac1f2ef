package auth

import "time"

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt *time.Time
}

// Expired es false si el token no declara vencimiento.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
