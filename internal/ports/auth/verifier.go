package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenInspector lee claims sin verificar firma. El cliente no tiene el
// secreto; solo lo usa para decidir si vale la pena reutilizar la sesión.
type TokenInspector interface {
	Inspect(token string) (Claims, error)
}
