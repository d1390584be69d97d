package auth

import "context"

// AuthVerifier verifica un bearer token y devuelve claims o error.
// La implementación de producción vive en adapters/auth.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
