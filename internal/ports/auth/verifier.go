package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// RoleLookup resuelve el rol de un usuario cuando el token no lo trae.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (Role, error)
}
