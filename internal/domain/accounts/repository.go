package accounts

import (
	"context"

	"pet-dispatch/internal/platform/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "account not found")
	ErrUsernameTaken = apperr.New(apperr.ErrConflict, "username already taken")
)

// Repository devuelve ErrNotFound / ErrUsernameTaken tal cual.
type Repository interface {
	Create(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
}
