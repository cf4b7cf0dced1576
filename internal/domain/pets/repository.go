package pets

import (
	"context"

	"pet-dispatch/internal/platform/apperr"
)

var ErrNotFound = apperr.New(apperr.ErrNotFound, "pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}
