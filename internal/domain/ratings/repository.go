package ratings

import (
	"context"

	"pet-dispatch/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.New(apperr.ErrNotFound, "rating not found")

	ErrNotOwner        = apperr.New(apperr.ErrForbidden, "not authorized")
	ErrNotFinished     = apperr.New(apperr.ErrPreconditionFailed, "request is not finished yet")
	ErrAlreadyRated    = apperr.New(apperr.ErrConflict, "request already rated")
	ErrNoGuide         = apperr.New(apperr.ErrPreconditionFailed, "request has no assigned guide")
	ErrStarsOutOfRange = apperr.New(apperr.ErrInvalidInput, "stars must be between 1 and 5")
)

type Repository interface {
	// Create devuelve ErrAlreadyRated si la solicitud ya tiene calificación.
	Create(ctx context.Context, r Rating) error
	GetByRequest(ctx context.Context, requestID string) (Rating, error)

	// StatsForGuide recalcula el agregado en cada llamada. Sin calificaciones => {0, 0}.
	StatsForGuide(ctx context.Context, guideID string) (Stats, error)
}
