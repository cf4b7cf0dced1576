package ratings

import "pet-dispatch/internal/domain/requests"

const (
	minStars = 1
	maxStars = 5
)

// checkRate en orden: dueño, entregada, ya calificada, guía, estrellas.
func checkRate(r requests.ServiceRequest, actorID string, alreadyRated bool, stars int) error {
	if r.OwnerUserID != actorID {
		return ErrNotOwner
	}
	if !r.IsDelivered() {
		return ErrNotFinished
	}
	if alreadyRated {
		return ErrAlreadyRated
	}
	if !r.IsAssigned() {
		return ErrNoGuide
	}
	if stars < minStars || stars > maxStars {
		return ErrStarsOutOfRange
	}
	return nil
}
