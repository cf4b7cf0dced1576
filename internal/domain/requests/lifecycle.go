package requests

import (
	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/ports/auth"
)

// checkAccept: solo guías, y solo si nadie la tomó (aunque sea el mismo guía).
func checkAccept(r ServiceRequest, actor auth.Claims) error {
	if !actor.IsGuide() {
		return ErrNotGuide
	}
	if r.IsAssigned() {
		return ErrAlreadyAssigned
	}
	return nil
}

// checkMilestone aplica en orden: guía asignado, hito válido, hito previo, duplicado.
func checkMilestone(r ServiceRequest, stage Stage, actorID string) error {
	if !r.IsAssigned() || r.AssignedGuideID != actorID {
		return ErrNotAssignedGuide
	}
	if !stage.Valid() {
		return ErrInvalidStage
	}
	if prev, ok := stage.Previous(); ok && !r.HasStage(prev) {
		return apperr.Withf(ErrOutOfOrder, "previous milestone required: %s", prev)
	}
	if r.HasStage(stage) {
		return ErrDuplicateStage
	}
	return nil
}

// checkOwnerEdit: el dueño edita o borra solo mientras no hay guía asignado.
func checkOwnerEdit(r ServiceRequest, ownerUserID string) error {
	if r.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	if r.IsAssigned() {
		return ErrLocked
	}
	return nil
}
