package requests

import (
	"context"

	"pet-dispatch/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.New(apperr.ErrNotFound, "request not found")

	ErrNotGuide         = apperr.New(apperr.ErrForbidden, "only guides can perform this action")
	ErrAlreadyAssigned  = apperr.New(apperr.ErrConflict, "request already assigned")
	ErrNotAssignedGuide = apperr.New(apperr.ErrForbidden, "only the assigned guide can record milestones")
	ErrInvalidStage     = apperr.New(apperr.ErrInvalidInput, "invalid milestone")
	ErrOutOfOrder       = apperr.New(apperr.ErrInvalidInput, "milestone out of order")
	ErrDuplicateStage   = apperr.New(apperr.ErrConflict, "milestone already recorded")
	ErrLocked           = apperr.New(apperr.ErrConflict, "request already assigned; it can no longer be modified")
	ErrPetNotOwned      = apperr.New(apperr.ErrInvalidInput, "pet does not belong to the authenticated user")
)

type ListFilter struct {
	OwnerUserID     string
	AssignedGuideID string
	OnlyUnassigned  bool
	OnlyConfirmed   bool

	// Default: created_at ascendente.
	NewestFirst bool
}

// Mutation describe los cambios que Mutate aplica en una sola unidad atómica.
type Mutation struct {
	Details      *Details
	AssignGuide  string
	Confirm      bool
	AddMilestone *Milestone
}

// MutateFunc recibe el estado actual (ya bloqueado) y decide la mutación.
// Si devuelve error no se escribe nada.
type MutateFunc func(current ServiceRequest) (Mutation, error)

type Repository interface {
	Create(ctx context.Context, r ServiceRequest) error
	GetByID(ctx context.Context, id string) (ServiceRequest, error)
	List(ctx context.Context, f ListFilter) ([]ServiceRequest, error)

	// Mutate ejecuta check + escritura de forma atómica respecto a la solicitud.
	// Devuelve ErrNotFound si no existe.
	Mutate(ctx context.Context, id string, fn MutateFunc) (ServiceRequest, error)

	// Delete borra en cascada (hitos y calificación) si guard no devuelve error.
	Delete(ctx context.Context, id string, guard func(ServiceRequest) error) error
}

// Apply es la semántica común de Mutation para todos los adapters.
func Apply(current ServiceRequest, m Mutation) ServiceRequest {
	if m.Details != nil {
		current.Details = *m.Details
	}
	if m.AssignGuide != "" {
		current.AssignedGuideID = m.AssignGuide
	}
	if m.AddMilestone != nil {
		ms := make([]Milestone, 0, len(current.Milestones)+1)
		ms = append(ms, current.Milestones...)
		current.Milestones = append(ms, *m.AddMilestone)
	}
	if m.Confirm {
		current.Confirmed = true
	}
	return current
}
