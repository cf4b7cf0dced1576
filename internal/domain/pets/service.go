package pets

import (
	"context"
	"strings"
	"time"

	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/platform/validate"

	"github.com/google/uuid"
)

var ErrInvalidInput = apperr.New(apperr.ErrInvalidInput, "invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Species string `json:"species" validate:"max=50"`
	Breed   string `json:"breed" validate:"max=100"`
	Notes   string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetForOwner devuelve la mascota solo si pertenece a ownerUserID.
// Para un tercero responde NotFound (no revela existencia).
func (s *Service) GetForOwner(ctx context.Context, ownerUserID, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"name"`
	Species *string `json:"species"`
	Breed   *string `json:"breed"`
	Notes   *string `json:"notes"`
}

func (s *Service) UpdateProfile(ctx context.Context, ownerUserID, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetForOwner(ctx, ownerUserID, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := validate.Struct(CreateInput{Name: p.Name, Species: p.Species, Breed: p.Breed, Notes: p.Notes}); err != nil {
		return Pet{}, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	p, err := s.GetForOwner(ctx, ownerUserID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}
