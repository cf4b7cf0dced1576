package requests

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/platform/validate"
	"pet-dispatch/internal/ports/auth"

	"github.com/google/uuid"
)

// PetOwnerLookup evita importar pets (pets.Service lo implementa).
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// RatingLookup resuelve la calificación de una solicitud, si existe.
type RatingLookup interface {
	RatingFor(ctx context.Context, requestID string) (RatingSummary, bool, error)
}

// Observer recibe el resultado de cada operación del ciclo de vida.
type Observer interface {
	Observe(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, error) {}

type Service struct {
	repo    Repository
	pets    PetOwnerLookup
	ratings RatingLookup
	obs     Observer
	now     func() time.Time
}

func NewService(repo Repository, pets PetOwnerLookup, ratings RatingLookup, obs Observer) *Service {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{
		repo:    repo,
		pets:    pets,
		ratings: ratings,
		obs:     obs,
		now:     time.Now,
	}
}

// Input es el cuerpo de creación; los nombres JSON siguen el contrato público.
type Input struct {
	ServiceType       string     `json:"service_type" validate:"required,oneof=transfer walk vet_visit"`
	ScheduleType      string     `json:"schedule_type" validate:"required,oneof=immediate scheduled"`
	ScheduledDatetime *time.Time `json:"scheduled_datetime"`

	OriginText string   `json:"origin_text" validate:"required,max=300"`
	OriginLat  *float64 `json:"origin_lat" validate:"omitempty,latitude"`
	OriginLng  *float64 `json:"origin_lng" validate:"omitempty,longitude"`

	DestText string   `json:"dest_text" validate:"required,max=300"`
	DestLat  *float64 `json:"dest_lat" validate:"omitempty,latitude"`
	DestLng  *float64 `json:"dest_lng" validate:"omitempty,longitude"`

	PetID           string `json:"pet_id"`
	QuickPetName    string `json:"quick_pet_name" validate:"max=100"`
	QuickPetSpecies string `json:"quick_pet_species" validate:"max=50"`
	QuickPetNotes   string `json:"quick_pet_notes"`

	Observations string `json:"observations"`
}

// UpdateInput: PATCH con punteros, nil = no tocar.
type UpdateInput struct {
	ServiceType       *string    `json:"service_type"`
	ScheduleType      *string    `json:"schedule_type"`
	ScheduledDatetime *time.Time `json:"scheduled_datetime"`

	OriginText *string  `json:"origin_text"`
	OriginLat  *float64 `json:"origin_lat"`
	OriginLng  *float64 `json:"origin_lng"`

	DestText *string  `json:"dest_text"`
	DestLat  *float64 `json:"dest_lat"`
	DestLng  *float64 `json:"dest_lng"`

	PetID           *string `json:"pet_id"`
	QuickPetName    *string `json:"quick_pet_name"`
	QuickPetSpecies *string `json:"quick_pet_species"`
	QuickPetNotes   *string `json:"quick_pet_notes"`

	Observations *string `json:"observations"`
}

var errScheduledAtRequired = apperr.New(apperr.ErrInvalidInput, "scheduled_datetime is required when schedule_type is scheduled")

func (in Input) trimmed() Input {
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.ScheduleType = strings.TrimSpace(in.ScheduleType)
	in.OriginText = strings.TrimSpace(in.OriginText)
	in.DestText = strings.TrimSpace(in.DestText)
	in.PetID = strings.TrimSpace(in.PetID)
	in.QuickPetName = strings.TrimSpace(in.QuickPetName)
	in.QuickPetSpecies = strings.TrimSpace(in.QuickPetSpecies)
	in.QuickPetNotes = strings.TrimSpace(in.QuickPetNotes)
	in.Observations = strings.TrimSpace(in.Observations)
	return in
}

func (in Input) validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if ScheduleMode(in.ScheduleType) == ScheduleScheduled && in.ScheduledDatetime == nil {
		return errScheduledAtRequired
	}
	return nil
}

func (in Input) details() Details {
	d := Details{
		Kind:         ServiceKind(in.ServiceType),
		ScheduleMode: ScheduleMode(in.ScheduleType),
		ScheduledAt:  in.ScheduledDatetime,
		Origin:       Location{Text: in.OriginText, Lat: in.OriginLat, Lng: in.OriginLng},
		Destination:  Location{Text: in.DestText, Lat: in.DestLat, Lng: in.DestLng},
		PetID:        in.PetID,
		QuickPet: QuickPet{
			Name:    in.QuickPetName,
			Species: in.QuickPetSpecies,
			Notes:   in.QuickPetNotes,
		},
		Observations: in.Observations,
	}
	if d.ScheduleMode == ScheduleImmediate {
		d.ScheduledAt = nil
	}
	return d
}

func inputFrom(d Details) Input {
	return Input{
		ServiceType:       string(d.Kind),
		ScheduleType:      string(d.ScheduleMode),
		ScheduledDatetime: d.ScheduledAt,
		OriginText:        d.Origin.Text,
		OriginLat:         d.Origin.Lat,
		OriginLng:         d.Origin.Lng,
		DestText:          d.Destination.Text,
		DestLat:           d.Destination.Lat,
		DestLng:           d.Destination.Lng,
		PetID:             d.PetID,
		QuickPetName:      d.QuickPet.Name,
		QuickPetSpecies:   d.QuickPet.Species,
		QuickPetNotes:     d.QuickPet.Notes,
		Observations:      d.Observations,
	}
}

func (u UpdateInput) merge(in Input) Input {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&in.ServiceType, u.ServiceType)
	set(&in.ScheduleType, u.ScheduleType)
	set(&in.OriginText, u.OriginText)
	set(&in.DestText, u.DestText)
	set(&in.PetID, u.PetID)
	set(&in.QuickPetName, u.QuickPetName)
	set(&in.QuickPetSpecies, u.QuickPetSpecies)
	set(&in.QuickPetNotes, u.QuickPetNotes)
	set(&in.Observations, u.Observations)

	if u.ScheduledDatetime != nil {
		in.ScheduledDatetime = u.ScheduledDatetime
	}
	if u.OriginLat != nil {
		in.OriginLat = u.OriginLat
	}
	if u.OriginLng != nil {
		in.OriginLng = u.OriginLng
	}
	if u.DestLat != nil {
		in.DestLat = u.DestLat
	}
	if u.DestLng != nil {
		in.DestLng = u.DestLng
	}
	return in
}

func (s *Service) checkPet(ctx context.Context, ownerUserID, petID string) error {
	if petID == "" {
		return nil
	}
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrPetNotOwned
		}
		return err
	}
	if owner != ownerUserID {
		return ErrPetNotOwned
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (ServiceRequest, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return ServiceRequest{}, apperr.New(apperr.ErrInvalidInput, "owner required")
	}
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return ServiceRequest{}, err
	}
	if err := s.checkPet(ctx, ownerUserID, in.PetID); err != nil {
		return ServiceRequest{}, err
	}

	r := ServiceRequest{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Details:     in.details(),
		CreatedAt:   s.now(),
		Milestones:  []Milestone{},
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return ServiceRequest{}, err
	}
	return r, nil
}

// GetForOwner: un tercero recibe NotFound.
func (s *Service) GetForOwner(ctx context.Context, ownerUserID, id string) (ServiceRequest, error) {
	r, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return ServiceRequest{}, err
	}
	if r.OwnerUserID != ownerUserID {
		return ServiceRequest{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (ServiceRequest, error) {
	if _, err := s.GetForOwner(ctx, ownerUserID, id); err != nil {
		return ServiceRequest{}, err
	}
	if in.PetID != nil {
		if err := s.checkPet(ctx, ownerUserID, strings.TrimSpace(*in.PetID)); err != nil {
			return ServiceRequest{}, err
		}
	}

	return s.repo.Mutate(ctx, strings.TrimSpace(id), func(cur ServiceRequest) (Mutation, error) {
		if err := checkOwnerEdit(cur, ownerUserID); err != nil {
			return Mutation{}, err
		}
		merged := in.merge(inputFrom(cur.Details)).trimmed()
		if err := merged.validate(); err != nil {
			return Mutation{}, err
		}
		d := merged.details()
		return Mutation{Details: &d}, nil
	})
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id), func(cur ServiceRequest) error {
		return checkOwnerEdit(cur, ownerUserID)
	})
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]ServiceRequest, error) {
	return s.repo.List(ctx, ListFilter{OwnerUserID: ownerUserID})
}

// History: solicitudes del dueño, más recientes primero.
func (s *Service) History(ctx context.Context, ownerUserID string) ([]ServiceRequest, error) {
	return s.repo.List(ctx, ListFilter{OwnerUserID: ownerUserID, NewestFirst: true})
}

// ListAvailable: tablero del guía, sin asignar, más antiguas primero.
func (s *Service) ListAvailable(ctx context.Context, actor auth.Claims) ([]ServiceRequest, error) {
	if !actor.IsGuide() {
		return nil, ErrNotGuide
	}
	return s.repo.List(ctx, ListFilter{OnlyUnassigned: true})
}

func (s *Service) ListAssigned(ctx context.Context, actor auth.Claims) ([]ServiceRequest, error) {
	if !actor.IsGuide() {
		return nil, ErrNotGuide
	}
	return s.repo.List(ctx, ListFilter{AssignedGuideID: actor.UserID, NewestFirst: true})
}

func (s *Service) Accept(ctx context.Context, id string, actor auth.Claims) (ServiceRequest, error) {
	r, err := s.repo.Mutate(ctx, strings.TrimSpace(id), func(cur ServiceRequest) (Mutation, error) {
		if err := checkAccept(cur, actor); err != nil {
			return Mutation{}, err
		}
		return Mutation{AssignGuide: actor.UserID}, nil
	})
	s.obs.Observe("accept", err)
	return r, err
}

// RecordMilestone registra el hito; delivered confirma la solicitud en la misma escritura.
func (s *Service) RecordMilestone(ctx context.Context, id, stage string, actor auth.Claims) (Milestone, error) {
	st := Stage(strings.TrimSpace(stage))

	var created Milestone
	_, err := s.repo.Mutate(ctx, strings.TrimSpace(id), func(cur ServiceRequest) (Mutation, error) {
		if err := checkMilestone(cur, st, actor.UserID); err != nil {
			return Mutation{}, err
		}
		created = Milestone{
			ID:         uuid.NewString(),
			RequestID:  cur.ID,
			Stage:      st,
			RecordedAt: s.now(),
			RecordedBy: actor.UserID,
		}
		return Mutation{AddMilestone: &created, Confirm: st == StageDelivered}, nil
	})
	s.obs.Observe("milestone", err)
	if err != nil {
		return Milestone{}, err
	}
	return created, nil
}

// PendingFeedback: confirmadas, con guía y sin calificación.
func (s *Service) PendingFeedback(ctx context.Context, ownerUserID string) ([]ServiceRequest, error) {
	items, err := s.repo.List(ctx, ListFilter{OwnerUserID: ownerUserID, OnlyConfirmed: true})
	if err != nil {
		return nil, err
	}

	out := make([]ServiceRequest, 0, len(items))
	for _, r := range items {
		if !r.IsAssigned() {
			continue
		}
		_, rated, err := s.ratings.RatingFor(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if !rated {
			out = append(out, r)
		}
	}
	return out, nil
}

// RatingOf devuelve la calificación de la solicitud o nil.
func (s *Service) RatingOf(ctx context.Context, requestID string) (*RatingSummary, error) {
	rs, ok, err := s.ratings.RatingFor(ctx, requestID)
	if err != nil || !ok {
		return nil, err
	}
	return &rs, nil
}
