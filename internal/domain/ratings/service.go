package ratings

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-dispatch/internal/domain/accounts"
	"pet-dispatch/internal/domain/requests"
	"pet-dispatch/internal/ports/auth"

	"github.com/google/uuid"
)

// RequestReader lo implementa requests.Repository.
type RequestReader interface {
	GetByID(ctx context.Context, id string) (requests.ServiceRequest, error)
}

// AccountReader lo implementa accounts.Service.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (accounts.Account, error)
}

type Observer interface {
	Observe(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, error) {}

type Service struct {
	repo     Repository
	requests RequestReader
	accounts AccountReader
	obs      Observer
	now      func() time.Time
}

func NewService(repo Repository, reqs RequestReader, accts AccountReader, obs Observer) *Service {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{
		repo:     repo,
		requests: reqs,
		accounts: accts,
		obs:      obs,
		now:      time.Now,
	}
}

type RateInput struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// Rate califica una solicitud entregada. El guía calificado es el asignado al momento de calificar.
//
// Las precondiciones (entregada, con guía) son monótonas: una vez ciertas no vuelven atrás,
// así que la única carrera posible es la doble calificación, que Create rechaza atómicamente.
func (s *Service) Rate(ctx context.Context, requestID string, actor auth.Claims, in RateInput) (Rating, error) {
	rt, err := s.rate(ctx, strings.TrimSpace(requestID), actor, in)
	s.obs.Observe("rate", err)
	return rt, err
}

func (s *Service) rate(ctx context.Context, requestID string, actor auth.Claims, in RateInput) (Rating, error) {
	sr, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return Rating{}, err
	}

	alreadyRated := false
	if sr.OwnerUserID == actor.UserID && sr.IsDelivered() {
		_, err := s.repo.GetByRequest(ctx, sr.ID)
		switch {
		case err == nil:
			alreadyRated = true
		case !errors.Is(err, ErrNotFound):
			return Rating{}, err
		}
	}

	if err := checkRate(sr, actor.UserID, alreadyRated, in.Stars); err != nil {
		return Rating{}, err
	}

	rt := Rating{
		ID:        uuid.NewString(),
		RequestID: sr.ID,
		UserID:    actor.UserID,
		GuideID:   sr.AssignedGuideID,
		Stars:     in.Stars,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, rt); err != nil {
		return Rating{}, err
	}
	return rt, nil
}

// GuideProfile agrega las calificaciones del guía; se recalcula siempre.
func (s *Service) GuideProfile(ctx context.Context, guideID string) (GuideProfile, error) {
	p, err := s.guideProfile(ctx, strings.TrimSpace(guideID))
	s.obs.Observe("guide_profile", err)
	return p, err
}

func (s *Service) guideProfile(ctx context.Context, guideID string) (GuideProfile, error) {
	acct, err := s.accounts.GetByID(ctx, guideID)
	if err != nil {
		return GuideProfile{}, err
	}

	st, err := s.repo.StatsForGuide(ctx, acct.ID)
	if err != nil {
		return GuideProfile{}, err
	}

	return GuideProfile{
		GuideID:     acct.ID,
		Username:    acct.Username,
		FullName:    acct.FullName(),
		RatingAvg:   st.Avg,
		RatingCount: st.Count,
	}, nil
}

// RatingFor implementa requests.RatingLookup.
func (s *Service) RatingFor(ctx context.Context, requestID string) (requests.RatingSummary, bool, error) {
	rt, err := s.repo.GetByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return requests.RatingSummary{}, false, nil
		}
		return requests.RatingSummary{}, false, err
	}
	return requests.RatingSummary{
		ID:        rt.ID,
		Stars:     rt.Stars,
		Comment:   rt.Comment,
		CreatedAt: rt.CreatedAt,
	}, true, nil
}
