package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-dispatch/internal/domain/ratings"
)

type ratingRepo struct {
	mu        sync.RWMutex
	byRequest map[string]ratings.Rating
}

func NewRatingRepo() ratings.Repository {
	return &ratingRepo{
		byRequest: make(map[string]ratings.Rating),
	}
}

// Create es el equivalente al índice único sobre request_id.
func (r *ratingRepo) Create(ctx context.Context, rt ratings.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rt.RequestID) == "" {
		return errors.New("rating request id required")
	}
	if _, exists := r.byRequest[rt.RequestID]; exists {
		return ratings.ErrAlreadyRated
	}
	r.byRequest[rt.RequestID] = rt
	return nil
}

func (r *ratingRepo) GetByRequest(ctx context.Context, requestID string) (ratings.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.byRequest[requestID]
	if !ok {
		return ratings.Rating{}, ratings.ErrNotFound
	}
	return rt, nil
}

func (r *ratingRepo) StatsForGuide(ctx context.Context, guideID string) (ratings.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		st  ratings.Stats
		sum int
	)
	for _, rt := range r.byRequest {
		if rt.GuideID != guideID {
			continue
		}
		st.Count++
		sum += rt.Stars
	}
	if st.Count > 0 {
		st.Avg = float64(sum) / float64(st.Count)
	}
	return st, nil
}
