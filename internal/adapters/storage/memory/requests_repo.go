package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-dispatch/internal/domain/requests"
)

// requestRepo guarda cada solicitud junto con sus hitos; borrar la solicitud borra sus hitos.
// Un único mutex serializa check + escritura de Mutate.
type requestRepo struct {
	mu   sync.RWMutex
	byID map[string]requests.ServiceRequest
}

func NewRequestRepo() requests.Repository {
	return &requestRepo{
		byID: make(map[string]requests.ServiceRequest),
	}
}

// clone evita que el caller comparta el slice de hitos con el store.
func clone(sr requests.ServiceRequest) requests.ServiceRequest {
	ms := make([]requests.Milestone, len(sr.Milestones))
	copy(ms, sr.Milestones)
	sr.Milestones = ms
	return sr
}

func (r *requestRepo) Create(ctx context.Context, sr requests.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sr.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[sr.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[sr.ID] = clone(sr)
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (requests.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sr, ok := r.byID[id]
	if !ok {
		return requests.ServiceRequest{}, requests.ErrNotFound
	}
	return clone(sr), nil
}

func (r *requestRepo) List(ctx context.Context, f requests.ListFilter) ([]requests.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]requests.ServiceRequest, 0)
	for _, sr := range r.byID {
		if f.OwnerUserID != "" && sr.OwnerUserID != f.OwnerUserID {
			continue
		}
		if f.AssignedGuideID != "" && sr.AssignedGuideID != f.AssignedGuideID {
			continue
		}
		if f.OnlyUnassigned && sr.IsAssigned() {
			continue
		}
		if f.OnlyConfirmed && !sr.Confirmed {
			continue
		}
		out = append(out, clone(sr))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			if f.NewestFirst {
				return a.ID > b.ID
			}
			return a.ID < b.ID
		}
		if f.NewestFirst {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return out, nil
}

func (r *requestRepo) Mutate(ctx context.Context, id string, fn requests.MutateFunc) (requests.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return requests.ServiceRequest{}, requests.ErrNotFound
	}

	m, err := fn(clone(cur))
	if err != nil {
		return requests.ServiceRequest{}, err
	}

	next := requests.Apply(cur, m)
	r.byID[id] = next
	return clone(next), nil
}

func (r *requestRepo) Delete(ctx context.Context, id string, guard func(requests.ServiceRequest) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return requests.ErrNotFound
	}
	if guard != nil {
		if err := guard(clone(cur)); err != nil {
			return err
		}
	}
	delete(r.byID, id)
	return nil
}
