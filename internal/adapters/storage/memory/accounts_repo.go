package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-dispatch/internal/domain/accounts"
)

type accountRepo struct {
	mu         sync.RWMutex
	byID       map[string]accounts.Account
	byUsername map[string]string
}

func NewAccountRepo() accounts.Repository {
	return &accountRepo{
		byID:       make(map[string]accounts.Account),
		byUsername: make(map[string]string),
	}
}

func (r *accountRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	key := strings.ToLower(a.Username)
	if _, taken := r.byUsername[key]; taken {
		return accounts.ErrUsernameTaken
	}
	r.byID[a.ID] = a
	r.byUsername[key] = a.ID
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return accounts.Account{}, accounts.ErrNotFound
	}
	return a, nil
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return accounts.Account{}, accounts.ErrNotFound
	}
	return r.byID[id], nil
}
