package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/platform/validate"
	"pet-dispatch/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
	now  func() time.Time
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Role      string `json:"role" validate:"omitempty,oneof=user guide"`
}

var errPasswordMismatch = apperr.New(apperr.ErrInvalidInput, "passwords do not match")

func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return Account{}, err
	}
	if in.Password != in.Password2 {
		return Account{}, errPasswordMismatch
	}

	role := auth.RoleUser
	if r, ok := auth.ParseRole(in.Role); ok {
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	a := Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// RoleOf implementa auth.RoleLookup.
func (s *Service) RoleOf(ctx context.Context, userID string) (auth.Role, error) {
	a, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return a.Role, nil
}
