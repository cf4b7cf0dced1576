package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-dispatch/internal/platform/apperr"
	"pet-dispatch/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	byID map[string]Account
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Account{}}
}

func (r *testRepo) Create(_ context.Context, a Account) error {
	for _, existing := range r.byID {
		if existing.Username == a.Username {
			return ErrUsernameTaken
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByUsername(_ context.Context, username string) (Account, error) {
	for _, a := range r.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.cost = bcrypt.MinCost
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:  "ana",
		Email:     "ana@example.com",
		Password:  "secret1",
		Password2: "secret1",
		FirstName: "Ana",
		LastName:  "Pérez",
		Role:      "guide",
	}
}

func TestService_Register_HashesPasswordAndSetsRole(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, auth.RoleGuide, a.Role)
	assert.Equal(t, "Ana Pérez", a.FullName())
	assert.NotEqual(t, "secret1", a.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret1")))

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}

func TestService_Register_DefaultRoleIsUser(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	in.Role = ""

	a, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, a.Role)
}

func TestService_Register_Validation(t *testing.T) {
	cases := map[string]func(*RegisterInput){
		"missing username": func(in *RegisterInput) { in.Username = "  " },
		"short password":   func(in *RegisterInput) { in.Password, in.Password2 = "abc", "abc" },
		"mismatch":         func(in *RegisterInput) { in.Password2 = "secret2" },
		"bad email":        func(in *RegisterInput) { in.Email = "nope" },
		"bad role":         func(in *RegisterInput) { in.Role = "admin" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService()
			in := validInput()
			mutate(&in)

			_, err := svc.Register(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_RoleOf(t *testing.T) {
	svc, _ := newTestService()
	a, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	role, err := svc.RoleOf(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleGuide, role)

	_, err = svc.RoleOf(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
