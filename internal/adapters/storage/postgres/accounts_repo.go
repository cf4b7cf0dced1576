package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-dispatch/internal/domain/accounts"
	"pet-dispatch/internal/ports/auth"

	"github.com/jmoiron/sqlx"
)

type AccountsRepo struct {
	db *sqlx.DB
}

func NewAccountsRepo(db *sqlx.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

type accountRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         auth.Role `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

const accountColumns = `id, username, email, password_hash, first_name, last_name, role, created_at`

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (:id, :username, :email, :password_hash, :first_name, :last_name, :role, :created_at)
	`, accountRow(a))
	if err != nil {
		if isUniqueViolation(err) {
			return accounts.ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, strings.TrimSpace(id))
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE lower(username) = lower($1)`, strings.TrimSpace(username))
}

func (r *AccountsRepo) getOne(ctx context.Context, query string, arg string) (accounts.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, err
	}
	return accounts.Account(row), nil
}
