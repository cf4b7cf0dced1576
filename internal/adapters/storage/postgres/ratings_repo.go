package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-dispatch/internal/domain/ratings"

	"github.com/jmoiron/sqlx"
)

type RatingsRepo struct {
	db *sqlx.DB
}

func NewRatingsRepo(db *sqlx.DB) *RatingsRepo {
	return &RatingsRepo{db: db}
}

type ratingRow struct {
	ID        string    `db:"id"`
	RequestID string    `db:"request_id"`
	UserID    string    `db:"user_id"`
	GuideID   string    `db:"guide_id"`
	Stars     int       `db:"stars"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// Create confía en el índice único de ratings.request_id para la doble calificación concurrente.
func (r *RatingsRepo) Create(ctx context.Context, rt ratings.Rating) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO ratings (id, request_id, user_id, guide_id, stars, comment, created_at)
		VALUES (:id, :request_id, :user_id, :guide_id, :stars, :comment, :created_at)
	`, ratingRow(rt))
	if err != nil {
		if isUniqueViolation(err) {
			return ratings.ErrAlreadyRated
		}
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

func (r *RatingsRepo) GetByRequest(ctx context.Context, requestID string) (ratings.Rating, error) {
	var row ratingRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, request_id, user_id, guide_id, stars, comment, created_at
		FROM ratings
		WHERE request_id = $1
	`, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ratings.Rating{}, ratings.ErrNotFound
		}
		return ratings.Rating{}, err
	}
	return ratings.Rating(row), nil
}

func (r *RatingsRepo) StatsForGuide(ctx context.Context, guideID string) (ratings.Stats, error) {
	var row struct {
		Avg   float64 `db:"rating_avg"`
		Count int     `db:"rating_count"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT
			COALESCE(AVG(stars), 0)::float8 AS rating_avg,
			COUNT(*)::int AS rating_count
		FROM ratings
		WHERE guide_id = $1
	`, guideID)
	if err != nil {
		return ratings.Stats{}, fmt.Errorf("guide stats: %w", err)
	}
	return ratings.Stats{Avg: row.Avg, Count: row.Count}, nil
}
