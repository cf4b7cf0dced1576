package memory

import (
	"context"
	"testing"

	"pet-dispatch/internal/domain/ratings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepo_OnePerRequest(t *testing.T) {
	repo := NewRatingRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, ratings.Rating{ID: "1", RequestID: "r-1", GuideID: "g", Stars: 4}))
	err := repo.Create(ctx, ratings.Rating{ID: "2", RequestID: "r-1", GuideID: "g", Stars: 1})
	assert.ErrorIs(t, err, ratings.ErrAlreadyRated)

	got, err := repo.GetByRequest(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stars)

	_, err = repo.GetByRequest(ctx, "r-2")
	assert.ErrorIs(t, err, ratings.ErrNotFound)
}

func TestRatingRepo_StatsForGuide(t *testing.T) {
	repo := NewRatingRepo()
	ctx := context.Background()

	st, err := repo.StatsForGuide(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, ratings.Stats{}, st)

	require.NoError(t, repo.Create(ctx, ratings.Rating{RequestID: "r-1", GuideID: "g-1", Stars: 5}))
	require.NoError(t, repo.Create(ctx, ratings.Rating{RequestID: "r-2", GuideID: "g-1", Stars: 2}))
	require.NoError(t, repo.Create(ctx, ratings.Rating{RequestID: "r-3", GuideID: "g-2", Stars: 1}))

	st, err = repo.StatsForGuide(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 3.5, st.Avg, 1e-9)
}
