package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/testing/suite"
)

const testTTL = time.Minute

func TestSnapshotRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewSnapshotRepository(st.Storage, testTTL)

	// Given: a snapshot of a running session
	game := &entity.Game{
		ID:     "123",
		Status: entity.StatusOngoing,
	}

	// When: Save is called
	err := repo.Save(ctx, game)

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, testTTL)
}

func TestSnapshotRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewSnapshotRepository(st.Storage, testTTL)

		// Given: a stored snapshot
		game := &entity.Game{
			ID:            "123",
			Board:         [entity.BoardSize]string{entity.PlayerX, entity.EmptyCell, entity.PlayerO},
			Fading:        [entity.BoardSize]bool{true},
			Turn:          entity.PlayerX,
			Status:        entity.StatusOngoing,
			Mode:          entity.ModeBlitz,
			Scores:        entity.Scores{X: 1, Draws: 2},
			MoveCount:     2,
			RoundTimeLeft: 42,
			Version:       7,
		}

		require.NoError(t, repo.Save(ctx, game))

		// When: GetByID is called with existing ID
		retrieved, err := repo.GetByID(ctx, game.ID)

		// Then: the retrieved snapshot should match the saved one
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewSnapshotRepository(st.Storage, testTTL)

		// When: GetByID is called with non-existent ID
		retrieved, err := repo.GetByID(ctx, "9999999")

		// Then: an ErrSnapshotNotFound error should be returned
		require.ErrorIs(t, err, ErrSnapshotNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSnapshotRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewSnapshotRepository(st.Storage, testTTL)

		// Given: a stored snapshot
		game := &entity.Game{
			ID:     "123",
			Status: entity.StatusFinished,
		}

		require.NoError(t, repo.Save(ctx, game))

		// When: DeleteByID is called with existing ID
		err := repo.DeleteByID(ctx, game.ID)

		// Then: the snapshot is gone
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewSnapshotRepository(st.Storage, testTTL)

		// When: DeleteByID is called with non-existent ID
		err := repo.DeleteByID(ctx, "9999999")

		// Then: an ErrSnapshotNotFound error should be returned
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})
}
