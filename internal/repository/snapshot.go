package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

const snapshotKeyPrefix = "session:"

type SnapshotRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// dbSnapshot caches the latest snapshot of each live session. Entries expire after ttl,
// so a session that is never closed cleanly does not linger.
type dbSnapshot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotRepository(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, snapshotKeyPrefix+game.ID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, snapshotKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &game, nil
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, snapshotKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	if deleted == 0 {
		return ErrSnapshotNotFound
	}

	return nil
}
