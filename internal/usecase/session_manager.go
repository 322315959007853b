package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
)

const cacheTimeout = 2 * time.Second

type snapshotRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager owns the live sessions of the process and mirrors their snapshots
// into the snapshot cache.
type SessionManager struct {
	logger       *slog.Logger
	snapshotRepo snapshotRepo
	settings     session.Settings
	options      []session.Option

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

type liveSession struct {
	session *session.Session
	cache   *snapshotCache
}

// NewSessionManager - options are applied to every session the manager opens.
func NewSessionManager(logger *slog.Logger, snapshotRepo snapshotRepo, settings session.Settings, options ...session.Option) *SessionManager {
	return &SessionManager{
		logger:       logger.With("component", "sessionManager"),
		snapshotRepo: snapshotRepo,
		settings:     settings,
		options:      options,

		sessions: make(map[string]*liveSession),
	}
}

// Open - starts a new session in the given mode. Events go to notifier first and
// are cached afterwards.
func (that *SessionManager) Open(ctx context.Context, mode entity.Mode, notifier session.Notifier) (*session.Session, error) {
	id := uuid.NewString()
	log := that.logger.With("method", "Open", "sessionID", id)

	settings := that.settings
	if mode != "" {
		settings.Mode = mode
	}

	cache := &snapshotCache{
		logger: log,
		repo:   that.snapshotRepo,
	}

	forward := session.NotifierFunc(func(event entity.Event) {
		if notifier != nil {
			notifier.Notify(event)
		}

		cache.store(event.Game)
	})

	options := append([]session.Option{session.WithNotifier(forward)}, that.options...)
	gameSession := session.New(that.logger, id, settings, options...)

	if err := that.snapshotRepo.Save(ctx, gameSession.Snapshot()); err != nil {
		log.Warn("failed to cache initial snapshot", "error", err)
	}

	that.mu.Lock()
	that.sessions[id] = &liveSession{session: gameSession, cache: cache}
	that.mu.Unlock()

	log.Info("session opened", "mode", settings.Mode)

	return gameSession, nil
}

func (that *SessionManager) Get(id string) (*session.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	live, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return live.session, nil
}

// Snapshot - returns the live state of a session, or its cached state when the
// session lives elsewhere.
func (that *SessionManager) Snapshot(ctx context.Context, id string) (*entity.Game, error) {
	if gameSession, err := that.Get(id); err == nil {
		return gameSession.Snapshot(), nil
	}

	game, err := that.snapshotRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get cached snapshot: %w", err)
	}

	return game, nil
}

func (that *SessionManager) Close(ctx context.Context, id string) error {
	log := that.logger.With("method", "Close", "sessionID", id)

	that.mu.Lock()
	live, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	live.session.Close()
	live.cache.close()

	if err := that.snapshotRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		log.Warn("failed to drop cached snapshot", "error", err)
	}

	log.Info("session closed")

	return nil
}

// Shutdown - closes every live session.
func (that *SessionManager) Shutdown(ctx context.Context) {
	that.mu.RLock()
	ids := make([]string, 0, len(that.sessions))
	for id := range that.sessions {
		ids = append(ids, id)
	}
	that.mu.RUnlock()

	for _, id := range ids {
		if err := that.Close(ctx, id); err != nil {
			that.logger.Warn("failed to close session", "sessionID", id, "error", err)
		}
	}
}

func (that *SessionManager) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

// snapshotCache writes snapshots in version order; events from concurrent timer
// callbacks may arrive out of order.
type snapshotCache struct {
	logger *slog.Logger
	repo   snapshotRepo

	mu      sync.Mutex
	version uint64
	closed  bool
}

func (that *snapshotCache) store(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || game.Version < that.version {
		return
	}
	that.version = game.Version

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, game); err != nil {
		that.logger.Warn("failed to cache snapshot", "version", game.Version, "error", err)
	}
}

// close - waits for a save in flight and turns later stores into no-ops, so a
// dropped snapshot is not written back by a late event.
func (that *snapshotCache) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
}
