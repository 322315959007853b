package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
	"github.com/rocketscienceinc/fading-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/fading-tictactoe/transport/rest"
	"github.com/rocketscienceinc/fading-tictactoe/transport/websocket"
	"github.com/rocketscienceinc/fading-tictactoe/web"
)

const (
	shutdownTimeout  = 5 * time.Second
	minRoundDuration = time.Second
)

var (
	ErrAddrNotFound  = errors.New("redis address string is empty")
	ErrRoundTooShort = errors.New("round duration must be at least one second")
)

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	settings, err := SessionSettings(conf)
	if err != nil {
		return err
	}

	redisAddrString, err := RedisAddr(conf)
	if err != nil {
		return err
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	snapshotRepo := repository.NewSnapshotRepository(redisStorage, conf.Redis.SnapshotTTL)
	sessionManager := usecase.NewSessionManager(logger, snapshotRepo, settings)

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		sessionManager.Shutdown(shutdownCtx)
	}()

	router := rest.NewRouter(logger, sessionManager, web.Static)
	wsServer := websocket.New(logger, sessionManager)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(groupCtx, conf.HTTPPort, router); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}

		return nil
	})

	err = group.Wait()

	log.Info("Application stopped")

	return err
}

// SessionSettings - maps the game section of the config onto session settings.
func SessionSettings(conf *config.Config) (session.Settings, error) {
	mode, err := entity.ParseMode(conf.Game.DefaultMode)
	if err != nil {
		return session.Settings{}, fmt.Errorf("invalid default mode: %w", err)
	}

	settings := session.DefaultSettings()
	settings.Mode = mode

	if conf.Game.RoundDuration > 0 {
		if conf.Game.RoundDuration < minRoundDuration {
			return session.Settings{}, fmt.Errorf("%w: %s", ErrRoundTooShort, conf.Game.RoundDuration)
		}

		settings.RoundDuration = conf.Game.RoundDuration
	}

	settings.WinRestartDelay = conf.Game.WinRestartDelay
	settings.TimeoutRestartDelay = conf.Game.TimeoutRestartDelay

	return settings, nil
}

// RedisAddr - returns host:port of the snapshot cache.
func RedisAddr(conf *config.Config) (string, error) {
	if conf.Redis.Host == "" {
		return "", ErrAddrNotFound
	}

	return conf.Redis.GetRedisAddr(), nil
}

// LogLevel - maps the configured level name, defaulting to info.
func LogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
