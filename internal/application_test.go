package application

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

func TestSessionSettings(t *testing.T) {
	t.Run("Maps the game section", func(t *testing.T) {
		// Given: A config with a blitz default and custom timings
		conf := &config.Config{Game: config.Game{
			DefaultMode:         "blitz",
			RoundDuration:       30 * time.Second,
			WinRestartDelay:     time.Second,
			TimeoutRestartDelay: 0,
		}}

		// When: Building the session settings
		settings, err := SessionSettings(conf)

		// Then: The values are carried over, a zero delay disables the restart
		require.NoError(t, err)
		assert.Equal(t, entity.ModeBlitz, settings.Mode)
		assert.Equal(t, 30*time.Second, settings.RoundDuration)
		assert.Equal(t, time.Second, settings.WinRestartDelay)
		assert.Zero(t, settings.TimeoutRestartDelay)
		assert.Equal(t, 10, settings.LowTimeThreshold)
	})

	t.Run("Keeps the default round duration when unset", func(t *testing.T) {
		// Given: A config without a round duration
		conf := &config.Config{}

		// When: Building the session settings
		settings, err := SessionSettings(conf)

		// Then: Normal mode and a 60 second round are used
		require.NoError(t, err)
		assert.Equal(t, entity.ModeNormal, settings.Mode)
		assert.Equal(t, 60*time.Second, settings.RoundDuration)
	})

	t.Run("Rejects unknown modes", func(t *testing.T) {
		// Given: A config with an unknown mode
		conf := &config.Config{Game: config.Game{DefaultMode: "bullet"}}

		// When: Building the session settings
		_, err := SessionSettings(conf)

		// Then: The mode error is returned
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})

	t.Run("Rejects rounds shorter than a second", func(t *testing.T) {
		// Given: A config with a half second round
		conf := &config.Config{Game: config.Game{RoundDuration: 500 * time.Millisecond}}

		// When: Building the session settings
		_, err := SessionSettings(conf)

		// Then: The duration is refused
		require.ErrorIs(t, err, ErrRoundTooShort)
	})

	t.Run("Accepts a one second round", func(t *testing.T) {
		// Given: A config with the shortest allowed round
		conf := &config.Config{Game: config.Game{RoundDuration: time.Second}}

		// When: Building the session settings
		settings, err := SessionSettings(conf)

		// Then: The duration is kept
		require.NoError(t, err)
		assert.Equal(t, time.Second, settings.RoundDuration)
	})
}

func TestRedisAddr(t *testing.T) {
	t.Run("Joins host and port", func(t *testing.T) {
		// Given: A config with a redis host
		conf := &config.Config{Redis: config.Redis{Host: "cache", Port: "6380"}}

		// When: Building the address
		addr, err := RedisAddr(conf)

		// Then: host:port is returned
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", addr)
	})

	t.Run("Rejects a missing host", func(t *testing.T) {
		// Given: A config without a redis host
		conf := &config.Config{Redis: config.Redis{Port: "6379"}}

		// When: Building the address
		_, err := RedisAddr(conf)

		// Then: The address error is returned
		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, LogLevel("warn"))
	assert.Equal(t, slog.LevelError, LogLevel("error"))
	assert.Equal(t, slog.LevelInfo, LogLevel("info"))
	assert.Equal(t, slog.LevelInfo, LogLevel(""))
}
