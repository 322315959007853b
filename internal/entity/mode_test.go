package entity

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Run("Known modes resolve", func(t *testing.T) {
		for _, name := range []string{"normal", "rapid", "blitz"} {
			mode, err := ParseMode(name)

			require.NoError(t, err)
			assert.Equal(t, Mode(name), mode)
		}
	})

	t.Run("Empty name selects normal", func(t *testing.T) {
		mode, err := ParseMode("")

		require.NoError(t, err)
		assert.Equal(t, ModeNormal, mode)
	})

	t.Run("Unknown name is rejected", func(t *testing.T) {
		_, err := ParseMode("bullet")

		assert.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestMode_Config(t *testing.T) {
	t.Run("Timing constants per mode", func(t *testing.T) {
		assert.Equal(t, ModeConfig{Mode: ModeNormal, FadeDelay: 5 * time.Second, RemoveDelay: 7 * time.Second, MaxMovesWithoutWin: 20}, ModeNormal.Config())
		assert.Equal(t, ModeConfig{Mode: ModeRapid, FadeDelay: 3 * time.Second, RemoveDelay: 4500 * time.Millisecond, MaxMovesWithoutWin: 15}, ModeRapid.Config())
		assert.Equal(t, ModeConfig{Mode: ModeBlitz, FadeDelay: 2 * time.Second, RemoveDelay: 3 * time.Second, MaxMovesWithoutWin: 12}, ModeBlitz.Config())
	})

	t.Run("Removal always follows fading", func(t *testing.T) {
		for _, cfg := range Modes {
			assert.Greater(t, cfg.RemoveDelay, cfg.FadeDelay, cfg.Mode)
		}
	})

	t.Run("Unknown mode falls back to normal", func(t *testing.T) {
		assert.Equal(t, ModeNormal, Mode("bullet").Config().Mode)
	})
}

func TestMode_Next(t *testing.T) {
	assert.Equal(t, ModeRapid, ModeNormal.Next())
	assert.Equal(t, ModeBlitz, ModeRapid.Next())
	assert.Equal(t, ModeNormal, ModeBlitz.Next())
	assert.Equal(t, ModeNormal, Mode("bullet").Next())
}
