package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
)

// Mode selects the decay timing and the move cap of a round.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeRapid  Mode = "rapid"
	ModeBlitz  Mode = "blitz"
)

// ModeConfig holds the timing constants of a mode.
type ModeConfig struct {
	Mode               Mode
	FadeDelay          time.Duration
	RemoveDelay        time.Duration
	MaxMovesWithoutWin int
}

// Modes lists the selectable modes in cycling order.
var Modes = []ModeConfig{
	{Mode: ModeNormal, FadeDelay: 5 * time.Second, RemoveDelay: 7 * time.Second, MaxMovesWithoutWin: 20},
	{Mode: ModeRapid, FadeDelay: 3 * time.Second, RemoveDelay: 4500 * time.Millisecond, MaxMovesWithoutWin: 15},
	{Mode: ModeBlitz, FadeDelay: 2 * time.Second, RemoveDelay: 3 * time.Second, MaxMovesWithoutWin: 12},
}

// ParseMode - resolves a mode by name. An empty name selects normal.
func ParseMode(name string) (Mode, error) {
	if name == "" {
		return ModeNormal, nil
	}

	for _, cfg := range Modes {
		if string(cfg.Mode) == name {
			return cfg.Mode, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, name)
}

// Config returns the constants of the mode, falling back to normal for unknown values.
func (that Mode) Config() ModeConfig {
	for _, cfg := range Modes {
		if cfg.Mode == that {
			return cfg
		}
	}

	return Modes[0]
}

// Next returns the mode that follows in the selector.
func (that Mode) Next() Mode {
	for i, cfg := range Modes {
		if cfg.Mode == that {
			return Modes[(i+1)%len(Modes)].Mode
		}
	}

	return Modes[0].Mode
}
