package session

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const (
	defaultRoundDuration       = 60 * time.Second
	defaultWinRestartDelay     = 3 * time.Second
	defaultTimeoutRestartDelay = 2 * time.Second
	defaultLowTimeThreshold    = 10
)

// Settings are the per-session constants that do not depend on the mode.
// A non-positive restart delay disables the automatic restart after a round ends.
type Settings struct {
	Mode                entity.Mode
	RoundDuration       time.Duration
	WinRestartDelay     time.Duration
	TimeoutRestartDelay time.Duration
	LowTimeThreshold    int
}

func DefaultSettings() Settings {
	return Settings{
		Mode:                entity.ModeNormal,
		RoundDuration:       defaultRoundDuration,
		WinRestartDelay:     defaultWinRestartDelay,
		TimeoutRestartDelay: defaultTimeoutRestartDelay,
		LowTimeThreshold:    defaultLowTimeThreshold,
	}
}

// roundSeconds never drops below one, so the clock cannot start at zero and tick negative.
func (that Settings) roundSeconds() int {
	return max(int(that.RoundDuration/time.Second), 1)
}

// Notifier receives session events. Events are delivered outside the session lock,
// possibly from several timer goroutines at once.
type Notifier interface {
	Notify(event entity.Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(event entity.Event)

func (that NotifierFunc) Notify(event entity.Event) {
	that(event)
}

type Option func(*Session)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Session) {
		s.notifier = notifier
	}
}
