package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// Outcome is the result of a cell click.
type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomePlaced
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomePlaced:
		return "placed"
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "rejected"
	}
}

// cellTimer is the fade/remove pair of one placed mark.
type cellTimer struct {
	token    uint64
	placedAt time.Time
	fadeAt   time.Time
	removeAt time.Time
	fade     *clock.Timer
	remove   *clock.Timer
}

// Session is one player's game: board, decay timers, round clock and scores.
// Every timer callback captures the epoch it was scheduled in; reset, round end and
// close advance the epoch, which turns late callbacks into no-ops.
type Session struct {
	id       string
	logger   *slog.Logger
	clock    clock.Clock
	settings Settings
	notifier Notifier

	mu sync.Mutex

	board         [entity.BoardSize]string
	fading        [entity.BoardSize]bool
	cellTimers    [entity.BoardSize]*cellTimer
	currentPlayer string
	scores        entity.Scores
	gameOver      bool
	winner        string
	winningLine   []int
	moveCount     int
	modeCfg       entity.ModeConfig
	roundTimeLeft int
	roundTimer    *clock.Timer
	restartTimer  *clock.Timer

	epoch     uint64
	nextToken uint64
	version   uint64
	closed    bool
	pending   []entity.Event
}

// New - creates a session and starts its round clock.
func New(logger *slog.Logger, id string, settings Settings, opts ...Option) *Session {
	that := &Session{
		id:       id,
		logger:   logger.With("component", "session", "sessionID", id),
		clock:    clock.New(),
		settings: settings,

		currentPlayer: entity.PlayerX,
		modeCfg:       settings.Mode.Config(),
	}

	for _, opt := range opts {
		opt(that)
	}

	that.update(func() {
		that.startRoundClock()
	})

	return that
}

func (that *Session) ID() string {
	return that.id
}

// Play - handles a cell click: place, evaluate, then hand the turn over.
func (that *Session) Play(cell int) Outcome {
	outcome := OutcomeRejected

	that.update(func() {
		if !that.makeMove(cell) {
			return
		}

		if that.checkWin() != entity.EmptyCell {
			outcome = OutcomeWin
			return
		}

		if that.checkDraw() {
			outcome = OutcomeDraw
			return
		}

		that.switchPlayer()
		outcome = OutcomePlaced
	})

	return outcome
}

// MakeMove - places the current player's mark and schedules its decay.
// Returns false and leaves the board untouched for invalid cells, occupied cells
// and finished rounds.
func (that *Session) MakeMove(cell int) bool {
	var placed bool

	that.update(func() {
		placed = that.makeMove(cell)
	})

	return placed
}

// CheckWin - returns the winning mark or an empty string.
// A win is scored once; later calls in the same round report it without re-scoring.
func (that *Session) CheckWin() string {
	var winner string

	that.update(func() {
		winner = that.checkWin()
	})

	return winner
}

// CheckDraw - reports whether the round ended as a draw.
func (that *Session) CheckDraw() bool {
	var draw bool

	that.update(func() {
		draw = that.checkDraw()
	})

	return draw
}

func (that *Session) SwitchPlayer() {
	that.update(func() {
		if that.closed {
			return
		}

		that.switchPlayer()
	})
}

// Reset - starts a new round, keeping the scores.
func (that *Session) Reset() {
	that.update(func() {
		if that.closed {
			return
		}

		that.reset()
	})
}

// ResetScores - starts a new round with zeroed scores.
func (that *Session) ResetScores() {
	that.update(func() {
		if that.closed {
			return
		}

		that.scores = entity.Scores{}
		that.reset()
	})
}

// SetMode - switches the timing constants. Marks already on the board keep the
// delays they were scheduled with.
func (that *Session) SetMode(mode entity.Mode) {
	that.update(func() {
		if that.closed {
			return
		}

		that.modeCfg = mode.Config()
		that.logger.Info("mode changed", "mode", that.modeCfg.Mode)
		that.emit(entity.EventMode, entity.NoCell)
	})
}

// Close - cancels every pending timer. The session stays readable.
func (that *Session) Close() {
	that.update(func() {
		if that.closed {
			return
		}

		that.closed = true
		that.cancelTimers()
		that.logger.Info("session closed")
	})
}

func (that *Session) Snapshot() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Session) Scores() entity.Scores {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.scores
}

func (that *Session) CurrentPlayer() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.currentPlayer
}

func (that *Session) RoundTimeLeft() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.roundTimeLeft
}

func (that *Session) Mode() entity.Mode {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.modeCfg.Mode
}

func (that *Session) IsOver() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameOver
}

// update runs fn under the lock and then hands the queued events to the notifier.
func (that *Session) update(fn func()) {
	that.mu.Lock()
	fn()
	events := that.pending
	that.pending = nil
	that.mu.Unlock()

	if that.notifier == nil {
		return
	}

	for _, event := range events {
		that.notifier.Notify(event)
	}
}

func (that *Session) emit(kind entity.EventKind, cell int) {
	that.version++
	that.pending = append(that.pending, entity.Event{
		Kind: kind,
		Cell: cell,
		Game: that.snapshot(),
	})
}

func (that *Session) snapshot() *entity.Game {
	status := entity.StatusOngoing
	if that.gameOver {
		status = entity.StatusFinished
	}

	var line []int
	if that.winningLine != nil {
		line = append(line, that.winningLine...)
	}

	return &entity.Game{
		ID:            that.id,
		Board:         that.board,
		Fading:        that.fading,
		Countdown:     that.countdown(),
		Turn:          that.currentPlayer,
		Winner:        that.winner,
		WinningLine:   line,
		Status:        status,
		Mode:          that.modeCfg.Mode,
		Scores:        that.scores,
		MoveCount:     that.moveCount,
		RoundTimeLeft: that.roundTimeLeft,
		LowTime:       that.roundTimeLeft <= that.settings.LowTimeThreshold,
		Epoch:         that.epoch,
		Version:       that.version,
	}
}

func (that *Session) countdown() [entity.BoardSize]entity.Countdown {
	var countdown [entity.BoardSize]entity.Countdown

	now := that.clock.Now()
	for cell, timer := range that.cellTimers {
		if timer == nil {
			continue
		}

		start, end := timer.placedAt, timer.fadeAt
		if that.fading[cell] {
			start, end = timer.fadeAt, timer.removeAt
		}

		countdown[cell] = entity.Countdown{
			LeftMS:  max(end.Sub(now), 0).Milliseconds(),
			TotalMS: end.Sub(start).Milliseconds(),
		}
	}

	return countdown
}
