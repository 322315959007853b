package session

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/tictactoe"
)

// The helpers below expect the session lock to be held.

func (that *Session) makeMove(cell int) bool {
	if that.closed || that.gameOver {
		return false
	}

	if err := tictactoe.ValidateMove(that.board, cell); err != nil {
		that.logger.Debug("move rejected", "cell", cell, "error", err)
		return false
	}

	that.board[cell] = that.currentPlayer
	that.moveCount++
	that.scheduleDecay(cell)
	that.emit(entity.EventMove, cell)

	return true
}

func (that *Session) checkWin() string {
	if that.gameOver {
		if that.winner == entity.PlayerTie {
			return entity.EmptyCell
		}

		return that.winner
	}

	winner, line := tictactoe.FindWinner(that.board)
	if winner == entity.EmptyCell {
		return entity.EmptyCell
	}

	that.gameOver = true
	that.winner = winner
	that.winningLine = line[:]
	that.scores.AddWin(winner)
	that.endRound(that.settings.WinRestartDelay)

	that.logger.Info("round won", "winner", winner, "line", line)
	that.emit(entity.EventWin, entity.NoCell)

	return winner
}

func (that *Session) checkDraw() bool {
	if that.gameOver {
		return that.winner == entity.PlayerTie
	}

	if !tictactoe.MoveCapReached(that.moveCount, that.modeCfg.MaxMovesWithoutWin) {
		return false
	}

	that.gameOver = true
	that.winner = entity.PlayerTie
	that.scores.AddDraw()
	that.endRound(that.settings.WinRestartDelay)

	that.logger.Info("round drawn", "moves", that.moveCount)
	that.emit(entity.EventDraw, entity.NoCell)

	return true
}

func (that *Session) switchPlayer() {
	that.currentPlayer = entity.ToggleMark(that.currentPlayer)
	that.emit(entity.EventSwitch, entity.NoCell)
}

func (that *Session) reset() {
	that.cancelTimers()

	that.board = [entity.BoardSize]string{}
	that.fading = [entity.BoardSize]bool{}
	that.currentPlayer = entity.PlayerX
	that.gameOver = false
	that.winner = entity.EmptyCell
	that.winningLine = nil
	that.moveCount = 0

	that.startRoundClock()
	that.emit(entity.EventReset, entity.NoCell)
}

// endRound freezes the board and, unless disabled, schedules the next round.
func (that *Session) endRound(restartDelay time.Duration) {
	that.cancelTimers()

	if restartDelay <= 0 {
		return
	}

	epoch := that.epoch
	that.restartTimer = that.clock.AfterFunc(restartDelay, func() {
		that.onRestart(epoch)
	})
}

// cancelTimers stops every pending timer and invalidates callbacks already in flight.
func (that *Session) cancelTimers() {
	that.epoch++

	for i, timer := range that.cellTimers {
		if timer != nil {
			stopTimer(timer.fade)
			stopTimer(timer.remove)
			that.cellTimers[i] = nil
		}
	}

	stopTimer(that.roundTimer)
	stopTimer(that.restartTimer)
	that.roundTimer = nil
	that.restartTimer = nil
}

func (that *Session) scheduleDecay(cell int) {
	that.nextToken++

	epoch, token := that.epoch, that.nextToken
	cfg := that.modeCfg

	now := that.clock.Now()

	that.cellTimers[cell] = &cellTimer{
		token:    token,
		placedAt: now,
		fadeAt:   now.Add(cfg.FadeDelay),
		removeAt: now.Add(cfg.RemoveDelay),
		fade: that.clock.AfterFunc(cfg.FadeDelay, func() {
			that.onFade(epoch, cell, token)
		}),
		remove: that.clock.AfterFunc(cfg.RemoveDelay, func() {
			that.onRemove(epoch, cell, token)
		}),
	}
}

func (that *Session) startRoundClock() {
	that.roundTimeLeft = that.settings.roundSeconds()
	that.scheduleTick()
}

func (that *Session) scheduleTick() {
	epoch := that.epoch
	that.roundTimer = that.clock.AfterFunc(time.Second, func() {
		that.onTick(epoch)
	})
}

func (that *Session) isStale(epoch uint64) bool {
	return that.closed || epoch != that.epoch
}

func (that *Session) ownsCell(epoch uint64, cell int, token uint64) bool {
	if that.isStale(epoch) {
		return false
	}

	timer := that.cellTimers[cell]

	return timer != nil && timer.token == token
}

func (that *Session) onFade(epoch uint64, cell int, token uint64) {
	that.update(func() {
		if !that.ownsCell(epoch, cell, token) {
			return
		}

		that.fading[cell] = true
		that.emit(entity.EventFade, cell)
	})
}

func (that *Session) onRemove(epoch uint64, cell int, token uint64) {
	that.update(func() {
		if !that.ownsCell(epoch, cell, token) {
			return
		}

		that.board[cell] = entity.EmptyCell
		that.fading[cell] = false
		that.cellTimers[cell] = nil
		that.emit(entity.EventRemove, cell)

		if that.checkWin() != entity.EmptyCell {
			return
		}

		that.checkDraw()
	})
}

func (that *Session) onTick(epoch uint64) {
	that.update(func() {
		if that.isStale(epoch) {
			return
		}

		that.roundTimeLeft--
		that.emit(entity.EventTick, entity.NoCell)

		if that.roundTimeLeft > 0 {
			that.scheduleTick()
			return
		}

		that.timeUp()
	})
}

// timeUp ends the round as a forced draw.
func (that *Session) timeUp() {
	that.gameOver = true
	that.winner = entity.PlayerTie
	that.scores.AddDraw()
	that.endRound(that.settings.TimeoutRestartDelay)

	that.logger.Info("round timed out", "moves", that.moveCount)
	that.emit(entity.EventTimeUp, entity.NoCell)
}

func (that *Session) onRestart(epoch uint64) {
	that.update(func() {
		if that.isStale(epoch) {
			return
		}

		that.reset()
	})
}

func stopTimer(timer *clock.Timer) {
	if timer != nil {
		timer.Stop()
	}
}
