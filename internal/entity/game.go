package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

var ErrUnknownGameStatus = errors.New("unknown game status")

// Scores holds cumulative round results of a session.
type Scores struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// AddWin - credits a win to the given mark. Unknown marks are ignored.
func (that *Scores) AddWin(mark string) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

func (that *Scores) AddDraw() {
	that.Draws++
}

func (that Scores) String() string {
	return fmt.Sprintf("X: %d | O: %d | Draws: %d", that.X, that.O, that.Draws)
}

// Countdown is the running decay phase of a placed mark: LeftMS of TotalMS
// milliseconds until it fades, or once fading, until it vanishes.
type Countdown struct {
	LeftMS  int64 `json:"left_ms"`
	TotalMS int64 `json:"total_ms"`
}

// Game is a point-in-time view of a session handed to presentation layers.
type Game struct {
	ID            string               `json:"id"`
	Board         [BoardSize]string    `json:"board"`
	Fading        [BoardSize]bool      `json:"fading"`
	Countdown     [BoardSize]Countdown `json:"countdown"`
	Turn          string               `json:"player_turn"`
	Winner        string               `json:"winner"`
	WinningLine   []int                `json:"winning_line,omitempty"`
	Status        string               `json:"status"`
	Mode          Mode                 `json:"mode"`
	Scores        Scores               `json:"scores"`
	MoveCount     int                  `json:"move_count"`
	RoundTimeLeft int                  `json:"round_time_left"`
	LowTime       bool                 `json:"low_time"`
	Epoch         uint64               `json:"epoch"`
	Version       uint64               `json:"version"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// RoundClock formats the remaining round time as m:ss.
func (that *Game) RoundClock() string {
	left := max(that.RoundTimeLeft, 0)

	return fmt.Sprintf("%d:%02d", left/60, left%60)
}

// ToggleMark returns the opponent of the given mark.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
