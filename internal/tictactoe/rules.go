package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// WinCombos are the rows, columns and diagonals of the board, in scan order.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ValidateMove - checks that a mark can be placed on the cell.
func ValidateMove(board [entity.BoardSize]string, cell int) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// FindWinner - returns the mark and the line of the first fully matching triple.
// The mark is empty when no triple matches.
func FindWinner(board [entity.BoardSize]string) (string, [3]int) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a, combo
		}
	}

	return entity.EmptyCell, [3]int{}
}

// MoveCapReached reports whether a round has gone on long enough to be called a draw.
// Marks vanish, so a full board is not a draw on its own.
func MoveCapReached(moveCount, maxMovesWithoutWin int) bool {
	return moveCount >= maxMovesWithoutWin
}
