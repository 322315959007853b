package tictactoe

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMove(t *testing.T) {
	t.Run("Empty cell is accepted", func(t *testing.T) {
		var board [entity.BoardSize]string

		require.NoError(t, ValidateMove(board, 4))
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with cell 0 taken by X
		var board [entity.BoardSize]string
		board[0] = entity.PlayerX

		// When: validating a move on the same cell
		err := ValidateMove(board, 0)

		// Then: ErrCellOccupied is returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		var board [entity.BoardSize]string

		for _, cell := range []int{-1, 9, 20} {
			assert.ErrorIs(t, ValidateMove(board, cell), apperror.ErrInvalidCell)
		}
	})
}

func TestFindWinner(t *testing.T) {
	for _, combo := range WinCombos {
		for _, mark := range []string{entity.PlayerX, entity.PlayerO} {
			t.Run(fmt.Sprintf("%s on %v", mark, combo), func(t *testing.T) {
				// Given: a board with a single completed triple
				var board [entity.BoardSize]string
				for _, cell := range combo {
					board[cell] = mark
				}

				// When: scanning for a winner
				winner, line := FindWinner(board)

				// Then: the mark and its line are returned
				assert.Equal(t, mark, winner)
				assert.Equal(t, combo, line)
			})
		}
	}

	t.Run("No winner on a full board without triples", func(t *testing.T) {
		board := [entity.BoardSize]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}

		winner, _ := FindWinner(board)

		assert.Equal(t, entity.EmptyCell, winner)
	})

	t.Run("Mixed triple does not win", func(t *testing.T) {
		board := [entity.BoardSize]string{
			entity.PlayerX, entity.PlayerX, entity.PlayerO,
		}

		winner, _ := FindWinner(board)

		assert.Equal(t, entity.EmptyCell, winner)
	})

	t.Run("First matching triple in scan order wins", func(t *testing.T) {
		// Given: X holds the top row and the left column
		board := [entity.BoardSize]string{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
			entity.PlayerX, entity.EmptyCell, entity.EmptyCell,
		}

		_, line := FindWinner(board)

		assert.Equal(t, [3]int{0, 1, 2}, line)
	})
}

func TestMoveCapReached(t *testing.T) {
	assert.False(t, MoveCapReached(11, 12))
	assert.True(t, MoveCapReached(12, 12))
	assert.True(t, MoveCapReached(13, 12))
}
