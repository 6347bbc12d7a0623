package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		board  [9]string
		winner string
	}{
		{
			name: "X wins on the top row",
			board: [9]string{
				MarkX, MarkX, MarkX,
				EmptyCell, MarkO, EmptyCell,
				EmptyCell, MarkO, EmptyCell,
			},
			winner: MarkX,
		},
		{
			name: "O wins on the middle column",
			board: [9]string{
				MarkX, MarkO, EmptyCell,
				EmptyCell, MarkO, MarkX,
				MarkX, MarkO, EmptyCell,
			},
			winner: MarkO,
		},
		{
			name: "X wins on the main diagonal",
			board: [9]string{
				MarkX, MarkO, EmptyCell,
				EmptyCell, MarkX, MarkO,
				EmptyCell, EmptyCell, MarkX,
			},
			winner: MarkX,
		},
		{
			name: "O wins on the anti diagonal",
			board: [9]string{
				MarkX, MarkX, MarkO,
				EmptyCell, MarkO, EmptyCell,
				MarkO, EmptyCell, MarkX,
			},
			winner: MarkO,
		},
		{
			name: "no winner on a full drawn board",
			board: [9]string{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
			winner: EmptyCell,
		},
		{
			name:   "no winner on an empty board",
			board:  [9]string{},
			winner: EmptyCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: scanning the board for a winner
			got := Winner(tt.board)

			// Then: the expected mark is returned
			assert.Equal(t, tt.winner, got)

			// And: WinningLine agrees with Winner
			line, ok := WinningLine(tt.board)
			if tt.winner == EmptyCell {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			for _, idx := range line {
				assert.Equal(t, tt.winner, tt.board[idx])
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	t.Run("Returns false while any cell is empty", func(t *testing.T) {
		// Given: a board with one empty cell
		board := [9]string{
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkO,
			MarkO, MarkX, EmptyCell,
		}

		// Then: the board is not full
		assert.False(t, IsFull(board))
	})

	t.Run("Returns true when every cell is marked", func(t *testing.T) {
		// Given: a fully marked board
		board := [9]string{
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkO,
			MarkO, MarkX, MarkX,
		}

		// Then: the board is full
		assert.True(t, IsFull(board))
	})
}

func TestIsTerminal(t *testing.T) {
	t.Run("A board with a winner is terminal even with empty cells", func(t *testing.T) {
		// Given: X completed a row on move seven
		board := [9]string{
			MarkX, MarkX, MarkX,
			MarkO, MarkO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// Then: the board is terminal but not full
		assert.True(t, IsTerminal(board))
		assert.False(t, IsFull(board))
	})

	t.Run("A full board without a winner is terminal", func(t *testing.T) {
		// Given: a drawn board
		board := [9]string{
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkO,
			MarkO, MarkX, MarkX,
		}

		// Then: the board is terminal with no winner
		assert.True(t, IsTerminal(board))
		assert.Equal(t, EmptyCell, Winner(board))
	})

	t.Run("An ongoing board is not terminal", func(t *testing.T) {
		// Given: a board mid-game
		board := [9]string{
			MarkX, EmptyCell, EmptyCell,
			EmptyCell, MarkO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// Then: the game continues
		assert.False(t, IsTerminal(board))
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, MarkO, ToggleMark(MarkX))
	assert.Equal(t, MarkX, ToggleMark(MarkO))
}
