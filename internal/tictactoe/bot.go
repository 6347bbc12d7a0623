package tictactoe

// BestMove - returns the game-theoretically optimal cell for the given mark
// via exhaustive minimax. A win at depth d scores 10-d, a loss d-10, a draw 0,
// so the search prefers faster wins and slower losses. Ties break on the
// lowest cell index. Returns false only when the board has no empty cell.
//
// The board is passed by value, so the simulation never aliases the
// caller's board.
func BestMove(board [9]string, mark string) (int, bool) {
	bestScore := -100
	bestCell := -1

	for i := range board {
		if board[i] != EmptyCell {
			continue
		}

		board[i] = mark
		score := minimax(board, mark, 0, false)
		board[i] = EmptyCell

		if score > bestScore {
			bestScore = score
			bestCell = i
		}
	}

	if bestCell < 0 {
		return 0, false
	}

	return bestCell, true
}

// minimax - evaluates a position for the searching mark, alternating between
// its own best reply and the opponent's best reply.
func minimax(board [9]string, mark string, depth int, maximizing bool) int {
	if winner := Winner(board); winner != EmptyCell {
		if winner == mark {
			return 10 - depth
		}
		return depth - 10
	}

	if IsFull(board) {
		return 0
	}

	current := mark
	if !maximizing {
		current = ToggleMark(mark)
	}

	best := 100
	if maximizing {
		best = -100
	}

	for i := range board {
		if board[i] != EmptyCell {
			continue
		}

		board[i] = current
		score := minimax(board, mark, depth+1, !maximizing)
		board[i] = EmptyCell

		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}

	return best
}
