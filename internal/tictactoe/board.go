package tictactoe

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

// WinCombos - the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
// Scans run in this order, so results are deterministic.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner - returns the mark occupying a complete triple, or EmptyCell
// if no line is complete. Callers guarantee a board of valid marks.
func Winner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// WinningLine - same scan as Winner, but returns the triple itself so
// clients can highlight it.
func WinningLine(board [9]string) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func IsFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func IsTerminal(board [9]string) bool {
	return Winner(board) != EmptyCell || IsFull(board)
}

func ToggleMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}

	return MarkX
}
