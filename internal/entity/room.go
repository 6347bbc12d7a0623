package entity

import (
	"github.com/cyberknightgames/tictactoe-backend/internal/tictactoe"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	MarkX = tictactoe.MarkX
	MarkO = tictactoe.MarkO

	EmptyCell = tictactoe.EmptyCell

	// BotConnectionID occupies a seat in single-player rooms.
	BotConnectionID = "bot"
)

// Room is a two-seat game session identified by a shareable code.
// The registry owns every Room; nothing else keeps a long-lived reference.
type Room struct {
	Code    string            `json:"code"`
	Board   [9]string         `json:"board"`
	Turn    string            `json:"turn"`
	Seats   map[string]string `json:"seats"`
	Winner  string            `json:"winner,omitempty"`
	Status  string            `json:"status"`
	Started bool              `json:"started"`
	WithBot bool              `json:"with_bot,omitempty"`
}

func NewRoom(code string) *Room {
	return &Room{
		Code:   code,
		Turn:   MarkX,
		Seats:  make(map[string]string),
		Status: StatusWaiting,
	}
}

// SeatOf - returns the mark held by the given connection, if any.
func (that *Room) SeatOf(connectionID string) (string, bool) {
	for mark, holder := range that.Seats {
		if holder == connectionID {
			return mark, true
		}
	}

	return "", false
}

// OpenSeat - returns the first free seat, O before X, so a joiner
// never displaces the creator.
func (that *Room) OpenSeat() (string, bool) {
	if _, ok := that.Seats[MarkO]; !ok {
		return MarkO, true
	}

	if _, ok := that.Seats[MarkX]; !ok {
		return MarkX, true
	}

	return "", false
}

func (that *Room) Occupy(mark, connectionID string) {
	that.Seats[mark] = connectionID
	that.Refresh()
}

// Vacate - clears any seat held by the connection. Idempotent: vacating a
// connection that holds no seat is a no-op.
func (that *Room) Vacate(connectionID string) bool {
	released := false

	for mark, holder := range that.Seats {
		if holder == connectionID {
			delete(that.Seats, mark)
			released = true
		}
	}

	if released {
		that.Refresh()
	}

	return released
}

func (that *Room) BothSeated() bool {
	_, hasX := that.Seats[MarkX]
	_, hasO := that.Seats[MarkO]

	return hasX && hasO
}

// Deserted - reports whether no human connection is seated anymore.
// A room kept alive only by the bot is deserted.
func (that *Room) Deserted() bool {
	for _, holder := range that.Seats {
		if holder != BotConnectionID {
			return false
		}
	}

	return true
}

// ResetBoard - clears the board for a rematch; seats stay as they are.
func (that *Room) ResetBoard() {
	that.Board = [9]string{}
	that.Turn = MarkX
	that.Winner = EmptyCell
	that.Refresh()
}

// Refresh - recomputes the derived fields after any mutation.
func (that *Room) Refresh() {
	that.Started = that.BothSeated()

	switch {
	case tictactoe.IsTerminal(that.Board):
		that.Status = StatusFinished
		that.Winner = tictactoe.Winner(that.Board)
	case that.Started:
		that.Status = StatusOngoing
	default:
		that.Status = StatusWaiting
	}
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}
