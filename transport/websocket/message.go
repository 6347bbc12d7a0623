package websocket

import (
	"encoding/json"

	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
	"github.com/cyberknightgames/tictactoe-backend/internal/tictactoe"
)

// Inbound actions.
const (
	ActionRoomCreate = "room:create"
	ActionRoomJoin   = "room:join"
	ActionGameTurn   = "game:turn"
	ActionGameReset  = "game:reset"
)

// Outbound broadcast actions.
const (
	ActionRoomStatus = "room:status"
	ActionGameState  = "game:state"
)

// Message - the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRequest struct {
	WithBot bool `json:"with_bot,omitempty"`
}

type JoinRequest struct {
	Code string `json:"code"`
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

// AckPayload - the per-action acknowledgment sent only to the initiator.
type AckPayload struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Mark  string `json:"mark,omitempty"`
	Error string `json:"error,omitempty"`
}

// RoomStatusPayload - seat occupancy snapshot, broadcast on create, join
// and disconnect. Connection identifiers stay server-side; clients only
// see whether a seat is taken.
type RoomStatusPayload struct {
	Code    string          `json:"code"`
	Seats   map[string]bool `json:"seats"`
	Board   [9]string       `json:"board"`
	Turn    string          `json:"turn"`
	Started bool            `json:"started"`
}

// GameStatePayload - board state, broadcast on every move and on reset.
type GameStatePayload struct {
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn"`
	Winner string    `json:"winner,omitempty"`
	Line   *[3]int   `json:"line,omitempty"`
	Full   bool      `json:"full"`
	Reset  bool      `json:"reset,omitempty"`
}

func newRoomStatusPayload(room *entity.Room) RoomStatusPayload {
	seats := map[string]bool{
		entity.MarkX: false,
		entity.MarkO: false,
	}
	for mark := range room.Seats {
		seats[mark] = true
	}

	return RoomStatusPayload{
		Code:    room.Code,
		Seats:   seats,
		Board:   room.Board,
		Turn:    room.Turn,
		Started: room.Started,
	}
}

func newGameStatePayload(room *entity.Room, reset bool) GameStatePayload {
	payload := GameStatePayload{
		Board:  room.Board,
		Turn:   room.Turn,
		Winner: room.Winner,
		Full:   tictactoe.IsFull(room.Board),
		Reset:  reset,
	}

	if line, ok := tictactoe.WinningLine(room.Board); ok {
		payload.Line = &line
	}

	return payload
}
