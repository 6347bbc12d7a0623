package apperror

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrNotSeated       = errors.New("connection holds no seat in this room")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrNoAvailableMove = errors.New("no available moves")
)
