package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cyberknightgames/tictactoe-backend/internal/apperror"
)

func (that *Server) handleRoomCreate(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleRoomCreate", "connectionID", c.id)

	var req CreateRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	room, err := that.manager.CreateRoom(ctx, c.id, req.WithBot)
	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendErrorAck(c, msg.Action, "failed to create room")
	}

	c.room = room.Code

	mark, _ := room.SeatOf(c.id)
	if err = that.sendAck(c, msg.Action, AckPayload{OK: true, Code: room.Code, Mark: mark}); err != nil {
		return err
	}

	that.broadcast(room, ActionRoomStatus, newRoomStatusPayload(room))

	log.Info("room created", "code", room.Code)

	return nil
}

func (that *Server) handleRoomJoin(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleRoomJoin", "connectionID", c.id)

	var req JoinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, mark, err := that.manager.JoinRoom(ctx, req.Code, c.id)

	if errors.Is(err, apperror.ErrRoomNotFound) {
		return that.sendErrorAck(c, msg.Action, "Room not found")
	}

	if errors.Is(err, apperror.ErrRoomFull) {
		return that.sendErrorAck(c, msg.Action, "Room is full")
	}

	if err != nil {
		log.Error("failed to join room", "code", req.Code, "error", err)
		return that.sendErrorAck(c, msg.Action, "failed to join room")
	}

	c.room = room.Code

	if err = that.sendAck(c, msg.Action, AckPayload{OK: true, Code: room.Code, Mark: mark}); err != nil {
		return err
	}

	that.broadcast(room, ActionRoomStatus, newRoomStatusPayload(room))

	log.Info("player joined room", "code", room.Code, "mark", mark)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "connectionID", c.id)

	// a turn from a connection that never joined a room is dropped silently
	if c.room == "" {
		return nil
	}

	var req TurnRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Cell == nil {
		return that.sendErrorAck(c, msg.Action, "cell is required")
	}

	room, err := that.manager.MakeTurn(ctx, c.room, c.id, *req.Cell)

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound), errors.Is(err, apperror.ErrNotSeated):
		return nil
	case errors.Is(err, apperror.ErrNotYourTurn):
		return that.sendErrorAck(c, msg.Action, "Not your turn")
	case errors.Is(err, apperror.ErrCellOccupied):
		return that.sendErrorAck(c, msg.Action, "Cell occupied")
	case errors.Is(err, apperror.ErrGameFinished):
		return that.sendErrorAck(c, msg.Action, "Game over")
	case errors.Is(err, apperror.ErrInvalidCell):
		return that.sendErrorAck(c, msg.Action, "Invalid cell")
	case err != nil:
		log.Error("failed to make turn", "code", c.room, "error", err)
		return that.sendErrorAck(c, msg.Action, "failed to make turn")
	}

	if err = that.sendAck(c, msg.Action, AckPayload{OK: true}); err != nil {
		return err
	}

	that.broadcast(room, ActionGameState, newGameStatePayload(room, false))

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleGameReset", "connectionID", c.id)

	if c.room == "" {
		return nil
	}

	room, err := that.manager.ResetRoom(ctx, c.room)

	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil
	}

	if err != nil {
		log.Error("failed to reset room", "code", c.room, "error", err)
		return nil
	}

	that.broadcast(room, ActionGameState, newGameStatePayload(room, true))

	log.Info("room reset", "code", room.Code)

	return nil
}
