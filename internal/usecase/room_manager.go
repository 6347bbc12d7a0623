package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cyberknightgames/tictactoe-backend/internal/apperror"
	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
	"github.com/cyberknightgames/tictactoe-backend/internal/pkg"
	"github.com/cyberknightgames/tictactoe-backend/internal/tictactoe"
)

var errCodeTaken = errors.New("room code already taken")

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
}

type botService interface {
	MakeTurn(room *entity.Room) error
}

// RoomManager owns every room: it creates codes, seats connections,
// validates moves and garbage-collects deserted rooms. Actions for the same
// room are serialized on a per-code lock; different rooms never contend.
type RoomManager struct {
	logger   *slog.Logger
	roomRepo roomRepo
	bot      botService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomManager(logger *slog.Logger, roomRepo roomRepo, bot botService) *RoomManager {
	return &RoomManager{
		logger:   logger,
		roomRepo: roomRepo,
		bot:      bot,

		locks: make(map[string]*sync.Mutex),
	}
}

// CreateRoom - creates a fresh room with the creator seated at X. Single
// player rooms seat the bot at O right away. Code collisions are retried
// until a free code comes up.
func (that *RoomManager) CreateRoom(ctx context.Context, connectionID string, withBot bool) (*entity.Room, error) {
	log := that.logger.With("method", "CreateRoom")

	for {
		code := pkg.GenerateRoomCode()

		room, err := that.claimRoom(ctx, code, connectionID, withBot)
		if errors.Is(err, errCodeTaken) {
			log.Info("room code collision, retrying", "code", code)
			continue
		}

		if err != nil {
			return nil, err
		}

		log.Info("room created", "code", code, "with_bot", withBot)

		return room, nil
	}
}

// claimRoom - inserts a fresh room under the candidate code while holding
// its lock, so two racing creates can never share a code.
func (that *RoomManager) claimRoom(ctx context.Context, code, connectionID string, withBot bool) (*entity.Room, error) {
	unlock := that.lockRoom(code)
	defer unlock()

	_, err := that.roomRepo.GetByCode(ctx, code)
	if err == nil {
		return nil, errCodeTaken
	}

	if !errors.Is(err, apperror.ErrRoomNotFound) {
		return nil, fmt.Errorf("failed to check code for collision: %w", err)
	}

	room := entity.NewRoom(code)
	room.Occupy(entity.MarkX, connectionID)

	if withBot {
		room.WithBot = true
		room.Occupy(entity.MarkO, entity.BotConnectionID)
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

// JoinRoom - seats the connection in an existing room and returns the
// assigned mark plus the room state for synchronization. Codes are
// case-insensitive and trimmed.
func (that *RoomManager) JoinRoom(ctx context.Context, code, connectionID string) (*entity.Room, string, error) {
	code = NormalizeCode(code)

	unlock := that.lockRoom(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get room: %w", err)
	}

	if mark, ok := room.SeatOf(connectionID); ok {
		return room, mark, nil
	}

	mark, ok := room.OpenSeat()
	if !ok {
		return nil, "", fmt.Errorf("%w: code %s", apperror.ErrRoomFull, code)
	}

	room.Occupy(mark, connectionID)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, "", fmt.Errorf("failed to update room: %w", err)
	}

	return room, mark, nil
}

// MakeTurn - validates and applies a move for the seated connection. In bot
// rooms the bot answers synchronously on the same call when the game goes on.
func (that *RoomManager) MakeTurn(ctx context.Context, code, connectionID string, cell int) (*entity.Room, error) {
	code = NormalizeCode(code)

	unlock := that.lockRoom(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	mark, ok := room.SeatOf(connectionID)
	if !ok {
		return nil, fmt.Errorf("%w: code %s", apperror.ErrNotSeated, code)
	}

	if err = validateMove(room, mark, cell); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	room.Board[cell] = mark
	room.Turn = tictactoe.ToggleMark(mark)
	room.Refresh()

	if room.WithBot && !room.IsFinished() && room.Turn != mark {
		if err = that.bot.MakeTurn(room); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// ResetRoom - clears the board for a rematch; X moves first again.
func (that *RoomManager) ResetRoom(ctx context.Context, code string) (*entity.Room, error) {
	code = NormalizeCode(code)

	unlock := that.lockRoom(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room.ResetBoard()

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// Disconnect - vacates any seat held by the connection. The room is deleted
// once no human remains seated; otherwise the remaining occupancy is
// returned for broadcast. Idempotent: a repeated disconnect is a no-op.
func (that *RoomManager) Disconnect(ctx context.Context, code, connectionID string) (*entity.Room, bool, error) {
	code = NormalizeCode(code)
	log := that.logger.With("method", "Disconnect", "code", code)

	unlock := that.lockRoom(code)
	defer unlock()

	room, err := that.roomRepo.GetByCode(ctx, code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to get room: %w", err)
	}

	room.Vacate(connectionID)

	if room.Deserted() {
		if err = that.roomRepo.DeleteByCode(ctx, code); err != nil {
			return nil, false, fmt.Errorf("failed to delete room: %w", err)
		}

		that.dropLock(code)
		log.Info("room deleted, both seats empty")

		return nil, true, nil
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, false, fmt.Errorf("failed to update room: %w", err)
	}

	log.Info("player left room")

	return room, false, nil
}

// GetRoom - a read-only snapshot for status lookups.
func (that *RoomManager) GetRoom(ctx context.Context, code string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// NormalizeCode - room codes compare case-insensitively, ignoring
// surrounding whitespace.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// validateMove - re-derives move legality from the authoritative room state.
// Client-side hints are never trusted.
func validateMove(room *entity.Room, mark string, cell int) error {
	if cell < 0 || cell >= len(room.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if tictactoe.IsTerminal(room.Board) {
		return apperror.ErrGameFinished
	}

	if room.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if room.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// lockRoom - serializes actions per room code: one action runs to completion
// before the next for the same room is applied.
func (that *RoomManager) lockRoom(code string) func() {
	that.mu.Lock()
	lock, ok := that.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[code] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

func (that *RoomManager) dropLock(code string) {
	that.mu.Lock()
	delete(that.locks, code)
	that.mu.Unlock()
}
