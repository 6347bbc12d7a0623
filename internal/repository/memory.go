package repository

import (
	"context"
	"sync"

	"github.com/cyberknightgames/tictactoe-backend/internal/apperror"
	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
)

type memoryRoom struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

// NewMemoryRoomRepository - an in-process room store with process lifetime.
// This is the default backend; nothing survives a restart.
func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoom{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memoryRoom) CreateOrUpdate(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[room.Code] = cloneRoom(room)

	return nil
}

func (that *memoryRoom) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return cloneRoom(room), nil
}

func (that *memoryRoom) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, code)

	return nil
}

// cloneRoom - callers get snapshots, same as the redis backend, so a held
// pointer can never alias the stored room.
func cloneRoom(room *entity.Room) *entity.Room {
	copied := *room

	copied.Seats = make(map[string]string, len(room.Seats))
	for mark, holder := range room.Seats {
		copied.Seats[mark] = holder
	}

	return &copied
}
