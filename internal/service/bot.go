package service

import (
	"fmt"

	"github.com/cyberknightgames/tictactoe-backend/internal/apperror"
	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
	"github.com/cyberknightgames/tictactoe-backend/internal/tictactoe"
)

type BotService interface {
	MakeTurn(room *entity.Room) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn - plays the bot's seat with the minimax search. The search gets
// its own copy of the board; only the chosen cell is written back.
func (that *botService) MakeTurn(room *entity.Room) error {
	botMark, ok := room.SeatOf(entity.BotConnectionID)
	if !ok {
		return apperror.ErrNotSeated
	}

	cell, ok := tictactoe.BestMove(room.Board, botMark)
	if !ok {
		return apperror.ErrNoAvailableMove
	}

	if room.Board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	room.Board[cell] = botMark
	room.Turn = tictactoe.ToggleMark(botMark)
	room.Refresh()

	return nil
}
