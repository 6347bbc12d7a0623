package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberknightgames/tictactoe-backend/internal/apperror"
)

type roomHandler struct {
	logger *slog.Logger
	rooms  roomProvider
}

func newRoomHandler(logger *slog.Logger, rooms roomProvider) *roomHandler {
	return &roomHandler{
		logger: logger,
		rooms:  rooms,
	}
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// getRoom - room snapshot without connection identifiers.
func (that *roomHandler) getRoom(c *gin.Context) {
	log := that.logger.With("method", "getRoom")

	room, err := that.rooms.GetRoom(c.Request.Context(), c.Param("code"))

	if errors.Is(err, apperror.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if err != nil {
		log.Error("failed to get room", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	seats := make(map[string]bool, len(room.Seats))
	for mark := range room.Seats {
		seats[mark] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    room.Code,
		"seats":   seats,
		"board":   room.Board,
		"turn":    room.Turn,
		"status":  room.Status,
		"winner":  room.Winner,
		"started": room.Started,
	})
}
