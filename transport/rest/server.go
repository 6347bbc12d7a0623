package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
)

type roomProvider interface {
	GetRoom(ctx context.Context, code string) (*entity.Room, error)
}

// NewRouter - health check plus a read-only room status lookup. Everything
// stateful goes over the WebSocket transport.
func NewRouter(logger *slog.Logger, rooms roomProvider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	handler := newRoomHandler(logger, rooms)

	router.GET("/ping", pingHandler)
	router.GET("/rooms/:code", handler.getRoom)

	return router
}

// Start - starts the HTTP server and blocks until the context is canceled
// or the listener fails.
func Start(ctx context.Context, port string, logger *slog.Logger, rooms roomProvider) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, rooms),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
