package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyberknightgames/tictactoe-backend/internal/config"
	"github.com/cyberknightgames/tictactoe-backend/internal/repository"
	"github.com/cyberknightgames/tictactoe-backend/internal/repository/storage"
	"github.com/cyberknightgames/tictactoe-backend/internal/service"
	"github.com/cyberknightgames/tictactoe-backend/internal/usecase"
	"github.com/cyberknightgames/tictactoe-backend/transport/rest"
	"github.com/cyberknightgames/tictactoe-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	roomRepo, cleanup, err := buildRoomRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not build room repository: %w", err)
	}

	defer func() {
		if err = cleanup(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	botService := service.NewBotService()
	roomManager := usecase.NewRoomManager(logger, roomRepo, botService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, logger, roomManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, roomManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// buildRoomRepository - picks the storage backend from config. Memory is the
// default; redis keeps the same JSON room blobs off-process.
func buildRoomRepository(ctx context.Context, conf *config.Config) (repository.RoomRepository, func() error, error) {
	if conf.Storage.Type != config.StorageRedis {
		return repository.NewMemoryRoomRepository(), func() error { return nil }, nil
	}

	redisStorage, err := storage.New(ctx, conf.Storage.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewRoomRepository(redisStorage.Connection), redisStorage.Close, nil
}
