package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cyberknightgames/tictactoe-backend/internal/entity"
	"github.com/cyberknightgames/tictactoe-backend/internal/pkg"
)

type roomManager interface {
	CreateRoom(ctx context.Context, connectionID string, withBot bool) (*entity.Room, error)
	JoinRoom(ctx context.Context, code, connectionID string) (*entity.Room, string, error)
	MakeTurn(ctx context.Context, code, connectionID string, cell int) (*entity.Room, error)
	ResetRoom(ctx context.Context, code string) (*entity.Room, error)
	Disconnect(ctx context.Context, code, connectionID string) (*entity.Room, bool, error)
}

// client - one upgraded connection. The write mutex keeps concurrent
// broadcasts off each other; gorilla permits a single writer at a time.
type client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
	room    string // code of the joined room, empty until create/join
}

func (that *client) send(msg *Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server - the session transport adapter. It translates inbound actions to
// room manager calls and fans resulting state out to every connection in the
// room. No game rules live here.
type Server struct {
	logger  *slog.Logger
	manager roomManager

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[string]*client

	handlers map[string]func(ctx context.Context, c *client, msg *Message) error
}

func New(logger *slog.Logger, manager roomManager) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		clients:  make(map[string]*client),
		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[ActionRoomCreate] = server.handleRoomCreate
	server.handlers[ActionRoomJoin] = server.handleRoomJoin
	server.handlers[ActionGameTurn] = server.handleGameTurn
	server.handlers[ActionGameReset] = server.handleGameReset

	return server
}

// Start - starts the WebSocket server and blocks until the context is
// canceled or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleUpgrade)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
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

// Handler - exposes the upgrade endpoint for tests.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleUpgrade)

	return mux
}

func (that *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleUpgrade")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   pkg.GenerateConnectionID(),
		conn: conn,
	}

	that.clientsMu.Lock()
	that.clients[c.id] = c
	that.clientsMu.Unlock()

	log.Info("connection established", "connectionID", c.id)

	that.readLoop(r.Context(), c)
}

// readLoop - each room observes this connection's actions in the order they
// were read; a handler runs to completion before the next frame is taken.
func (that *Server) readLoop(ctx context.Context, c *client) {
	log := that.logger.With("method", "readLoop", "connectionID", c.id)

	defer that.dropClient(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var msg Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Error("unknown action", "action", msg.Action)
			continue
		}

		if err = handler(ctx, c, &msg); err != nil {
			log.Error("error processing message", "action", msg.Action, "error", err)
		}
	}
}

// dropClient - the implicit disconnect action: vacate the seat, delete the
// room if it is now deserted, otherwise tell the remaining participant.
// The request context may already be dead here, so the release gets its own.
func (that *Server) dropClient(c *client) {
	log := that.logger.With("method", "dropClient", "connectionID", c.id)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	that.clientsMu.Lock()
	delete(that.clients, c.id)
	that.clientsMu.Unlock()

	_ = c.conn.Close()

	if c.room == "" {
		return
	}

	room, removed, err := that.manager.Disconnect(ctx, c.room, c.id)
	if err != nil {
		log.Error("failed to release seat", "code", c.room, "error", err)
		return
	}

	if removed || room == nil {
		log.Info("room removed after disconnect", "code", c.room)
		return
	}

	that.broadcast(room, ActionRoomStatus, newRoomStatusPayload(room))
	log.Info("player disconnected", "code", c.room)
}

// broadcast - fans a payload out to every connection seated in the room.
// Fire and forget: send failures are logged, never escalated.
func (that *Server) broadcast(room *entity.Room, action string, payload any) {
	log := that.logger.With("method", "broadcast", "code", room.Code)

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	msg := &Message{Action: action, Payload: raw}

	for _, connectionID := range room.Seats {
		if connectionID == entity.BotConnectionID {
			continue
		}

		that.clientsMu.RLock()
		c, ok := that.clients[connectionID]
		that.clientsMu.RUnlock()

		if !ok {
			log.Warn("connection not found", "connectionID", connectionID)
			continue
		}

		if err = c.send(msg); err != nil {
			log.Error("failed to send broadcast", "connectionID", connectionID, "error", err)
		}
	}
}

func (that *Server) sendAck(c *client, action string, payload AckPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal ack: %w", err)
	}

	if err = c.send(&Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to send ack: %w", err)
	}

	return nil
}

func (that *Server) sendErrorAck(c *client, action, errorMsg string) error {
	return that.sendAck(c, action, AckPayload{Error: errorMsg})
}
