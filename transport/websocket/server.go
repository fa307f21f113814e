package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-social/internal/coordinator"
)

type sessionCoordinator interface {
	Connect(conn coordinator.Conn)
	Disconnect(ctx context.Context, conn coordinator.Conn)

	SignUp(ctx context.Context, conn coordinator.Conn, username, password string) error
	LogIn(ctx context.Context, conn coordinator.Conn, username, password string) error
	Logout(ctx context.Context, conn coordinator.Conn) error

	CreateRoom(conn coordinator.Conn) error
	JoinRoom(conn coordinator.Conn, code string) error

	Move(conn coordinator.Conn, code string, board []byte)
	Restart(conn coordinator.Conn, code string)
	Timeout(ctx context.Context, conn coordinator.Conn, code string)

	Chat(sender, message string)
	FriendRequest(from, to string)
	FriendResponse(ctx context.Context, from, to string, accept bool) error
	RefreshFriendStatuses(ctx context.Context, conn coordinator.Conn) error
}

type handlerFunc func(ctx context.Context, conn *client, msg *coordinator.Message) error

type Server struct {
	logger      *slog.Logger
	coordinator sessionCoordinator
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionCoordinator) *Server {
	server := &Server{
		logger:      logger,
		coordinator: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[coordinator.ActionSignUp] = server.handleSignUp
	server.handlers[coordinator.ActionLogIn] = server.handleLogIn
	server.handlers[coordinator.ActionManualLogout] = server.handleLogout
	server.handlers[coordinator.ActionCreateRoom] = server.handleCreateRoom
	server.handlers[coordinator.ActionJoinRoom] = server.handleJoinRoom
	server.handlers[coordinator.ActionMove] = server.handleMove
	server.handlers[coordinator.ActionRestart] = server.handleRestart
	server.handlers[coordinator.ActionTimeout] = server.handleTimeout
	server.handlers[coordinator.ActionChat] = server.handleChat
	server.handlers[coordinator.ActionFriendRequest] = server.handleFriendRequest
	server.handlers[coordinator.ActionFriendResponse] = server.handleFriendResponse
	server.handlers[coordinator.ActionRequestFriendStatus] = server.handleRequestFriendStatus

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	// no read/write timeouts: the deadlines would outlive the upgrade and
	// tear down long-lived connections.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the connection and pumps its events until it closes.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newClient(wsConn)

	that.coordinator.Connect(conn)

	defer func() {
		that.coordinator.Disconnect(ctx, conn)

		if err = wsConn.Close(); err != nil {
			log.Debug("failed to close connection", "error", err)
		}
	}()

	log.Info("connection established", "remote", wsConn.RemoteAddr().String())

	that.handleMessages(ctx, conn)
}

// handleMessages - reads events from one connection in arrival order.
func (that *Server) handleMessages(ctx context.Context, conn *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.wsConn.ReadMessage()
		if err != nil {
			log.Debug("connection closed", "error", err)
			return
		}

		var message coordinator.Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// client wraps a gorilla connection. Writes are serialized with a mutex
// because several handlers may address the same recipient concurrently.
type client struct {
	wsConn *websocket.Conn
	mu     sync.Mutex
}

func newClient(wsConn *websocket.Conn) *client {
	return &client{wsConn: wsConn}
}

func (that *client) Send(msg coordinator.Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.wsConn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
