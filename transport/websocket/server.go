package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
)

const shutdownTimeout = 5 * time.Second

type sessionManager interface {
	Open(ctx context.Context, mode entity.Mode, notifier session.Notifier) (*session.Session, error)
	Close(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	sessions sessionManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the browser client is served from the HTTP port
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameMode] = server.handleGameMode
	server.handlers[actionGameState] = server.handleGameState

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and runs its read loop.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	c := &client{conn: conn}
	defer that.handleDisconnect(c)

	if err = that.handleMessages(req.Context(), c); err != nil {
		log.Info("connection finished", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(c, actionError, "malformed message"); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(c, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) handleDisconnect(c *client) {
	if c.session == nil {
		return
	}

	if err := that.sessions.Close(context.Background(), c.session.ID()); err != nil {
		that.logger.Warn("failed to close session", "sessionID", c.session.ID(), "error", err)
	}
}

func (that *Server) notifierFor(c *client) session.Notifier {
	return session.NotifierFunc(func(event entity.Event) {
		action, payload := eventPayload(event)

		if err := c.send(action, payload); err != nil {
			that.logger.Debug("failed to push event", "action", action, "error", err)
		}
	})
}
