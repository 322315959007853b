package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
)

const writeWait = 10 * time.Second

const (
	actionConnect   = "connect"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
	actionGameMode  = "game:mode"
	actionGameState = "game:state"
	actionError     = "error"

	eventActionPrefix = "game:"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Session string       `json:"session,omitempty"`
	Mode    string       `json:"mode,omitempty"`
	Cell    *int         `json:"cell,omitempty"`
	Game    *entity.Game `json:"game,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// client is one browser connection. gorilla connections allow a single concurrent
// writer, and session events are written from timer goroutines.
type client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	session *session.Session
}

func (that *client) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// eventPayload maps a session event onto the outbound envelope.
func eventPayload(event entity.Event) (string, Payload) {
	payload := Payload{Game: event.Game}

	if event.Cell != entity.NoCell {
		cell := event.Cell
		payload.Cell = &cell
	}

	return eventActionPrefix + string(event.Kind), payload
}
