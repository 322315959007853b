package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
	"github.com/rocketscienceinc/fading-tictactoe/internal/tictactoe"
)

var errMoveRejected = errors.New("move rejected")

// handleConnect - opens the session of the connection, or reports the one already open.
func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if c.session != nil {
		return that.sendState(c, msg.Action)
	}

	mode, err := entity.ParseMode(payloadReq.Mode)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	gameSession, err := that.sessions.Open(ctx, mode, that.notifierFor(c))
	if err != nil {
		log.Error("failed to open session", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to open a session")
	}

	c.session = gameSession

	log.Info("session attached", "sessionID", gameSession.ID(), "mode", mode)

	return that.sendState(c, msg.Action)
}

// handleGameTurn - places the current player's mark. Accepted moves are reported by
// the session events.
func (that *Server) handleGameTurn(_ context.Context, c *client, msg *Message) error {
	if c.session == nil {
		return that.sendErrorResponse(c, msg.Action, apperror.ErrSessionNotFound.Error())
	}

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(c, msg.Action, "cell is required")
	}

	cell := *payloadReq.Cell

	if outcome := c.session.Play(cell); outcome != session.OutcomeRejected {
		return nil
	}

	game := c.session.Snapshot()

	return c.send(msg.Action, Payload{
		Cell:  &cell,
		Game:  game,
		Error: rejectReason(game, cell).Error(),
	})
}

func (that *Server) handleGameReset(_ context.Context, c *client, msg *Message) error {
	if c.session == nil {
		return that.sendErrorResponse(c, msg.Action, apperror.ErrSessionNotFound.Error())
	}

	c.session.Reset()

	return nil
}

// handleGameMode - switches the mode and starts a fresh round in it.
func (that *Server) handleGameMode(_ context.Context, c *client, msg *Message) error {
	if c.session == nil {
		return that.sendErrorResponse(c, msg.Action, apperror.ErrSessionNotFound.Error())
	}

	var payloadReq Payload
	if err := unmarshalPayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	mode, err := entity.ParseMode(payloadReq.Mode)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	c.session.SetMode(mode)
	c.session.Reset()

	return nil
}

func (that *Server) handleGameState(_ context.Context, c *client, msg *Message) error {
	if c.session == nil {
		return that.sendErrorResponse(c, msg.Action, apperror.ErrSessionNotFound.Error())
	}

	return that.sendState(c, msg.Action)
}

func (that *Server) sendState(c *client, action string) error {
	return c.send(action, Payload{
		Session: c.session.ID(),
		Game:    c.session.Snapshot(),
	})
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func unmarshalPayload(msg *Message, payload *Payload) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

// rejectReason explains why a move on cell cannot be played on game.
func rejectReason(game *entity.Game, cell int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := tictactoe.ValidateMove(game.Board, cell); err != nil {
		return err
	}

	return errMoveRejected
}
